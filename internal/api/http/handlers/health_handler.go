package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency probed by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe names a readiness dependency.
type Probe struct {
	Name   string
	Target Pinger
}

type HealthHandler struct {
	serviceName string
	version     string
	probes      []Probe
}

func NewHealthHandler(serviceName, version string, probes ...Probe) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, probes: probes}
}

func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings every probe under one shared deadline and reports each result.
// Sign-in depends on all of them, so a single failure makes the service unready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	deps := make(fiber.Map, len(h.probes))
	ready := true
	for _, p := range h.probes {
		if err := p.Target.Ping(ctx); err != nil {
			deps[p.Name] = err.Error()
			ready = false
			continue
		}
		deps[p.Name] = "ok"
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": deps,
			},
		})
	}
	return c.JSON(fiber.Map{"status": "ready", "dependencies": deps})
}
