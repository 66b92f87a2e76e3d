package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/interinest/marketplace/internal/api/dto"
	"github.com/interinest/marketplace/internal/auth"
	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/service"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and logout.
type AuthHandler struct {
	sessions   SessionIssuer
	gate       *auth.Gate
	sessionTTL time.Duration
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions SessionIssuer, gate *auth.Gate, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, gate: gate, sessionTTL: sessionTTL}
}

// LoginPage handles GET /login. Signed-in callers never get here; the gate redirects them.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.AuthPageResponse{Page: "login", Redirect: c.Query("redirect")}})
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.AuthPageResponse{Page: "register"}})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	sess, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	target := req.Redirect
	if target == "" {
		target = c.Query("redirect")
	}
	return h.respondWithSession(c, http.StatusOK, sess, h.gate.SafeRedirect(target, sess.Role))
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	sess, err := h.sessions.Register(c.UserContext(), service.RegistrationInput{
		Email:           req.Email,
		Password:        req.Password,
		FullName:        req.FullName,
		Phone:           req.Phone,
		City:            req.City,
		Experience:      req.Experience,
		Services:        req.Services,
		BudgetRange:     req.BudgetRange,
		Portfolio:       req.Portfolio,
		Instagram:       req.Instagram,
		Website:         req.Website,
		Styles:          req.Styles,
		LeadsPreference: req.LeadsPreference,
		Notes:           req.Notes,
		ImageURLs:       req.ImageURLs,
	})
	if err != nil {
		return err
	}

	home, _ := domain.RoleDesigner.HomePath()
	return h.respondWithSession(c, http.StatusCreated, sess, home)
}

// Logout handles POST /logout. Cookies are cleared even without a verified session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, ok := auth.SessionFromContext(c); ok {
		if err := h.sessions.Logout(c.UserContext(), sess); err != nil {
			return err
		}
	}
	auth.ClearSession(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"redirect": auth.LoginPath}})
}

func (h *AuthHandler) respondWithSession(c *fiber.Ctx, status int, sess *domain.Session, redirect string) error {
	auth.WriteSession(c, sess, h.sessionTTL)
	return c.Status(status).JSON(fiber.Map{
		"data": dto.SessionResponse{
			UID:       sess.SubjectID,
			Role:      string(sess.Role),
			Redirect:  redirect,
			ExpiresAt: sess.ExpiresAt,
		},
	})
}
