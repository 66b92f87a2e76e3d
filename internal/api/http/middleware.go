package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/observability"
	apperrors "github.com/interinest/marketplace/pkg/util/errorutil"
)

// RegisterMiddlewares installs the request-scoped chain that runs ahead of the
// route gate: request id, deadline, access log and the JSON error envelope.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(requestid.New())
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("request_id", requestID(c)),
					zap.ByteString("stack", debug.Stack()),
				)
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				err = renderError(c, err, logger, metrics)
			}
		}()
		return c.Next()
	}
}

// renderError writes {"error":{"code","message"[,"details"]}}. Session-related
// failures are never cached so a stale 401/403 cannot outlive a fresh login.
func renderError(c *fiber.Ctx, err error, logger *zap.Logger, metrics *observability.Metrics) error {
	domainErr := apperrors.ToDomainError(err)
	metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)

	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}

	switch {
	case domainErr.HTTPStatus >= fiber.StatusInternalServerError:
		logger.Error("request failed",
			zap.String("code", domainErr.Code),
			zap.String("request_id", requestID(c)),
			zap.Error(domainErr),
		)
	case domainErr.HTTPStatus == fiber.StatusUnauthorized || domainErr.HTTPStatus == fiber.StatusForbidden:
		c.Set(fiber.HeaderCacheControl, "no-store")
	}

	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
