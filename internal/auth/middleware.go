package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/observability"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

const sessionKey = "auth_session"

// GateMiddleware enforces the route policy on every request before any handler runs.
type GateMiddleware struct {
	gate    *Gate
	tokens  *TokenManager
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewGateMiddleware constructs middleware.
func NewGateMiddleware(gate *Gate, tokens *TokenManager, logger *zap.Logger, metrics *observability.Metrics) *GateMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GateMiddleware{gate: gate, tokens: tokens, logger: logger, metrics: metrics}
}

// Handle resolves the session from cookies, verifies its token and applies the gate decision.
func (m *GateMiddleware) Handle(c *fiber.Ctx) error {
	sess := SessionFromCookies(c)
	if sess != nil {
		if err := m.tokens.Verify(sess); err != nil {
			m.logger.Debug("discarding unverifiable session",
				zap.String("uid", sess.SubjectID),
				zap.Error(err))
			ClearSession(c)
			sess = nil
		}
	}

	decision := m.gate.Decide(c.Path(), sess)
	m.metrics.RecordGateDecision(decision.Kind.String(), decision.Allowed())

	if !decision.Allowed() {
		return c.Redirect(decision.Location, http.StatusTemporaryRedirect)
	}
	if sess != nil {
		c.Locals(sessionKey, sess)
	}
	return c.Next()
}

// SessionFromContext retrieves the verified session stored by the gate.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	sess, ok := val.(*domain.Session)
	return sess, ok && sess.Valid()
}

// RequireSession rejects requests that carry no verified session.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return errorutil.NewUnauthorized("sign in required")
		}
		return c.Next()
	}
}

// RequireRole ensures the verified session holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromContext(c)
		if !ok {
			return errorutil.NewUnauthorized("sign in required")
		}
		if _, exists := allowedSet[sess.Role]; !exists {
			return errorutil.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
