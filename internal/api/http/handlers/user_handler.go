package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the client dashboard.
type UserHandler struct {
	accounts AccountReader
}

// NewUserHandler constructs handler.
func NewUserHandler(accounts AccountReader) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// Dashboard GET /user-dashboard.
func (h *UserHandler) Dashboard(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.Profile(c.UserContext(), sess.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}
