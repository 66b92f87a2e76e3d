package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/interinest/marketplace/internal/api/dto"
	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	admin AdminConsole
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin AdminConsole) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Dashboard GET /admin.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AdminStatsResponse{
		TotalDesigners:     stats.TotalDesigners,
		TotalProjects:      stats.TotalProjects,
		TotalDesignerViews: stats.TotalDesignerViews,
		PendingDesigners:   stats.PendingDesigners,
		PublishedProjects:  stats.PublishedProjects,
	}})
}

// ListDesigners GET /admin/designers?status=pending|approved.
func (h *AdminHandler) ListDesigners(c *fiber.Ctx) error {
	var status *domain.AccountStatus
	switch raw := domain.AccountStatus(c.Query("status")); raw {
	case "":
	case domain.AccountStatusPending, domain.AccountStatusApproved:
		status = &raw
	default:
		return errorutil.NewValidationError("invalid status filter", map[string]any{"status": raw})
	}

	limit, offset := pageParams(c)
	designers, err := h.admin.ListDesigners(c.UserContext(), status, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(designers))
	for i := range designers {
		items = append(items, accountResponse(&designers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ApproveDesigner POST /admin/designers/:id/approve.
func (h *AdminHandler) ApproveDesigner(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	account, err := h.admin.ApproveDesigner(c.UserContext(), sess.SubjectID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}

// DisableAccount POST /admin/accounts/:id/disable.
func (h *AdminHandler) DisableAccount(c *fiber.Ctx) error {
	return h.setDisabled(c, true)
}

// EnableAccount POST /admin/accounts/:id/enable.
func (h *AdminHandler) EnableAccount(c *fiber.Ctx) error {
	return h.setDisabled(c, false)
}

func (h *AdminHandler) setDisabled(c *fiber.Ctx, disabled bool) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	account, err := h.admin.SetAccountDisabled(c.UserContext(), sess.SubjectID, c.Params("id"), disabled)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"account":  accountResponse(account),
		"disabled": disabled,
	}})
}
