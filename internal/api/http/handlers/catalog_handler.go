package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves public, unauthenticated listings.
type CatalogHandler struct {
	accounts AccountReader
	projects ProjectManager
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(accounts AccountReader, projects ProjectManager) *CatalogHandler {
	return &CatalogHandler{accounts: accounts, projects: projects}
}

// Designer GET /designers/:id.
func (h *CatalogHandler) Designer(c *fiber.Ctx) error {
	account, err := h.accounts.PublicDesigner(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": publicDesignerResponse(account)})
}

// Projects GET /projects.
func (h *CatalogHandler) Projects(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	projects, err := h.projects.ListPublished(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectList(projects)})
}
