package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/interinest/marketplace/internal/api/dto"
	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/service"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

// DesignerHandler serves the designer dashboard, portfolio and project showcase.
type DesignerHandler struct {
	accounts AccountReader
	projects ProjectManager
}

// NewDesignerHandler constructs handler.
func NewDesignerHandler(accounts AccountReader, projects ProjectManager) *DesignerHandler {
	return &DesignerHandler{accounts: accounts, projects: projects}
}

// Dashboard GET /designer-dashboard.
func (h *DesignerHandler) Dashboard(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	dash, err := h.accounts.DesignerDashboard(c.UserContext(), sess.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DesignerDashboardResponse{
		Profile:           accountResponse(dash.Account),
		TotalProjects:     dash.TotalProjects,
		PublishedProjects: dash.PublishedProjects,
	}})
}

// Portfolio GET /designer-dashboard/portfolio.
func (h *DesignerHandler) Portfolio(c *fiber.Ctx) error {
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

// UpdatePortfolio PUT /designer-dashboard/portfolio.
func (h *DesignerHandler) UpdatePortfolio(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.PortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	account, err := h.accounts.UpdatePortfolio(c.UserContext(), sess.SubjectID, service.PortfolioInput{
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
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}

// ListProjects GET /designer-dashboard/projects.
func (h *DesignerHandler) ListProjects(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)
	projects, err := h.projects.ListOwned(c.UserContext(), sess.SubjectID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectList(projects)})
}

// CreateProject POST /designer-dashboard/projects.
func (h *DesignerHandler) CreateProject(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	in, err := parseProjectRequest(c)
	if err != nil {
		return err
	}
	project, err := h.projects.Create(c.UserContext(), sess.SubjectID, in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": projectResponse(project)})
}

// GetProject GET /designer-dashboard/projects/:id.
func (h *DesignerHandler) GetProject(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	project, err := h.projects.Get(c.UserContext(), sess.SubjectID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(project)})
}

// UpdateProject PUT /designer-dashboard/projects/:id.
func (h *DesignerHandler) UpdateProject(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	in, err := parseProjectRequest(c)
	if err != nil {
		return err
	}
	project, err := h.projects.Update(c.UserContext(), sess.SubjectID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(project)})
}

// DeleteProject DELETE /designer-dashboard/projects/:id.
func (h *DesignerHandler) DeleteProject(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.UserContext(), sess.SubjectID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseProjectRequest(c *fiber.Ctx) (service.ProjectInput, error) {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ProjectInput{}, errorutil.NewValidationError("invalid payload", nil)
	}
	return service.ProjectInput{
		Title:       req.Title,
		Category:    domain.ProjectCategory(req.Category),
		Budget:      req.Budget,
		Duration:    req.Duration,
		Location:    req.Location,
		Style:       req.Style,
		Status:      domain.ProjectStatus(req.Status),
		Description: req.Description,
		Tags:        req.Tags,
		ImageURLs:   req.ImageURLs,
	}, nil
}
