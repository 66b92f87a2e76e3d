package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/interinest/marketplace/internal/api/dto"
	"github.com/interinest/marketplace/internal/auth"
	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

func currentSession(c *fiber.Ctx) (*domain.Session, error) {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return nil, errorutil.NewUnauthorized("session required")
	}
	return sess, nil
}

func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("limit", 20), c.QueryInt("offset", 0)
}

func accountResponse(a *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		UID:             a.SubjectID,
		Role:            string(a.Role),
		Email:           a.Email,
		FullName:        a.FullName,
		Phone:           a.Phone,
		City:            a.City,
		Experience:      a.Experience,
		Services:        emptyIfNil(a.Services),
		BudgetRange:     a.BudgetRange,
		Portfolio:       a.Portfolio,
		Instagram:       a.Instagram,
		Website:         a.Website,
		Styles:          emptyIfNil(a.Styles),
		LeadsPreference: a.LeadsPreference,
		Notes:           a.Notes,
		ImageURLs:       emptyIfNil(a.ImageURLs),
		Status:          string(a.Status),
		Views:           a.Views,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func publicDesignerResponse(a *domain.Account) dto.PublicDesignerResponse {
	return dto.PublicDesignerResponse{
		UID:        a.SubjectID,
		FullName:   a.FullName,
		City:       a.City,
		Experience: a.Experience,
		Services:   emptyIfNil(a.Services),
		Styles:     emptyIfNil(a.Styles),
		Portfolio:  a.Portfolio,
		Instagram:  a.Instagram,
		Website:    a.Website,
		ImageURLs:  emptyIfNil(a.ImageURLs),
		Views:      a.Views,
	}
}

func projectResponse(p *domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Category:    string(p.Category),
		Budget:      p.Budget,
		Duration:    p.Duration,
		Location:    p.Location,
		Style:       p.Style,
		Status:      string(p.Status),
		Description: p.Description,
		Tags:        emptyIfNil(p.Tags),
		ImageURLs:   emptyIfNil(p.ImageURLs),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func projectList(projects []domain.Project) []dto.ProjectResponse {
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, projectResponse(&projects[i]))
	}
	return items
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
