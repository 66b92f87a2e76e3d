package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/events"
	"github.com/interinest/marketplace/internal/repository"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

const minProjectImages = 3

// ProjectService manages a designer's showcase projects.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{projects: projects, dispatcher: dispatcher, logger: logger}
}

// ProjectInput describes the editable fields of a project.
type ProjectInput struct {
	Title       string
	Category    domain.ProjectCategory
	Budget      string
	Duration    string
	Location    string
	Style       string
	Status      domain.ProjectStatus
	Description string
	Tags        []string
	ImageURLs   []string
}

// Create stores a new project owned by ownerID.
func (s *ProjectService) Create(ctx context.Context, ownerID string, in ProjectInput) (*domain.Project, error) {
	in, err := normalizeProject(in)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{OwnerID: ownerID}
	applyProjectInput(project, in)
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.emit(ctx, events.EventProjectCreated, project)
	return project, nil
}

// Update replaces the editable fields of an owned project.
func (s *ProjectService) Update(ctx context.Context, ownerID, projectID string, in ProjectInput) (*domain.Project, error) {
	in, err := normalizeProject(in)
	if err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	applyProjectInput(project, in)
	if err := s.projects.Update(ctx, project); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, projectNotFound(projectID)
		}
		return nil, err
	}

	s.emit(ctx, events.EventProjectUpdated, project)
	return project, nil
}

// Delete removes an owned project.
func (s *ProjectService) Delete(ctx context.Context, ownerID, projectID string) error {
	if _, err := uuid.Parse(projectID); err != nil {
		return projectNotFound(projectID)
	}
	if err := s.projects.Delete(ctx, projectID, ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return projectNotFound(projectID)
		}
		return err
	}

	s.emit(ctx, events.EventProjectDeleted, &domain.Project{ID: projectID, OwnerID: ownerID})
	return nil
}

// Get returns a project only to its owner. Other callers see not found.
func (s *ProjectService) Get(ctx context.Context, ownerID, projectID string) (*domain.Project, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, projectNotFound(projectID)
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, projectNotFound(projectID)
		}
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, projectNotFound(projectID)
	}
	return project, nil
}

// ListOwned lists the caller's projects, newest first.
func (s *ProjectService) ListOwned(ctx context.Context, ownerID string, limit, offset int) ([]domain.Project, error) {
	return s.projects.List(ctx, repository.ProjectFilter{OwnerID: &ownerID, Limit: limit, Offset: offset})
}

// ListPublished lists projects visible in the public catalogue.
func (s *ProjectService) ListPublished(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	status := domain.ProjectStatusPublished
	return s.projects.List(ctx, repository.ProjectFilter{Status: &status, Limit: limit, Offset: offset})
}

func (s *ProjectService) emit(ctx context.Context, eventType events.EventType, project *domain.Project) {
	publishEvent(ctx, s.dispatcher, s.logger, events.New(eventType, project.OwnerID, events.ProjectPayload{
		ProjectID: project.ID,
		Title:     project.Title,
		Status:    project.Status,
	}))
}

func projectNotFound(id string) error {
	return errorutil.NewNotFound("project", map[string]any{"id": id})
}

func normalizeProject(in ProjectInput) (ProjectInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Budget = strings.TrimSpace(in.Budget)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Location = strings.TrimSpace(in.Location)
	in.Style = strings.TrimSpace(in.Style)
	in.Description = strings.TrimSpace(in.Description)
	in.Tags = compactStrings(in.Tags)
	in.ImageURLs = compactStrings(in.ImageURLs)
	if in.Status == "" {
		in.Status = domain.ProjectStatusDraft
	}

	missing := []string{}
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"category", string(in.Category)},
		{"budget", in.Budget},
		{"duration", in.Duration},
		{"location", in.Location},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return in, errorutil.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}
	if !in.Category.Valid() {
		return in, errorutil.NewValidationError("invalid category", map[string]any{"category": in.Category})
	}
	if !in.Status.Valid() {
		return in, errorutil.NewValidationError("invalid status", map[string]any{"status": in.Status})
	}
	if len(in.ImageURLs) < minProjectImages {
		return in, errorutil.NewValidationError("at least 3 images are required", map[string]any{"images": len(in.ImageURLs)})
	}
	return in, nil
}

func applyProjectInput(project *domain.Project, in ProjectInput) {
	project.Title = in.Title
	project.Category = in.Category
	project.Budget = in.Budget
	project.Duration = in.Duration
	project.Location = in.Location
	project.Style = in.Style
	project.Status = in.Status
	project.Description = in.Description
	project.Tags = in.Tags
	project.ImageURLs = in.ImageURLs
}
