package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/events"
	"github.com/interinest/marketplace/internal/repository"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

// AdminService backs the admin dashboard.
type AdminService struct {
	accounts    repository.AccountRepository
	projects    repository.ProjectRepository
	credentials repository.CredentialRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	AccountRepo    repository.AccountRepository
	ProjectRepo    repository.ProjectRepository
	CredentialRepo repository.CredentialRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		accounts:    deps.AccountRepo,
		projects:    deps.ProjectRepo,
		credentials: deps.CredentialRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// Stats aggregates marketplace totals.
func (s *AdminService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	designers, err := s.accounts.DesignerStats(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	projects, err := s.projects.Counts(ctx, nil)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return domain.DashboardStats{
		TotalDesigners:     designers.Total,
		TotalProjects:      projects.Total,
		TotalDesignerViews: designers.Views,
		PendingDesigners:   designers.Pending,
		PublishedProjects:  projects.Published,
	}, nil
}

// ListDesigners lists designer accounts, optionally filtered by review status.
func (s *AdminService) ListDesigners(ctx context.Context, status *domain.AccountStatus, limit, offset int) ([]domain.Account, error) {
	role := domain.RoleDesigner
	return s.accounts.List(ctx, repository.AccountFilter{
		Role:   &role,
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
}

// ApproveDesigner marks a pending designer as approved. Approving twice is a no-op.
func (s *AdminService) ApproveDesigner(ctx context.Context, adminID, designerID string) (*domain.Account, error) {
	account, err := s.accounts.GetBySubjectID(ctx, designerID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if account == nil || account.Role != domain.RoleDesigner {
		return nil, errorutil.NewNotFound("designer", map[string]any{"id": designerID})
	}
	if account.Status == domain.AccountStatusApproved {
		return account, nil
	}

	if err := s.accounts.SetStatus(ctx, designerID, domain.AccountStatusApproved); err != nil {
		return nil, err
	}
	account.Status = domain.AccountStatusApproved

	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventDesignerApproved, designerID,
		events.DesignerApprovedPayload{ApprovedBy: adminID}))
	return account, nil
}

// SetAccountDisabled blocks or restores sign-in for subjectID. A disabled
// account fails login with ACCOUNT_DISABLED; its profile and projects stay.
func (s *AdminService) SetAccountDisabled(ctx context.Context, adminID, subjectID string, disabled bool) (*domain.Account, error) {
	if subjectID == adminID {
		return nil, errorutil.NewValidationError("admins cannot change access to their own account", nil)
	}

	account, err := s.accounts.GetBySubjectID(ctx, subjectID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, accountNotFound(subjectID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.credentials.SetDisabled(ctx, subjectID, disabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, accountNotFound(subjectID)
		}
		return nil, err
	}

	eventType := events.EventAccountEnabled
	if disabled {
		eventType = events.EventAccountDisabled
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.New(eventType, subjectID,
		events.AccountAccessPayload{ChangedBy: adminID}))
	return account, nil
}

func accountNotFound(id string) error {
	return errorutil.NewNotFound("account", map[string]any{"id": id})
}
