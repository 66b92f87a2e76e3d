package handlers

import (
	"context"

	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/service"
)

// SessionIssuer is implemented by service.SessionService.
type SessionIssuer interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, in service.RegistrationInput) (*domain.Session, error)
	Logout(ctx context.Context, sess *domain.Session) error
}

// AccountReader is implemented by service.AccountService.
type AccountReader interface {
	Profile(ctx context.Context, subjectID string) (*domain.Account, error)
	DesignerDashboard(ctx context.Context, subjectID string) (*service.DesignerDashboard, error)
	UpdatePortfolio(ctx context.Context, subjectID string, in service.PortfolioInput) (*domain.Account, error)
	PublicDesigner(ctx context.Context, subjectID string) (*domain.Account, error)
}

// ProjectManager is implemented by service.ProjectService.
type ProjectManager interface {
	Create(ctx context.Context, ownerID string, in service.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, ownerID, projectID string, in service.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, ownerID, projectID string) error
	Get(ctx context.Context, ownerID, projectID string) (*domain.Project, error)
	ListOwned(ctx context.Context, ownerID string, limit, offset int) ([]domain.Project, error)
	ListPublished(ctx context.Context, limit, offset int) ([]domain.Project, error)
}

// AdminConsole is implemented by service.AdminService.
type AdminConsole interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
	ListDesigners(ctx context.Context, status *domain.AccountStatus, limit, offset int) ([]domain.Account, error)
	ApproveDesigner(ctx context.Context, adminID, designerID string) (*domain.Account, error)
	SetAccountDisabled(ctx context.Context, adminID, subjectID string, disabled bool) (*domain.Account, error)
}
