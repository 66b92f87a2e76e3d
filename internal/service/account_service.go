package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/repository"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

// AccountService serves profile reads and edits for the dashboards and the
// public designer catalogue.
type AccountService struct {
	accounts repository.AccountRepository
	projects repository.ProjectRepository
	logger   *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(accounts repository.AccountRepository, projects repository.ProjectRepository, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{accounts: accounts, projects: projects, logger: logger}
}

// DesignerDashboard is the landing view of a designer.
type DesignerDashboard struct {
	Account           *domain.Account
	TotalProjects     int64
	PublishedProjects int64
}

// PortfolioInput holds the profile fields a designer may edit.
type PortfolioInput struct {
	FullName        string
	Phone           string
	City            string
	Experience      string
	Services        []string
	BudgetRange     string
	Portfolio       string
	Instagram       string
	Website         string
	Styles          []string
	LeadsPreference string
	Notes           string
	ImageURLs       []string
}

// Profile returns the caller's own account record.
func (s *AccountService) Profile(ctx context.Context, subjectID string) (*domain.Account, error) {
	account, err := s.accounts.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("account", nil)
		}
		return nil, err
	}
	return account, nil
}

// DesignerDashboard returns the profile with project counters.
func (s *AccountService) DesignerDashboard(ctx context.Context, subjectID string) (*DesignerDashboard, error) {
	account, err := s.Profile(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	counts, err := s.projects.Counts(ctx, &subjectID)
	if err != nil {
		return nil, err
	}
	return &DesignerDashboard{
		Account:           account,
		TotalProjects:     counts.Total,
		PublishedProjects: counts.Published,
	}, nil
}

// UpdatePortfolio edits profile fields. Email and role are never changed here.
func (s *AccountService) UpdatePortfolio(ctx context.Context, subjectID string, in PortfolioInput) (*domain.Account, error) {
	account, err := s.Profile(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.FullName == "" {
		return nil, errorutil.NewValidationError("missing required fields", map[string]any{"fields": []string{"fullName"}})
	}

	if in.Phone != "" && in.Phone != account.Phone {
		taken, err := s.accounts.ExistsByPhone(ctx, in.Phone)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPhoneAlreadyInUse
		}
	}

	account.FullName = in.FullName
	account.Phone = in.Phone
	account.City = strings.TrimSpace(in.City)
	account.Experience = strings.TrimSpace(in.Experience)
	account.Services = compactStrings(in.Services)
	account.BudgetRange = strings.TrimSpace(in.BudgetRange)
	account.Portfolio = strings.TrimSpace(in.Portfolio)
	account.Instagram = strings.TrimSpace(in.Instagram)
	account.Website = strings.TrimSpace(in.Website)
	account.Styles = compactStrings(in.Styles)
	account.LeadsPreference = strings.TrimSpace(in.LeadsPreference)
	account.Notes = strings.TrimSpace(in.Notes)
	account.ImageURLs = compactStrings(in.ImageURLs)

	if err := s.accounts.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneAlreadyInUse
		}
		return nil, err
	}
	return account, nil
}

// PublicDesigner returns an approved designer profile and counts the view.
func (s *AccountService) PublicDesigner(ctx context.Context, subjectID string) (*domain.Account, error) {
	account, err := s.accounts.GetBySubjectID(ctx, subjectID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if account == nil || account.Role != domain.RoleDesigner || account.Status != domain.AccountStatusApproved {
		return nil, errorutil.NewNotFound("designer", map[string]any{"id": subjectID})
	}

	if err := s.accounts.IncrementViews(ctx, subjectID); err != nil {
		s.logger.Warn("increment designer views", zap.String("uid", subjectID), zap.Error(err))
	} else {
		account.Views++
	}
	return account, nil
}
