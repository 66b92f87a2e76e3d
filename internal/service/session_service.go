package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/auth"
	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/events"
	"github.com/interinest/marketplace/internal/identity"
	"github.com/interinest/marketplace/internal/repository"
	"github.com/interinest/marketplace/pkg/util/errorutil"
)

const (
	minRegistrationImages = 2
	maxRegistrationImages = 5
)

// SessionService authenticates credentials or creates designer accounts and
// issues sessions bound to the resolved role.
type SessionService struct {
	provider   identity.Provider
	accounts   repository.AccountRepository
	resolver   *RoleResolver
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// SessionDependencies bundles collaborators for the session service.
type SessionDependencies struct {
	Provider    identity.Provider
	AccountRepo repository.AccountRepository
	Tokens      *auth.TokenManager
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(deps SessionDependencies) *SessionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		provider:   deps.Provider,
		accounts:   deps.AccountRepo,
		resolver:   NewRoleResolver(deps.AccountRepo),
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// RegistrationInput is the designer sign-up payload.
type RegistrationInput struct {
	Email           string
	Password        string
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

// Login verifies credentials, resolves the role and mints a session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	ident, err := s.provider.VerifyCredentials(ctx, email, password)
	if err != nil {
		mapped := mapLoginError(err)
		if errors.Is(mapped, ErrLoginFailed) {
			s.logger.Error("credential verification failed", zap.Error(err))
		}
		return nil, mapped
	}

	role, ok, err := s.resolver.Resolve(ctx, ident.SubjectID)
	if err != nil {
		s.logger.Error("role lookup failed", zap.String("uid", ident.SubjectID), zap.Error(err))
		return nil, ErrLoginFailed
	}
	if !ok {
		return nil, ErrAccountNotRegistered
	}

	sess, err := s.issue(ident.SubjectID, role)
	if err != nil {
		s.logger.Error("mint session token", zap.String("uid", ident.SubjectID), zap.Error(err))
		return nil, ErrLoginFailed
	}

	s.publish(ctx, events.New(events.EventSessionStarted, sess.SubjectID, events.SessionPayload{Role: role}))
	return sess, nil
}

// Register creates the identity and the designer account, then mints a session.
// The identity is removed again if the account cannot be stored.
func (s *SessionService) Register(ctx context.Context, in RegistrationInput) (*domain.Session, error) {
	in = normalizeRegistration(in)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	taken, err := s.accounts.ExistsByPhone(ctx, in.Phone)
	if err != nil {
		s.logger.Error("phone lookup failed", zap.Error(err))
		return nil, ErrRegistrationFailed
	}
	if taken {
		return nil, ErrPhoneAlreadyInUse
	}

	ident, err := s.provider.CreateAccount(ctx, in.Email, in.Password)
	if err != nil {
		mapped := mapRegistrationError(err)
		if errors.Is(mapped, ErrRegistrationFailed) {
			s.logger.Error("create identity failed", zap.Error(err))
		}
		return nil, mapped
	}

	account := &domain.Account{
		SubjectID:       ident.SubjectID,
		Role:            domain.RoleDesigner,
		Email:           ident.Email,
		FullName:        in.FullName,
		Phone:           in.Phone,
		City:            in.City,
		Experience:      in.Experience,
		Services:        in.Services,
		BudgetRange:     in.BudgetRange,
		Portfolio:       in.Portfolio,
		Instagram:       in.Instagram,
		Website:         in.Website,
		Styles:          in.Styles,
		LeadsPreference: in.LeadsPreference,
		Notes:           in.Notes,
		ImageURLs:       in.ImageURLs,
		Status:          domain.AccountStatusPending,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		s.compensate(ctx, ident.SubjectID)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhoneAlreadyInUse
		}
		s.logger.Error("persist account failed", zap.String("uid", ident.SubjectID), zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	sess, err := s.issue(ident.SubjectID, account.Role)
	if err != nil {
		s.logger.Error("mint session token", zap.String("uid", ident.SubjectID), zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	s.publish(ctx, events.New(events.EventAccountRegistered, ident.SubjectID,
		events.AccountRegisteredPayload{Role: account.Role, Email: account.Email}))
	s.publish(ctx, events.New(events.EventSessionStarted, ident.SubjectID,
		events.SessionPayload{Role: account.Role}))
	return sess, nil
}

// Logout records the end of a session. Cookie removal is the caller's job.
func (s *SessionService) Logout(ctx context.Context, sess *domain.Session) error {
	if !sess.Valid() {
		return nil
	}
	s.publish(ctx, events.New(events.EventSessionEnded, sess.SubjectID, events.SessionPayload{Role: sess.Role}))
	return nil
}

func (s *SessionService) issue(subjectID string, role domain.Role) (*domain.Session, error) {
	token, exp, err := s.tokens.GenerateToken(subjectID, role)
	if err != nil {
		return nil, err
	}
	return &domain.Session{SubjectID: subjectID, Role: role, Token: token, ExpiresAt: exp}, nil
}

func (s *SessionService) compensate(ctx context.Context, subjectID string) {
	if err := s.provider.DeleteAccount(context.WithoutCancel(ctx), subjectID); err != nil {
		s.logger.Error("rollback identity failed", zap.String("uid", subjectID), zap.Error(err))
	}
}

func (s *SessionService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, event)
}

func normalizeRegistration(in RegistrationInput) RegistrationInput {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.City = strings.TrimSpace(in.City)
	in.Services = compactStrings(in.Services)
	in.Styles = compactStrings(in.Styles)
	in.ImageURLs = compactStrings(in.ImageURLs)
	return in
}

func validateRegistration(in RegistrationInput) error {
	missing := []string{}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if in.FullName == "" {
		missing = append(missing, "fullName")
	}
	if in.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return errorutil.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}
	if n := len(in.ImageURLs); n < minRegistrationImages || n > maxRegistrationImages {
		return errorutil.NewValidationError("between 2 and 5 images are required", map[string]any{"images": n})
	}
	return nil
}

// compactStrings trims entries and drops empties and duplicates, keeping order.
func compactStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
