package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/repository"
)

// Options tunes the local provider.
type Options struct {
	BcryptCost        int
	MinPasswordLength int
	SignupEnabled     bool
}

// LocalProvider is a Postgres-backed email/password identity provider.
type LocalProvider struct {
	creds   repository.CredentialRepository
	limiter AttemptLimiter
	opts    Options
	logger  *zap.Logger
}

// NewLocalProvider constructs the provider. limiter may be nil.
func NewLocalProvider(creds repository.CredentialRepository, limiter AttemptLimiter, opts Options, logger *zap.Logger) *LocalProvider {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = 6
	}
	return &LocalProvider{creds: creds, limiter: limiter, opts: opts, logger: logger}
}

// VerifyCredentials checks email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (p *LocalProvider) VerifyCredentials(ctx context.Context, email, password string) (*Identity, error) {
	email, ok := normalizeEmail(email)
	if !ok {
		return nil, newError(CodeInvalidEmail)
	}

	blocked, err := p.limiter.Blocked(ctx, email)
	if err != nil {
		p.logger.Warn("login throttle unavailable", zap.Error(err))
	}
	if blocked {
		return nil, newError(CodeTooManyRequests)
	}

	cred, err := p.creds.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.recordFailure(ctx, email)
			return nil, newError(CodeInvalidCredential)
		}
		return nil, err
	}

	if !passwordMatches(cred.PasswordHash, password) {
		p.recordFailure(ctx, email)
		return nil, newError(CodeInvalidCredential)
	}
	if cred.Disabled {
		return nil, newError(CodeUserDisabled)
	}

	if err := p.limiter.Reset(ctx, email); err != nil {
		p.logger.Warn("reset login throttle", zap.Error(err))
	}
	return &Identity{SubjectID: cred.SubjectID, Email: cred.Email}, nil
}

// CreateAccount registers a new email/password login.
func (p *LocalProvider) CreateAccount(ctx context.Context, email, password string) (*Identity, error) {
	if !p.opts.SignupEnabled {
		return nil, newError(CodeOperationNotAllowed)
	}
	email, ok := normalizeEmail(email)
	if !ok {
		return nil, newError(CodeInvalidEmail)
	}
	if len(password) < p.opts.MinPasswordLength {
		return nil, newError(CodeWeakPassword)
	}

	hash, err := hashPassword(password, p.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	cred := &repository.Credential{
		SubjectID:    uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := p.creds.Create(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(CodeEmailAlreadyInUse)
		}
		return nil, err
	}
	return &Identity{SubjectID: cred.SubjectID, Email: cred.Email}, nil
}

// DeleteAccount removes a login. Deleting an unknown subject is not an error.
func (p *LocalProvider) DeleteAccount(ctx context.Context, subjectID string) error {
	return p.creds.Delete(ctx, subjectID)
}

func (p *LocalProvider) recordFailure(ctx context.Context, email string) {
	if err := p.limiter.RecordFailure(ctx, email); err != nil {
		p.logger.Warn("record failed login", zap.Error(err))
	}
}

func normalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return "", false
	}
	return email, true
}
