package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/repository"
)

// RoleResolver maps a subject to the role stored on its account record.
type RoleResolver struct {
	accounts repository.AccountRepository
}

// NewRoleResolver builds the resolver.
func NewRoleResolver(accounts repository.AccountRepository) *RoleResolver {
	return &RoleResolver{accounts: accounts}
}

// Resolve performs a single lookup. A missing record yields ok=false and no error.
func (r *RoleResolver) Resolve(ctx context.Context, subjectID string) (domain.Role, bool, error) {
	account, err := r.accounts.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return account.Role, true, nil
}
