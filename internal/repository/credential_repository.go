package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Credential is the identity provider's private login record.
type Credential struct {
	SubjectID    string
	Email        string
	PasswordHash string
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CredentialRepository persists email/password credentials.
type CredentialRepository interface {
	Create(ctx context.Context, cred *Credential) error
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	Delete(ctx context.Context, subjectID string) error
	SetDisabled(ctx context.Context, subjectID string, disabled bool) error
}

type credentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{pool: pool}
}

func (r *credentialRepository) Create(ctx context.Context, cred *Credential) error {
	const query = `
        INSERT INTO credentials (subject_id, email, password_hash, disabled)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		cred.SubjectID,
		cred.Email,
		cred.PasswordHash,
		cred.Disabled,
	).Scan(&cred.CreatedAt, &cred.UpdatedAt)
	return mapWriteError(err)
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	const query = `
        SELECT subject_id, email, password_hash, disabled, created_at, updated_at
        FROM credentials WHERE email=$1`

	var cred Credential
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&cred.SubjectID,
		&cred.Email,
		&cred.PasswordHash,
		&cred.Disabled,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) Delete(ctx context.Context, subjectID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM credentials WHERE subject_id=$1`, subjectID)
	return err
}

func (r *credentialRepository) SetDisabled(ctx context.Context, subjectID string, disabled bool) error {
	const query = `
        UPDATE credentials SET disabled=$1, updated_at=NOW()
        WHERE subject_id=$2`

	cmd, err := r.pool.Exec(ctx, query, disabled, subjectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
