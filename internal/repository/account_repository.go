package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/interinest/marketplace/internal/domain"
)

// AccountFilter captures admin listing parameters.
type AccountFilter struct {
	Role   *domain.Role
	Status *domain.AccountStatus
	Limit  int
	Offset int
}

// DesignerStats aggregates designer counters for the admin dashboard.
type DesignerStats struct {
	Total   int64
	Pending int64
	Views   int64
}

// AccountRepository persists the unified account records.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.Account, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
	SetStatus(ctx context.Context, subjectID string, status domain.AccountStatus) error
	IncrementViews(ctx context.Context, subjectID string) error
	DesignerStats(ctx context.Context) (DesignerStats, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `subject_id, role, email, full_name, phone, city, experience, services,
               budget_range, portfolio, instagram, website, styles, leads_preference, notes,
               image_urls, status, views, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (subject_id, role, email, full_name, phone, city, experience, services,
            budget_range, portfolio, instagram, website, styles, leads_preference, notes, image_urls, status)
        VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING views, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		account.SubjectID,
		account.Role,
		account.Email,
		account.FullName,
		account.Phone,
		account.City,
		account.Experience,
		nonNil(account.Services),
		account.BudgetRange,
		account.Portfolio,
		account.Instagram,
		account.Website,
		nonNil(account.Styles),
		account.LeadsPreference,
		account.Notes,
		nonNil(account.ImageURLs),
		account.Status,
	).Scan(&account.Views, &account.CreatedAt, &account.UpdatedAt)
	return mapWriteError(err)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET full_name=$1, phone=NULLIF($2,''), city=$3, experience=$4, services=$5,
            budget_range=$6, portfolio=$7, instagram=$8, website=$9, styles=$10, leads_preference=$11,
            notes=$12, image_urls=$13, updated_at=NOW()
        WHERE subject_id=$14
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		account.FullName,
		account.Phone,
		account.City,
		account.Experience,
		nonNil(account.Services),
		account.BudgetRange,
		account.Portfolio,
		account.Instagram,
		account.Website,
		nonNil(account.Styles),
		account.LeadsPreference,
		account.Notes,
		nonNil(account.ImageURLs),
		account.SubjectID,
	).Scan(&account.UpdatedAt)
	return mapWriteError(err)
}

func (r *accountRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE subject_id=$1`
	rows, err := r.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts, err := scanAccounts(rows)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &accounts[0], nil
}

func (r *accountRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE phone=$1)`, phone).Scan(&exists)
	return exists, err
}

func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]domain.Account, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		accountColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *accountRepository) SetStatus(ctx context.Context, subjectID string, status domain.AccountStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE accounts SET status=$1, updated_at=NOW() WHERE subject_id=$2`, status, subjectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) IncrementViews(ctx context.Context, subjectID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE accounts SET views = views + 1 WHERE subject_id=$1`, subjectID)
	return err
}

func (r *accountRepository) DesignerStats(ctx context.Context) (DesignerStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status=$2),
               COALESCE(SUM(views), 0)
        FROM accounts WHERE role=$1`

	var stats DesignerStats
	err := r.pool.QueryRow(ctx, query, domain.RoleDesigner, domain.AccountStatusPending).
		Scan(&stats.Total, &stats.Pending, &stats.Views)
	return stats, err
}

func scanAccounts(rows pgx.Rows) ([]domain.Account, error) {
	var result []domain.Account
	for rows.Next() {
		var (
			account domain.Account
			phone   *string
		)
		if err := rows.Scan(
			&account.SubjectID,
			&account.Role,
			&account.Email,
			&account.FullName,
			&phone,
			&account.City,
			&account.Experience,
			&account.Services,
			&account.BudgetRange,
			&account.Portfolio,
			&account.Instagram,
			&account.Website,
			&account.Styles,
			&account.LeadsPreference,
			&account.Notes,
			&account.ImageURLs,
			&account.Status,
			&account.Views,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if phone != nil {
			account.Phone = *phone
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
