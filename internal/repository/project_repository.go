package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/interinest/marketplace/internal/domain"
)

// ProjectFilter captures listing parameters.
type ProjectFilter struct {
	OwnerID *string
	Status  *domain.ProjectStatus
	Limit   int
	Offset  int
}

// ProjectCounts aggregates project counters for the admin dashboard.
type ProjectCounts struct {
	Total     int64
	Published int64
}

// ProjectRepository encapsulates showcase project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id, ownerID string) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	Counts(ctx context.Context, ownerID *string) (ProjectCounts, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id::text, owner_id, title, category, budget, duration, location, style, status,
               description, tags, image_urls, created_at, updated_at`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (owner_id, title, category, budget, duration, location, style, status, description, tags, image_urls)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id::text, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		project.OwnerID,
		project.Title,
		project.Category,
		project.Budget,
		project.Duration,
		project.Location,
		project.Style,
		project.Status,
		project.Description,
		nonNil(project.Tags),
		nonNil(project.ImageURLs),
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET title=$1, category=$2, budget=$3, duration=$4, location=$5, style=$6,
            status=$7, description=$8, tags=$9, image_urls=$10, updated_at=NOW()
        WHERE id=$11 AND owner_id=$12
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		project.Title,
		project.Category,
		project.Budget,
		project.Duration,
		project.Location,
		project.Style,
		project.Status,
		project.Description,
		nonNil(project.Tags),
		nonNil(project.ImageURLs),
		project.ID,
		project.OwnerID,
	).Scan(&project.UpdatedAt)
}

func (r *projectRepository) Delete(ctx context.Context, id, ownerID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &projects[0], nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		projectColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

// Counts returns project totals, scoped to one owner when ownerID is set.
func (r *projectRepository) Counts(ctx context.Context, ownerID *string) (ProjectCounts, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status=$1) FROM projects`
	args := []any{domain.ProjectStatusPublished}
	if ownerID != nil {
		query += ` WHERE owner_id=$2`
		args = append(args, *ownerID)
	}

	var counts ProjectCounts
	err := r.pool.QueryRow(ctx, query, args...).Scan(&counts.Total, &counts.Published)
	return counts, err
}

func scanProjects(rows pgx.Rows) ([]domain.Project, error) {
	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.OwnerID,
			&project.Title,
			&project.Category,
			&project.Budget,
			&project.Duration,
			&project.Location,
			&project.Style,
			&project.Status,
			&project.Description,
			&project.Tags,
			&project.ImageURLs,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}
