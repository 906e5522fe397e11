package policies

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insign-app/backend/internal/models"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting one
// repository type serve pooled and transactional calls.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists policies in PostgreSQL.
type Repository struct {
	db   querier
	pool *pgxpool.Pool // nil when bound to a transaction
}

// NewRepository creates a policies repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool, pool: pool}
}

const policyColumns = `id, type, title, content, version, is_active, created_at, updated_at`

func scanPolicy(row pgx.Row, p *models.Policy) error {
	return row.Scan(&p.ID, &p.Type, &p.Title, &p.Content, &p.Version, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

// ListAll returns every policy, most recently updated first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Policy, error) {
	rows, err := r.db.Query(ctx, `SELECT `+policyColumns+` FROM policies ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Policy
	for rows.Next() {
		var p models.Policy
		if err := scanPolicy(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID returns one policy or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Policy, error) {
	var p models.Policy
	err := scanPolicy(r.db.QueryRow(ctx, `SELECT `+policyColumns+` FROM policies WHERE id = $1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetActiveByType returns the single active policy for a type, or ErrNotFound.
func (r *Repository) GetActiveByType(ctx context.Context, t models.PolicyType) (*models.Policy, error) {
	const q = `SELECT ` + policyColumns + ` FROM policies
		WHERE type = $1 AND is_active
		ORDER BY updated_at DESC
		LIMIT 1`
	var p models.Policy
	err := scanPolicy(r.db.QueryRow(ctx, q, t), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert stores a new policy and fills generated fields.
func (r *Repository) Insert(ctx context.Context, p *models.Policy) error {
	const q = `INSERT INTO policies (type, title, content, version, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, q, p.Type, p.Title, p.Content, p.Version, p.IsActive).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Save writes every mutable column back and bumps updated_at.
func (r *Repository) Save(ctx context.Context, p *models.Policy) error {
	const q = `UPDATE policies
		SET title = $2, content = $3, version = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, q, p.ID, p.Title, p.Content, p.Version, p.IsActive).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a policy; ErrNotFound when zero rows were affected.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateOthers clears is_active on every policy of type t except excludeID.
func (r *Repository) DeactivateOthers(ctx context.Context, t models.PolicyType, excludeID int64) error {
	const q = `UPDATE policies SET is_active = FALSE, updated_at = NOW()
		WHERE type = $1 AND is_active AND id <> $2`
	_, err := r.db.Exec(ctx, q, t, excludeID)
	return err
}

// WithTx runs fn against a repository bound to a single transaction,
// committing on nil and rolling back on error.
func (r *Repository) WithTx(ctx context.Context, fn func(Store) error) error {
	if r.pool == nil {
		// already inside a transaction
		return fn(r)
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&Repository{db: tx})
	})
}
