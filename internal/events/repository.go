package events

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insign-app/backend/internal/models"
)

// Repository persists events in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, title, content, start_date, end_date, is_active, created_at, updated_at`

func scanEvent(row pgx.Row, e *models.Event) error {
	return row.Scan(&e.ID, &e.Title, &e.Content, &e.StartDate, &e.EndDate, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
}

// ListActive returns events with is_active = true, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE is_active ORDER BY created_at DESC`)
}

// ListAll returns every event, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
}

func (r *Repository) list(ctx context.Context, q string) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		var e models.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetByID returns one event or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	var e models.Event
	err := scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id), &e)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Insert stores a new event and fills generated fields.
func (r *Repository) Insert(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (title, content, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, e.Title, e.Content, e.StartDate, e.EndDate, e.IsActive).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Save writes every mutable column back and bumps updated_at.
func (r *Repository) Save(ctx context.Context, e *models.Event) error {
	const q = `UPDATE events
		SET title = $2, content = $3, start_date = $4, end_date = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, e.ID, e.Title, e.Content, e.StartDate, e.EndDate, e.IsActive).
		Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes the event; deleting a missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}
