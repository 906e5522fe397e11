package contracts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insign-app/backend/internal/models"
)

// ErrNotFound is returned when no contract exists for the given id.
var ErrNotFound = errors.New("contract not found")

// Repository reads and updates the signature-request view of contracts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a contracts repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const contractColumns = `id, name, signer_email, signer_name, viewer_token, status, created_at, updated_at`

// GetByID returns one contract or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	var ct models.Contract
	err := r.pool.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id).
		Scan(&ct.ID, &ct.Name, &ct.SignerEmail, &ct.SignerName, &ct.ViewerToken, &ct.Status, &ct.CreatedAt, &ct.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// ListMissingViewerToken returns ids of contracts without a viewer token.
func (r *Repository) ListMissingViewerToken(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM contracts WHERE viewer_token IS NULL ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// EnsureViewerToken stores token only when the contract has none yet and
// returns the effective token, so concurrent backfills cannot overwrite an
// already-issued link.
func (r *Repository) EnsureViewerToken(ctx context.Context, id int64, token string) (string, error) {
	const q = `UPDATE contracts SET viewer_token = $2, updated_at = NOW()
		WHERE id = $1 AND viewer_token IS NULL`
	if _, err := r.pool.Exec(ctx, q, id, token); err != nil {
		return "", err
	}
	ct, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if ct.ViewerToken == nil {
		return "", errors.New("viewer token not set")
	}
	return *ct.ViewerToken, nil
}
