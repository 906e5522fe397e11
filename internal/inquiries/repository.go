package inquiries

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insign-app/backend/internal/models"
)

// Repository persists inquiries in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an inquiries repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const inquiryColumns = `i.id, i.user_id, i.category, i.subject, i.content, i.attachment_urls,
	i.status, i.admin_note, i.answered_at, i.created_at, i.updated_at`

func scanInquiry(row pgx.Row, inq *models.Inquiry) error {
	return row.Scan(&inq.ID, &inq.UserID, &inq.Category, &inq.Subject, &inq.Content,
		&inq.AttachmentURLs, &inq.Status, &inq.AdminNote, &inq.AnsweredAt, &inq.CreatedAt, &inq.UpdatedAt)
}

// Insert stores a new inquiry and fills generated fields. A nil attachment
// list is stored as SQL NULL.
func (r *Repository) Insert(ctx context.Context, inq *models.Inquiry) error {
	const q = `INSERT INTO inquiries (user_id, category, subject, content, attachment_urls, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q,
		inq.UserID, inq.Category, inq.Subject, inq.Content, inq.AttachmentURLs, inq.Status).
		Scan(&inq.ID, &inq.CreatedAt, &inq.UpdatedAt)
}

// ListPage returns one page of inquiries joined with their owners, newest
// first, plus the total row count.
func (r *Repository) ListPage(ctx context.Context, limit, offset int) ([]models.Inquiry, int64, error) {
	const q = `SELECT ` + inquiryColumns + `,
			u.id, u.email, u.display_name, u.is_active, u.created_at, u.updated_at
		FROM inquiries i
		JOIN users u ON u.id = i.user_id
		ORDER BY i.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []models.Inquiry
	for rows.Next() {
		var inq models.Inquiry
		var u models.User
		err := rows.Scan(&inq.ID, &inq.UserID, &inq.Category, &inq.Subject, &inq.Content,
			&inq.AttachmentURLs, &inq.Status, &inq.AdminNote, &inq.AnsweredAt, &inq.CreatedAt, &inq.UpdatedAt,
			&u.ID, &u.Email, &u.DisplayName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		inq.User = &u
		list = append(list, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByUser returns a user's inquiries, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Inquiry, error) {
	const q = `SELECT ` + inquiryColumns + ` FROM inquiries i
		WHERE i.user_id = $1
		ORDER BY i.created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Inquiry
	for rows.Next() {
		var inq models.Inquiry
		if err := scanInquiry(rows, &inq); err != nil {
			return nil, err
		}
		list = append(list, inq)
	}
	return list, rows.Err()
}

// GetByID returns one inquiry with its owner resolved, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Inquiry, error) {
	const q = `SELECT ` + inquiryColumns + `,
			u.id, u.email, u.display_name, u.is_active, u.created_at, u.updated_at
		FROM inquiries i
		JOIN users u ON u.id = i.user_id
		WHERE i.id = $1`
	var inq models.Inquiry
	var u models.User
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&inq.ID, &inq.UserID, &inq.Category, &inq.Subject, &inq.Content,
		&inq.AttachmentURLs, &inq.Status, &inq.AdminNote, &inq.AnsweredAt, &inq.CreatedAt, &inq.UpdatedAt,
		&u.ID, &u.Email, &u.DisplayName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	inq.User = &u
	return &inq, nil
}

// Save writes the mutable columns back and bumps updated_at.
func (r *Repository) Save(ctx context.Context, inq *models.Inquiry) error {
	const q = `UPDATE inquiries
		SET status = $2, admin_note = $3, answered_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.pool.QueryRow(ctx, q, inq.ID, inq.Status, inq.AdminNote, inq.AnsweredAt).Scan(&inq.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes the inquiry row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	return err
}
