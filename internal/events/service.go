package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"

	"github.com/insign-app/backend/internal/models"
)

// ErrNotFound is returned when no event exists for the given id.
var ErrNotFound = errors.New("event not found")

// Store is the persistence surface the event service needs.
type Store interface {
	ListActive(ctx context.Context) ([]models.Event, error)
	ListAll(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Insert(ctx context.Context, e *models.Event) error
	Save(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// CreateInput carries fields for a new event. Date strings use YYYY-MM-DD;
// absent dates are stored null. IsActive defaults to true when unset.
type CreateInput struct {
	Title     string  `json:"title" form:"title" binding:"required,max=255"`
	Content   string  `json:"content" form:"content" binding:"required"`
	StartDate *string `json:"start_date" form:"start_date"`
	EndDate   *string `json:"end_date" form:"end_date"`
	IsActive  *bool   `json:"is_active" form:"is_active"`
}

// UpdateInput is a partial update. Nullable date fields distinguish three
// states: absent leaves the column unchanged, explicit null clears it, a
// value sets it.
type UpdateInput struct {
	Title     *string                   `json:"title"`
	Content   *string                   `json:"content"`
	StartDate nullable.Nullable[string] `json:"start_date"`
	EndDate   nullable.Nullable[string] `json:"end_date"`
	IsActive  *bool                     `json:"is_active"`
}

// Service implements event operations over a Store.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates an event service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ListActive returns active events, newest first.
func (s *Service) ListActive(ctx context.Context) ([]models.Event, error) {
	return s.store.ListActive(ctx)
}

// ListAll returns every event, newest first (admin view).
func (s *Service) ListAll(ctx context.Context) ([]models.Event, error) {
	return s.store.ListAll(ctx)
}

// Get returns one event or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.Event, error) {
	return s.store.GetByID(ctx, id)
}

// Create inserts a new event.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Event, error) {
	startDate, err := parseDatePtr(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	endDate, err := parseDatePtr(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}

	e := &models.Event{
		Title:     in.Title,
		Content:   in.Content,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  true,
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("event created", zap.Int64("event_id", e.ID))
	return e, nil
}

// Update applies the fields present in the partial and saves. Absent fields
// are left untouched; an empty partial still persists (updated_at bumps).
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*models.Event, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Content != nil {
		e.Content = *in.Content
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	if e.StartDate, err = applyDateField(in.StartDate, e.StartDate); err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	if e.EndDate, err = applyDateField(in.EndDate, e.EndDate); err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}

	if err := s.store.Save(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("event updated", zap.Int64("event_id", e.ID))
	return e, nil
}

// Delete removes the event unconditionally.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("event deleted", zap.Int64("event_id", id))
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// applyDateField resolves a tri-state date field against the current value:
// unset keeps current, null clears, a value replaces.
func applyDateField(f nullable.Nullable[string], current *time.Time) (*time.Time, error) {
	if !f.IsSpecified() {
		return current, nil
	}
	if f.IsNull() {
		return nil, nil
	}
	v, err := f.Get()
	if err != nil {
		return nil, err
	}
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
