package events

import (
	"context"
	"testing"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insign-app/backend/internal/models"
)

type fakeEventStore struct {
	events map[int64]*models.Event
	nextID int64
	saves  int
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.Event), nextID: 1}
}

func (f *fakeEventStore) ListActive(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	for _, e := range f.events {
		if e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) ListAll(ctx context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventStore) Insert(ctx context.Context, e *models.Event) error {
	e.ID = f.nextID
	f.nextID++
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeEventStore) Save(ctx context.Context, e *models.Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return ErrNotFound
	}
	f.saves++
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeEventStore) Delete(ctx context.Context, id int64) error {
	delete(f.events, id)
	return nil
}

func newTestEventService(store Store) *Service {
	return NewService(store, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestCreateDefaultsToActive(t *testing.T) {
	svc := newTestEventService(newFakeEventStore())

	e, err := svc.Create(context.Background(), CreateInput{Title: "Launch promo", Content: "Half off"})
	require.NoError(t, err)
	assert.True(t, e.IsActive)
	assert.Nil(t, e.StartDate)
	assert.Nil(t, e.EndDate)
}

func TestCreateParsesDates(t *testing.T) {
	svc := newTestEventService(newFakeEventStore())

	e, err := svc.Create(context.Background(), CreateInput{
		Title:     "Spring event",
		Content:   "details",
		StartDate: strPtr("2026-03-01"),
		EndDate:   strPtr("2026-03-31"),
		IsActive:  boolPtr(false),
	})
	require.NoError(t, err)
	require.NotNil(t, e.StartDate)
	require.NotNil(t, e.EndDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *e.StartDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *e.EndDate)
	assert.False(t, e.IsActive)
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	svc := newTestEventService(newFakeEventStore())

	_, err := svc.Create(context.Background(), CreateInput{
		Title:     "Bad",
		Content:   "c",
		StartDate: strPtr("03/01/2026"),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "start_date")
}

func TestUpdateDateTriState(t *testing.T) {
	store := newFakeEventStore()
	svc := newTestEventService(store)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{
		Title:     "Event",
		Content:   "c",
		StartDate: strPtr("2026-05-01"),
		EndDate:   strPtr("2026-05-31"),
	})
	require.NoError(t, err)

	// absent fields leave the dates untouched
	updated, err := svc.Update(ctx, e.ID, UpdateInput{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.StartDate)
	require.NotNil(t, updated.EndDate)

	// a value replaces
	updated, err = svc.Update(ctx, e.ID, UpdateInput{
		StartDate: nullable.NewNullableWithValue("2026-06-01"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.StartDate)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *updated.StartDate)

	// explicit null clears
	updated, err = svc.Update(ctx, e.ID, UpdateInput{
		EndDate: nullable.NewNullNullable[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.EndDate)
	require.NotNil(t, updated.StartDate)
}

func TestUpdateEmptyPartialStillSaves(t *testing.T) {
	store := newFakeEventStore()
	svc := newTestEventService(store)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{Title: "Event", Content: "c"})
	require.NoError(t, err)

	before := store.saves
	updated, err := svc.Update(ctx, e.ID, UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, e.Title, updated.Title)
	assert.Equal(t, before+1, store.saves)
}

func TestUpdateRejectsMalformedDate(t *testing.T) {
	store := newFakeEventStore()
	svc := newTestEventService(store)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{Title: "Event", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, e.ID, UpdateInput{
		EndDate: nullable.NewNullableWithValue("next friday"),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "end_date")
}

func TestUpdateMissingEvent(t *testing.T) {
	svc := newTestEventService(newFakeEventStore())

	_, err := svc.Update(context.Background(), 42, UpdateInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListActiveFiltersInactive(t *testing.T) {
	store := newFakeEventStore()
	svc := newTestEventService(store)
	ctx := context.Background()

	active, err := svc.Create(ctx, CreateInput{Title: "Visible", Content: "c"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Title: "Hidden", Content: "c", IsActive: boolPtr(false)})
	require.NoError(t, err)

	list, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newFakeEventStore()
	svc := newTestEventService(store)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateInput{Title: "Event", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))
	require.NoError(t, svc.Delete(ctx, e.ID))
}
