package policies

import (
	"context"
	"testing"

	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insign-app/backend/internal/models"
)

type fakePolicyStore struct {
	policies map[int64]*models.Policy
	nextID   int64
}

func newFakePolicyStore() *fakePolicyStore {
	return &fakePolicyStore{policies: make(map[int64]*models.Policy), nextID: 1}
}

func (f *fakePolicyStore) ListAll(ctx context.Context) ([]models.Policy, error) {
	out := make([]models.Policy, 0, len(f.policies))
	for _, p := range f.policies {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePolicyStore) GetByID(ctx context.Context, id int64) (*models.Policy, error) {
	p, ok := f.policies[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePolicyStore) GetActiveByType(ctx context.Context, t models.PolicyType) (*models.Policy, error) {
	for _, p := range f.policies {
		if p.Type == t && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakePolicyStore) Insert(ctx context.Context, p *models.Policy) error {
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.policies[p.ID] = &cp
	return nil
}

func (f *fakePolicyStore) Save(ctx context.Context, p *models.Policy) error {
	if _, ok := f.policies[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	f.policies[p.ID] = &cp
	return nil
}

func (f *fakePolicyStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.policies[id]; !ok {
		return ErrNotFound
	}
	delete(f.policies, id)
	return nil
}

func (f *fakePolicyStore) DeactivateOthers(ctx context.Context, t models.PolicyType, excludeID int64) error {
	for _, p := range f.policies {
		if p.Type == t && p.ID != excludeID {
			p.IsActive = false
		}
	}
	return nil
}

func (f *fakePolicyStore) WithTx(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func (f *fakePolicyStore) activeIDs(t models.PolicyType) []int64 {
	var ids []int64
	for _, p := range f.policies {
		if p.Type == t && p.IsActive {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func newTestService(store Store) *Service {
	return NewService(store, zap.NewNop())
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestCreateActivePolicyDeactivatesSiblings(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInput{
		Type:     models.PolicyTypePrivacy,
		Title:    "Privacy v1",
		Content:  "first",
		IsActive: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	second, err := svc.Create(ctx, CreateInput{
		Type:     models.PolicyTypePrivacy,
		Title:    "Privacy v2",
		Content:  "second",
		IsActive: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{second.ID}, store.activeIDs(models.PolicyTypePrivacy))
}

func TestCreateInactivePolicyLeavesActiveAlone(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	ctx := context.Background()

	active, err := svc.Create(ctx, CreateInput{
		Type:     models.PolicyTypeTerms,
		Title:    "Terms v1",
		Content:  "first",
		IsActive: boolPtr(true),
	})
	require.NoError(t, err)

	draft, err := svc.Create(ctx, CreateInput{
		Type:    models.PolicyTypeTerms,
		Title:   "Terms v2 draft",
		Content: "second",
	})
	require.NoError(t, err)
	assert.False(t, draft.IsActive)

	assert.Equal(t, []int64{active.ID}, store.activeIDs(models.PolicyTypeTerms))
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := newTestService(newFakePolicyStore())

	_, err := svc.Create(context.Background(), CreateInput{
		Type:    "cookie_policy",
		Title:   "Cookies",
		Content: "n/a",
	})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestSetActiveKeepsSingleActivePerType(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	ctx := context.Background()

	p1, err := svc.Create(ctx, CreateInput{Type: models.PolicyTypePrivacy, Title: "v1", Content: "a", IsActive: boolPtr(true)})
	require.NoError(t, err)
	p2, err := svc.Create(ctx, CreateInput{Type: models.PolicyTypePrivacy, Title: "v2", Content: "b"})
	require.NoError(t, err)
	// a different type is untouched by privacy activation
	terms, err := svc.Create(ctx, CreateInput{Type: models.PolicyTypeTerms, Title: "terms", Content: "c", IsActive: boolPtr(true)})
	require.NoError(t, err)

	activated, err := svc.SetActive(ctx, p2.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	assert.Equal(t, []int64{p2.ID}, store.activeIDs(models.PolicyTypePrivacy))
	assert.Equal(t, []int64{terms.ID}, store.activeIDs(models.PolicyTypeTerms))

	got, err := svc.Get(ctx, p1.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestSetActiveIsIdempotent(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Type: models.PolicyTypePrivacy, Title: "v1", Content: "a", IsActive: boolPtr(true)})
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, []int64{p.ID}, store.activeIDs(models.PolicyTypePrivacy))
}

func TestUpdateActivationExcludesTarget(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	ctx := context.Background()

	p1, err := svc.Create(ctx, CreateInput{Type: models.PolicyTypeTerms, Title: "v1", Content: "a", IsActive: boolPtr(true)})
	require.NoError(t, err)
	p2, err := svc.Create(ctx, CreateInput{Type: models.PolicyTypeTerms, Title: "v2", Content: "b"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p2.ID, UpdateInput{IsActive: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.Equal(t, []int64{p2.ID}, store.activeIDs(models.PolicyTypeTerms))

	got, err := svc.Get(ctx, p1.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUpdateVersionTriState(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{
		Type:    models.PolicyTypePrivacy,
		Title:   "v1",
		Content: "a",
		Version: strPtr("1.0"),
	})
	require.NoError(t, err)

	// absent field keeps the stored label
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Title: strPtr("renamed")})
	require.NoError(t, err)
	require.NotNil(t, updated.Version)
	assert.Equal(t, "1.0", *updated.Version)

	// a value replaces it
	updated, err = svc.Update(ctx, p.ID, UpdateInput{Version: nullable.NewNullableWithValue("2.0")})
	require.NoError(t, err)
	require.NotNil(t, updated.Version)
	assert.Equal(t, "2.0", *updated.Version)

	// explicit null clears it
	updated, err = svc.Update(ctx, p.ID, UpdateInput{Version: nullable.NewNullNullable[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Version)
}

func TestUpdateDeactivationDoesNotPromoteSiblings(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Type: models.PolicyTypePrivacy, Title: "v1", Content: "a", IsActive: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Type: models.PolicyTypePrivacy, Title: "v2", Content: "b"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, UpdateInput{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	assert.Empty(t, store.activeIDs(models.PolicyTypePrivacy))
	_, err = svc.GetActiveByType(ctx, models.PolicyTypePrivacy)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetActiveByTypeRejectsUnknownType(t *testing.T) {
	svc := newTestService(newFakePolicyStore())

	_, err := svc.GetActiveByType(context.Background(), "cookie_policy")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestDeleteActivePolicyLeavesTypeWithoutActive(t *testing.T) {
	store := newFakePolicyStore()
	svc := newTestService(store)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Type: models.PolicyTypeTerms, Title: "v1", Content: "a", IsActive: boolPtr(true)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.GetActiveByType(ctx, models.PolicyTypeTerms)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingPolicy(t *testing.T) {
	svc := newTestService(newFakePolicyStore())
	assert.ErrorIs(t, svc.Delete(context.Background(), 42), ErrNotFound)
}
