package policies

import (
	"context"
	"errors"

	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"

	"github.com/insign-app/backend/internal/models"
)

var (
	// ErrNotFound is returned when no policy exists for the given id or type.
	ErrNotFound = errors.New("policy not found")
	// ErrInvalidType is returned for an unknown policy type.
	ErrInvalidType = errors.New("invalid policy type")
)

// Store is the persistence surface the policy service needs. WithTx runs fn
// against a store bound to one transaction; activation always deactivates
// same-type siblings and flips the target inside a single transaction so the
// single-active invariant holds under concurrent writers. A partial unique
// index on (type) WHERE is_active backs it at the storage level.
type Store interface {
	ListAll(ctx context.Context) ([]models.Policy, error)
	GetByID(ctx context.Context, id int64) (*models.Policy, error)
	GetActiveByType(ctx context.Context, t models.PolicyType) (*models.Policy, error)
	Insert(ctx context.Context, p *models.Policy) error
	Save(ctx context.Context, p *models.Policy) error
	Delete(ctx context.Context, id int64) error
	// DeactivateOthers clears is_active on every policy of type t except excludeID.
	DeactivateOthers(ctx context.Context, t models.PolicyType, excludeID int64) error
	WithTx(ctx context.Context, fn func(Store) error) error
}

// CreateInput carries fields for a new policy.
type CreateInput struct {
	Type     models.PolicyType `json:"type" form:"type" binding:"required"`
	Title    string            `json:"title" form:"title" binding:"required,max=255"`
	Content  string            `json:"content" form:"content" binding:"required"`
	Version  *string           `json:"version" form:"version"`
	IsActive *bool             `json:"is_active" form:"is_active"`
}

// UpdateInput is a partial update. Version is tri-state: absent keeps the
// stored label, null clears it, a value replaces it.
type UpdateInput struct {
	Title    *string                   `json:"title"`
	Content  *string                   `json:"content"`
	Version  nullable.Nullable[string] `json:"version"`
	IsActive *bool                     `json:"is_active"`
}

// Service implements policy operations over a Store.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a policy service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ListAll returns every policy, most recently updated first.
func (s *Service) ListAll(ctx context.Context) ([]models.Policy, error) {
	return s.store.ListAll(ctx)
}

// Get returns one policy or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.Policy, error) {
	return s.store.GetByID(ctx, id)
}

// GetActiveByType returns the single active policy for a type, or ErrNotFound.
func (s *Service) GetActiveByType(ctx context.Context, t models.PolicyType) (*models.Policy, error) {
	if !models.ValidPolicyType(t) {
		return nil, ErrInvalidType
	}
	return s.store.GetActiveByType(ctx, t)
}

// Create inserts a new policy. When the new row requests active, every other
// row of the same type is deactivated first, within the same transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Policy, error) {
	if !models.ValidPolicyType(in.Type) {
		return nil, ErrInvalidType
	}
	p := &models.Policy{
		Type:    in.Type,
		Title:   in.Title,
		Content: in.Content,
		Version: in.Version,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	err := s.store.WithTx(ctx, func(tx Store) error {
		if p.IsActive {
			if err := tx.DeactivateOthers(ctx, p.Type, 0); err != nil {
				return err
			}
		}
		return tx.Insert(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("policy created", zap.Int64("policy_id", p.ID), zap.String("type", string(p.Type)))
	return p, nil
}

// Update applies the fields present in the partial and saves. An activation
// request deactivates same-type siblings, excluding the target id, in the
// same transaction.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*models.Policy, error) {
	var out *models.Policy
	err := s.store.WithTx(ctx, func(tx Store) error {
		p, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Title != nil {
			p.Title = *in.Title
		}
		if in.Content != nil {
			p.Content = *in.Content
		}
		if in.Version.IsSpecified() {
			if in.Version.IsNull() {
				p.Version = nil
			} else {
				v, err := in.Version.Get()
				if err != nil {
					return err
				}
				p.Version = &v
			}
		}
		if in.IsActive != nil {
			if *in.IsActive {
				if err := tx.DeactivateOthers(ctx, p.Type, p.ID); err != nil {
					return err
				}
			}
			p.IsActive = *in.IsActive
		}
		out = p
		return tx.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("policy updated", zap.Int64("policy_id", id))
	return out, nil
}

// SetActive is the dedicated activation path: deactivate same-type siblings,
// force this row active, one transaction.
func (s *Service) SetActive(ctx context.Context, id int64) (*models.Policy, error) {
	var out *models.Policy
	err := s.store.WithTx(ctx, func(tx Store) error {
		p, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeactivateOthers(ctx, p.Type, p.ID); err != nil {
			return err
		}
		p.IsActive = true
		out = p
		return tx.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("policy activated", zap.Int64("policy_id", id), zap.String("type", string(out.Type)))
	return out, nil
}

// Delete removes a policy; ErrNotFound when nothing was deleted. An active
// policy may be deleted, leaving its type with no active document.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("policy deleted", zap.Int64("policy_id", id))
	return nil
}
