package inquiries

import (
	"context"
	"errors"
	"time"

	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"

	"github.com/insign-app/backend/internal/mail"
	"github.com/insign-app/backend/internal/models"
)

var (
	// ErrNotFound is returned when no inquiry exists for the given id.
	ErrNotFound = errors.New("inquiry not found")
	// ErrNoRecipient is returned when the inquiry owner has no resolvable
	// email address.
	ErrNoRecipient = errors.New("inquiry owner has no email address")
	// ErrInvalidCategory is returned for an unknown inquiry category.
	ErrInvalidCategory = errors.New("invalid inquiry category")
	// ErrInvalidStatus is returned for an unknown inquiry status.
	ErrInvalidStatus = errors.New("invalid inquiry status")
)

// Store is the persistence surface the inquiry service needs.
type Store interface {
	Insert(ctx context.Context, inq *models.Inquiry) error
	// ListPage returns one page of inquiries joined with their owners,
	// newest first, plus the total row count.
	ListPage(ctx context.Context, limit, offset int) ([]models.Inquiry, int64, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Inquiry, error)
	// GetByID eagerly resolves the owning user.
	GetByID(ctx context.Context, id int64) (*models.Inquiry, error)
	Save(ctx context.Context, inq *models.Inquiry) error
	Delete(ctx context.Context, id int64) error
}

// Mailer dispatches the admin response to the inquiry owner.
type Mailer interface {
	SendInquiryResponseMail(p mail.InquiryResponseMail) error
}

// CreateInput carries fields for a new inquiry.
type CreateInput struct {
	Category       models.InquiryCategory `json:"category" binding:"required"`
	Subject        string                 `json:"subject" binding:"required,max=200"`
	Content        string                 `json:"content" binding:"required"`
	AttachmentURLs []string               `json:"attachment_urls"`
}

// UpdateStatusInput is a partial status mutation. AdminNote is tri-state:
// absent keeps the stored note, null clears it, a value replaces it.
type UpdateStatusInput struct {
	Status    *models.InquiryStatus     `json:"status"`
	AdminNote nullable.Nullable[string] `json:"admin_note"`
}

// Page is one page of the admin inquiry listing.
type Page struct {
	Items []models.Inquiry `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// Service implements the inquiry lifecycle over a Store and a Mailer.
type Service struct {
	store  Store
	mailer Mailer
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an inquiry service.
func NewService(store Store, mailer Mailer, logger *zap.Logger) *Service {
	return &Service{store: store, mailer: mailer, logger: logger, now: time.Now}
}

// Create inserts a new inquiry with status pending. The attachment list is
// stored null when omitted.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*models.Inquiry, error) {
	if !models.ValidInquiryCategory(in.Category) {
		return nil, ErrInvalidCategory
	}
	inq := &models.Inquiry{
		UserID:         userID,
		Category:       in.Category,
		Subject:        in.Subject,
		Content:        in.Content,
		AttachmentURLs: in.AttachmentURLs,
		Status:         models.InquiryStatusPending,
	}
	if err := s.store.Insert(ctx, inq); err != nil {
		return nil, err
	}
	s.logger.Info("inquiry received", zap.Int64("inquiry_id", inq.ID), zap.Int64("user_id", userID))
	return inq, nil
}

// ListPaginated returns one page of all inquiries (admin view). Pages are
// 1-indexed; out-of-range values fall back to sane defaults.
func (s *Service) ListPaginated(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	items, total, err := s.store.ListPage(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// ListByUser returns a user's inquiries, newest first.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]models.Inquiry, error) {
	return s.store.ListByUser(ctx, userID)
}

// Get returns one inquiry with its owner resolved, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*models.Inquiry, error) {
	return s.store.GetByID(ctx, id)
}

// UpdateStatus applies the fields present in the partial and saves. When the
// status becomes answered, answered_at is stamped.
func (s *Service) UpdateStatus(ctx context.Context, id int64, in UpdateStatusInput) (*models.Inquiry, error) {
	inq, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		if !models.ValidInquiryStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		inq.Status = *in.Status
		if *in.Status == models.InquiryStatusAnswered {
			t := s.now()
			inq.AnsweredAt = &t
		}
	}
	if in.AdminNote.IsSpecified() {
		if in.AdminNote.IsNull() {
			inq.AdminNote = nil
		} else {
			v, err := in.AdminNote.Get()
			if err != nil {
				return nil, err
			}
			inq.AdminNote = &v
		}
	}
	if err := s.store.Save(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

// SendResponse emails the admin's answer to the inquiry owner and, only
// after the mail is dispatched, moves the inquiry to answered. A dispatch
// failure propagates and the status stays untouched.
func (s *Service) SendResponse(ctx context.Context, id int64, message string) error {
	inq, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inq.User == nil || inq.User.Email == "" {
		return ErrNoRecipient
	}

	err = s.mailer.SendInquiryResponseMail(mail.InquiryResponseMail{
		To:              inq.User.Email,
		InquirySubject:  inq.Subject,
		InquiryContent:  inq.Content,
		ResponseMessage: message,
	})
	if err != nil {
		s.logger.Error("inquiry response dispatch failed", zap.Int64("inquiry_id", id), zap.Error(err))
		return err
	}

	answered := models.InquiryStatusAnswered
	if _, err := s.UpdateStatus(ctx, id, UpdateStatusInput{Status: &answered}); err != nil {
		return err
	}
	s.logger.Info("inquiry response sent", zap.Int64("inquiry_id", id))
	return nil
}

// Remove fetches the inquiry (ErrNotFound when absent) and deletes it.
func (s *Service) Remove(ctx context.Context, id int64) error {
	inq, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, inq.ID); err != nil {
		return err
	}
	s.logger.Info("inquiry deleted", zap.Int64("inquiry_id", id))
	return nil
}
