package models

import "time"

// InquiryCategory classifies a support inquiry.
type InquiryCategory string

const (
	InquiryCategoryContract  InquiryCategory = "contract"
	InquiryCategoryPayment   InquiryCategory = "payment"
	InquiryCategoryAccount   InquiryCategory = "account"
	InquiryCategoryTechnical InquiryCategory = "technical"
	InquiryCategoryOther     InquiryCategory = "other"
)

// ValidInquiryCategory reports whether c is a known category.
func ValidInquiryCategory(c InquiryCategory) bool {
	switch c {
	case InquiryCategoryContract, InquiryCategoryPayment, InquiryCategoryAccount,
		InquiryCategoryTechnical, InquiryCategoryOther:
		return true
	}
	return false
}

// InquiryStatus is the support ticket lifecycle state. No transition table is
// enforced; any status may be set from any other. Only the answered
// transition has a side effect (stamping AnsweredAt).
type InquiryStatus string

const (
	InquiryStatusPending    InquiryStatus = "pending"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusAnswered   InquiryStatus = "answered"
	InquiryStatusClosed     InquiryStatus = "closed"
)

// ValidInquiryStatus reports whether s is a known status.
func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryStatusPending, InquiryStatusInProgress, InquiryStatusAnswered, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry is a user-submitted support ticket.
type Inquiry struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	User           *User           `json:"user,omitempty"` // resolved on admin reads
	Category       InquiryCategory `json:"category"`
	Subject        string          `json:"subject"`
	Content        string          `json:"content"`
	AttachmentURLs []string        `json:"attachment_urls,omitempty"`
	Status         InquiryStatus   `json:"status"`
	AdminNote      *string         `json:"admin_note,omitempty"`
	AnsweredAt     *time.Time      `json:"answered_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
