package models

import "time"

// User represents a platform account. Users are created and managed by the
// account service; this backend only reads them to resolve inquiry owners
// and mail recipients.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
