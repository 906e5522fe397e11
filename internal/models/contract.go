package models

import "time"

// Contract is the signature-request view of a contract record. The full
// contract lifecycle (drafting, signing, PDF assembly) lives in its own
// service; this backend reads contracts to dispatch signature-request mail
// and to backfill viewer tokens.
type Contract struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SignerEmail string    `json:"signer_email"`
	SignerName  *string   `json:"signer_name,omitempty"`
	ViewerToken *string   `json:"-"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
