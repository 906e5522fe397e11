package models

import "time"

// PolicyType enumerates the legal document kinds.
type PolicyType string

const (
	PolicyTypePrivacy PolicyType = "privacy_policy"
	PolicyTypeTerms   PolicyType = "terms_of_service"
)

// ValidPolicyType reports whether t is a known policy type.
func ValidPolicyType(t PolicyType) bool {
	return t == PolicyTypePrivacy || t == PolicyTypeTerms
}

// Policy is a versioned legal document. At most one policy per type is
// active at any time; activation deactivates same-type siblings.
type Policy struct {
	ID        int64      `json:"id"`
	Type      PolicyType `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Version   *string    `json:"version,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
