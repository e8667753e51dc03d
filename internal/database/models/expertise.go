package models

import (
	"time"
)

// Expertise decisions
const (
	DecisionPending  = "pending"
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Expertise is the expert review record paired 1:1 with a listing. It is
// created (or reset to pending) when the listing is submitted for review and
// reflects the current review state only.
type Expertise struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	ListingID         uint      `gorm:"uniqueIndex;not null" json:"listing_id"`
	ExpertID          *uint     `gorm:"index" json:"expert_id,omitempty"`
	Decision          string    `gorm:"not null;default:pending" json:"decision"`
	RejectionReason   *string   `json:"rejection_reason,omitempty"`
	RejectionFeedback *string   `json:"rejection_feedback,omitempty"`
	DocumentURL       *string   `json:"document_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Expertise) TableName() string {
	return "expertises"
}
