package models

import (
	"time"
)

// ActionToken purposes
const (
	PurposeEmailConfirmation = "email_confirmation"
	PurposePasswordReset     = "password_reset"
)

// ActionToken is a single-use token mailed to a user for email confirmation
// or password reset. Consuming sets ConsumedAt and is never reversed.
type ActionToken struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Token      string     `gorm:"uniqueIndex;not null" json:"token"`
	Purpose    string     `gorm:"not null;index" json:"purpose"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name
func (ActionToken) TableName() string {
	return "action_tokens"
}

// Usable reports whether the token may still be consumed.
func (t *ActionToken) Usable(now time.Time) bool {
	return t.ConsumedAt == nil && now.Before(t.ExpiresAt)
}
