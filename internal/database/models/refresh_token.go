package models

import (
	"time"
)

// RefreshToken stores refresh tokens for authentication.
// Rows are revoked, never deleted, so the rotation chain stays auditable:
// when a token is rotated, RevokedByToken on the superseded row records the
// value of its successor.
type RefreshToken struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	Token          string     `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt      time.Time  `gorm:"not null" json:"expires_at"`
	IsRevoked      bool       `gorm:"not null;default:false" json:"is_revoked"`
	RevokedAt      *time.Time `json:"revoked_at,omitempty"`
	RevokedByToken *string    `json:"revoked_by_token,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	User           User       `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Usable reports whether the token may still be exchanged.
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.IsRevoked && now.Before(t.ExpiresAt)
}
