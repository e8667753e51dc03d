package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Experts review listings; admins manage users.
const (
	RoleMember = "member"
	RoleExpert = "expert"
	RoleAdmin  = "admin"
)

// User represents a marketplace account
type User struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Username       string         `gorm:"uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Role           string         `gorm:"not null;default:member" json:"role"`
	EmailConfirmed bool           `gorm:"not null;default:false" json:"email_confirmed"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// Roles returns the role claims carried in access tokens.
func (u *User) Roles() []string {
	return []string{u.Role}
}
