package models

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle is owned by exactly one user and referenced by listings
type Vehicle struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	Make      string         `gorm:"not null" json:"make"`
	Model     string         `gorm:"not null" json:"model"`
	Year      int            `gorm:"not null" json:"year"`
	Mileage   int64          `json:"mileage"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Owner     User           `gorm:"foreignKey:OwnerID" json:"-"`
}

// TableName overrides the table name
func (Vehicle) TableName() string {
	return "vehicles"
}
