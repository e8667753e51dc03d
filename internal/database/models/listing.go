package models

import (
	"time"

	"github.com/lib/pq"
)

// Listing kinds (table discriminator)
const (
	ListingKindSale = "SALE"
	ListingKindRent = "RENT"
)

// Listing statuses
const (
	ListingStatusDraft         = "draft"
	ListingStatusPendingReview = "pending_review"
	ListingStatusPublished     = "published"
	ListingStatusRejected      = "rejected"
	ListingStatusArchived      = "archived"
)

// Listing is a sale or rent offer for a vehicle. Sale and rent share one
// table; the rent-only payload fields are null for sale listings.
// Listings are hard-deleted together with their expertise record.
type Listing struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	VehicleID   uint           `gorm:"not null;index" json:"vehicle_id"`
	Kind        string         `gorm:"not null" json:"kind"`
	Status      string         `gorm:"not null;default:draft;index" json:"status"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Location    string         `json:"location"`
	Features    pq.StringArray `gorm:"type:text[]" json:"features"`

	// Rent-only payload
	SecurityDeposit         *float64 `json:"security_deposit,omitempty"`
	MinimumRentalPeriodDays *int     `json:"minimum_rental_period_days,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Owner     User       `gorm:"foreignKey:OwnerID" json:"-"`
	Vehicle   Vehicle    `gorm:"foreignKey:VehicleID" json:"-"`
	Expertise *Expertise `gorm:"foreignKey:ListingID" json:"expertise,omitempty"`
}

// TableName overrides the table name
func (Listing) TableName() string {
	return "listings"
}

// Editable reports whether the owner may still change listing fields.
func (l *Listing) Editable() bool {
	return l.Status == ListingStatusDraft || l.Status == ListingStatusRejected
}

// Terminal reports whether the listing reached its final state.
func (l *Listing) Terminal() bool {
	return l.Status == ListingStatusArchived
}
