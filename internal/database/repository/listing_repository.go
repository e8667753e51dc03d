package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/motoarena/backend-go/internal/database/models"
)

// ListingRepository defines the interface for listing data operations.
// Status transitions are conditional updates that re-check the persisted
// status inside the transaction, so concurrent transitions on the same
// listing produce exactly one winner.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uint) (*models.Listing, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error)
	ListByStatus(ctx context.Context, status string) ([]models.Listing, error)
	// Save persists owner-editable field changes while the persisted status
	// is still draft or rejected. Never writes the status column; fails with
	// ErrStateConflict when the listing left an editable state in the
	// meantime, so a field update cannot revert a concurrent transition.
	Save(ctx context.Context, listing *models.Listing) error
	// UpdateStatus moves the listing from one of the given statuses to the
	// target status. Fails with ErrStateConflict when the persisted status is
	// no longer one of from.
	UpdateStatus(ctx context.Context, id uint, from []string, to string) error
	// SubmitForReview transitions the listing to pending_review and creates
	// or resets its expertise record to a pending decision, atomically.
	SubmitForReview(ctx context.Context, id uint, from []string) error
	// Delete hard-deletes the listing together with its expertise record.
	Delete(ctx context.Context, id uint) error
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository instance
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).
		Preload("Expertise").
		First(&listing, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Preload("Expertise").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *listingRepository) ListByStatus(ctx context.Context, status string) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *listingRepository) Save(ctx context.Context, listing *models.Listing) error {
	result := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ? AND status IN ?", listing.ID,
			[]string{models.ListingStatusDraft, models.ListingStatusRejected}).
		Updates(map[string]interface{}{
			"title":                      listing.Title,
			"description":                listing.Description,
			"price":                      listing.Price,
			"location":                   listing.Location,
			"features":                   listing.Features,
			"security_deposit":           listing.SecurityDeposit,
			"minimum_rental_period_days": listing.MinimumRentalPeriodDays,
			"updated_at":                 time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id uint, from []string, to string) error {
	result := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

func (r *listingRepository) SubmitForReview(ctx context.Context, id uint, from []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Listing{}).
			Where("id = ? AND status IN ?", id, from).
			Updates(map[string]interface{}{
				"status":     models.ListingStatusPendingReview,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStateConflict
		}

		var expertise models.Expertise
		err := tx.Where("listing_id = ?", id).First(&expertise).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.Expertise{
				ListingID: id,
				Decision:  models.DecisionPending,
			}).Error
		case err != nil:
			return err
		default:
			// Resubmission after rejection: reset the review record.
			return tx.Model(&expertise).
				Updates(map[string]interface{}{
					"decision":           models.DecisionPending,
					"expert_id":          nil,
					"rejection_reason":   nil,
					"rejection_feedback": nil,
				}).Error
		}
	})
}

func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&models.Expertise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, id).Error
	})
}

// Repository errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrStateConflict   = errors.New("listing state changed concurrently")
)
