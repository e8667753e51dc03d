package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/motoarena/backend-go/internal/database/models"
)

// ExpertiseRepository defines the interface for expert review operations
type ExpertiseRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Expertise, error)
	// Decide records the expert's decision and moves the listing out of
	// pending_review in one transaction. Both updates are conditional on the
	// current state, so two concurrent decisions on the same review yield one
	// winner and one ErrStateConflict.
	Decide(ctx context.Context, expertiseID, expertID uint, decision, listingStatus string, reason, feedback *string) error
	AttachDocument(ctx context.Context, expertiseID uint, documentURL string) error
	CountByDecision(ctx context.Context) (map[string]int64, error)
}

type expertiseRepository struct {
	db *gorm.DB
}

// NewExpertiseRepository creates a new expertise repository instance
func NewExpertiseRepository(db *gorm.DB) ExpertiseRepository {
	return &expertiseRepository{db: db}
}

func (r *expertiseRepository) FindByID(ctx context.Context, id uint) (*models.Expertise, error) {
	var expertise models.Expertise
	err := r.db.WithContext(ctx).First(&expertise, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpertiseNotFound
		}
		return nil, err
	}
	return &expertise, nil
}

func (r *expertiseRepository) Decide(ctx context.Context, expertiseID, expertID uint, decision, listingStatus string, reason, feedback *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expertise models.Expertise
		if err := tx.First(&expertise, expertiseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExpertiseNotFound
			}
			return err
		}

		result := tx.Model(&models.Expertise{}).
			Where("id = ? AND decision = ?", expertiseID, models.DecisionPending).
			Updates(map[string]interface{}{
				"decision":           decision,
				"expert_id":          expertID,
				"rejection_reason":   reason,
				"rejection_feedback": feedback,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStateConflict
		}

		result = tx.Model(&models.Listing{}).
			Where("id = ? AND status = ?", expertise.ListingID, models.ListingStatusPendingReview).
			Updates(map[string]interface{}{
				"status":     listingStatus,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStateConflict
		}

		return nil
	})
}

func (r *expertiseRepository) AttachDocument(ctx context.Context, expertiseID uint, documentURL string) error {
	result := r.db.WithContext(ctx).Model(&models.Expertise{}).
		Where("id = ?", expertiseID).
		Update("document_url", documentURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpertiseNotFound
	}
	return nil
}

func (r *expertiseRepository) CountByDecision(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Decision string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Expertise{}).
		Select("decision, COUNT(*) as count").
		Group("decision").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Decision] = r.Count
	}
	return counts, nil
}

// Repository errors
var (
	ErrExpertiseNotFound = errors.New("expertise not found")
)
