package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/motoarena/backend-go/internal/database/models"
)

// ActionTokenRepository defines the interface for email confirmation and
// password reset token operations
type ActionTokenRepository interface {
	// Issue creates a fresh token for the user and purpose, consuming any
	// prior unconsumed token of the same purpose so only one link is live.
	Issue(ctx context.Context, userID uint, purpose, token string, expiresAt time.Time) (*models.ActionToken, error)
	// ConsumeAndActivate consumes an email confirmation token and flips the
	// account to confirmed, in one transaction: a failed activation rolls the
	// consumption back instead of burning the token. Consumption is a
	// conditional update matching only an unconsumed, unexpired token bound
	// to the given user and purpose; anything else fails with
	// ErrTokenNotFound and leaves the account untouched.
	ConsumeAndActivate(ctx context.Context, userID uint, token string) error
	// ConsumeAndSetPassword consumes a password reset token and stores the
	// new password hash, with the same single-transaction guarantee.
	ConsumeAndSetPassword(ctx context.Context, userID uint, token, passwordHash string) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type actionTokenRepository struct {
	db *gorm.DB
}

// NewActionTokenRepository creates a new action token repository instance
func NewActionTokenRepository(db *gorm.DB) ActionTokenRepository {
	return &actionTokenRepository{db: db}
}

func (r *actionTokenRepository) Issue(ctx context.Context, userID uint, purpose, token string, expiresAt time.Time) (*models.ActionToken, error) {
	actionToken := &models.ActionToken{
		UserID:    userID,
		Purpose:   purpose,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&models.ActionToken{}).
			Where("user_id = ? AND purpose = ? AND consumed_at IS NULL", userID, purpose).
			Update("consumed_at", now).Error; err != nil {
			return err
		}
		return tx.Create(actionToken).Error
	})
	if err != nil {
		return nil, err
	}

	return actionToken, nil
}

func (r *actionTokenRepository) ConsumeAndActivate(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consume(tx, userID, models.PurposeEmailConfirmation, token); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("email_confirmed", true).Error
	})
}

func (r *actionTokenRepository) ConsumeAndSetPassword(ctx context.Context, userID uint, token, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consume(tx, userID, models.PurposePasswordReset, token); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("password", passwordHash).Error
	})
}

// consume marks the token used inside the caller's transaction
func consume(tx *gorm.DB, userID uint, purpose, token string) error {
	now := time.Now()
	result := tx.Model(&models.ActionToken{}).
		Where("token = ? AND user_id = ? AND purpose = ? AND consumed_at IS NULL AND expires_at > ?",
			token, userID, purpose, now).
		Update("consumed_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *actionTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&models.ActionToken{})
	return result.RowsAffected, result.Error
}
