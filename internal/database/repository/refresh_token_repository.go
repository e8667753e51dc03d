package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/motoarena/backend-go/internal/database/models"
)

// RefreshTokenRepository defines the interface for refresh token operations
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	// FindByToken returns the row regardless of revocation state; usability
	// is checked by the caller via models.RefreshToken.Usable.
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	// Rotate atomically revokes oldToken and inserts its successor. The
	// superseded row records the successor value in revoked_by_token. Exactly
	// one of two concurrent rotations of the same token succeeds; the loser
	// fails with ErrTokenRevoked.
	Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (*models.RefreshToken, error)
	// Revoke marks the token revoked. Idempotent: revoking an already revoked
	// or unknown token is a no-op.
	Revoke(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID uint) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository instance
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &refreshToken, nil
}

func (r *refreshTokenRepository) Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (*models.RefreshToken, error) {
	var successor *models.RefreshToken

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.RefreshToken
		if err := tx.Where("token = ?", oldToken).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}
			return err
		}

		now := time.Now()
		if current.IsRevoked {
			return ErrTokenRevoked
		}
		if now.After(current.ExpiresAt) {
			return ErrTokenExpired
		}

		// Compare-and-set on is_revoked: a concurrent rotation that already
		// committed leaves zero rows to update here.
		result := tx.Model(&models.RefreshToken{}).
			Where("token = ? AND is_revoked = false", oldToken).
			Updates(map[string]interface{}{
				"is_revoked":       true,
				"revoked_at":       now,
				"revoked_by_token": newToken,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTokenRevoked
		}

		successor = &models.RefreshToken{
			UserID:    current.UserID,
			Token:     newToken,
			ExpiresAt: expiresAt,
		}
		return tx.Create(successor).Error
	})
	if err != nil {
		return nil, err
	}

	return successor, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ? AND is_revoked = false", token).
		Updates(map[string]interface{}{
			"is_revoked": true,
			"revoked_at": now,
		}).Error
}

func (r *refreshTokenRepository) RevokeAllUserTokens(ctx context.Context, userID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = false", userID).
		Updates(map[string]interface{}{
			"is_revoked": true,
			"revoked_at": now,
		}).Error
}

func (r *refreshTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// Repository errors
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrTokenExpired  = errors.New("token expired")
)
