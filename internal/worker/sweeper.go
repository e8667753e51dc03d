package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/motoarena/backend-go/internal/database/repository"
)

// Retain revoked refresh tokens for a while after expiry so the rotation
// chain stays inspectable.
const tokenRetention = 30 * 24 * time.Hour

// TokenSweeper purges long-expired refresh and action tokens in the background
type TokenSweeper struct {
	refreshTokenRepo repository.RefreshTokenRepository
	actionTokenRepo  repository.ActionTokenRepository
	logger           *slog.Logger
}

// NewTokenSweeper creates a new token sweeper instance
func NewTokenSweeper(
	refreshTokenRepo repository.RefreshTokenRepository,
	actionTokenRepo repository.ActionTokenRepository,
	logger *slog.Logger,
) *TokenSweeper {
	return &TokenSweeper{
		refreshTokenRepo: refreshTokenRepo,
		actionTokenRepo:  actionTokenRepo,
		logger:           logger,
	}
}

// Sweep deletes tokens whose expiry is past the retention window
func (s *TokenSweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-tokenRetention)

	refreshDeleted, err := s.refreshTokenRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("❌ [Sweeper] Failed to delete expired refresh tokens", "error", err)
	}

	actionDeleted, err := s.actionTokenRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("❌ [Sweeper] Failed to delete expired action tokens", "error", err)
	}

	if refreshDeleted > 0 || actionDeleted > 0 {
		s.logger.Info("🧹 [Sweeper] Purged expired tokens",
			"refresh_tokens", refreshDeleted,
			"action_tokens", actionDeleted,
		)
	}
}
