package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoarena/backend-go/internal/database/models"
)

func seedRefreshToken(t *testing.T, repo RefreshTokenRepository, userID uint, value string) *models.RefreshToken {
	t.Helper()
	token := &models.RefreshToken{
		UserID:    userID,
		Token:     value,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), token))
	return token
}

func TestRefreshTokenRepository_FindByToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := seedUser(t, db)
	ctx := context.Background()

	seedRefreshToken(t, repo, user.ID, "value-1")

	t.Run("returns stored row", func(t *testing.T) {
		found, err := repo.FindByToken(ctx, "value-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.UserID)
		assert.True(t, found.Usable(time.Now()))
	})

	t.Run("unknown value is not found", func(t *testing.T) {
		_, err := repo.FindByToken(ctx, "ghost")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("revoked row is still returned", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "value-1"))
		found, err := repo.FindByToken(ctx, "value-1")
		require.NoError(t, err)
		assert.True(t, found.IsRevoked)
		assert.False(t, found.Usable(time.Now()))
	})
}

func TestRefreshTokenRepository_Rotate(t *testing.T) {
	ctx := context.Background()

	t.Run("supersedes the old token and records its successor", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRefreshTokenRepository(db)
		user := seedUser(t, db)
		seedRefreshToken(t, repo, user.ID, "old")

		expiresAt := time.Now().Add(time.Hour)
		successor, err := repo.Rotate(ctx, "old", "new", expiresAt)
		require.NoError(t, err)
		assert.Equal(t, "new", successor.Token)
		assert.Equal(t, user.ID, successor.UserID)

		superseded, err := repo.FindByToken(ctx, "old")
		require.NoError(t, err)
		assert.True(t, superseded.IsRevoked)
		require.NotNil(t, superseded.RevokedAt)
		require.NotNil(t, superseded.RevokedByToken)
		assert.Equal(t, "new", *superseded.RevokedByToken)
	})

	t.Run("rotation is single-use", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRefreshTokenRepository(db)
		user := seedUser(t, db)
		seedRefreshToken(t, repo, user.ID, "old")

		_, err := repo.Rotate(ctx, "old", "first", time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = repo.Rotate(ctx, "old", "second", time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrTokenRevoked)

		// The losing rotation must not have inserted a successor.
		_, err = repo.FindByToken(ctx, "second")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("expired token cannot rotate", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRefreshTokenRepository(db)
		user := seedUser(t, db)
		require.NoError(t, repo.Create(ctx, &models.RefreshToken{
			UserID:    user.ID,
			Token:     "stale",
			ExpiresAt: time.Now().Add(-time.Minute),
		}))

		_, err := repo.Rotate(ctx, "stale", "new", time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("unknown token cannot rotate", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRefreshTokenRepository(db)

		_, err := repo.Rotate(ctx, "ghost", "new", time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})
}

func TestRefreshTokenRepository_Revoke(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := seedUser(t, db)
	ctx := context.Background()

	seedRefreshToken(t, repo, user.ID, "value-1")

	t.Run("revoking twice is a no-op", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "value-1"))

		first, err := repo.FindByToken(ctx, "value-1")
		require.NoError(t, err)
		require.NotNil(t, first.RevokedAt)
		revokedAt := *first.RevokedAt

		require.NoError(t, repo.Revoke(ctx, "value-1"))
		second, err := repo.FindByToken(ctx, "value-1")
		require.NoError(t, err)
		assert.Equal(t, revokedAt.Unix(), second.RevokedAt.Unix())
	})

	t.Run("revoking an unknown token is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Revoke(ctx, "ghost"))
	})
}

func TestRefreshTokenRepository_RevokeAllUserTokens(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := seedUser(t, db)
	other := seedUser(t, db)
	ctx := context.Background()

	seedRefreshToken(t, repo, user.ID, "u1-a")
	seedRefreshToken(t, repo, user.ID, "u1-b")
	seedRefreshToken(t, repo, other.ID, "u2-a")

	require.NoError(t, repo.RevokeAllUserTokens(ctx, user.ID))

	for _, value := range []string{"u1-a", "u1-b"} {
		found, err := repo.FindByToken(ctx, value)
		require.NoError(t, err)
		assert.True(t, found.IsRevoked, value)
	}

	untouched, err := repo.FindByToken(ctx, "u2-a")
	require.NoError(t, err)
	assert.False(t, untouched.IsRevoked)
}

func TestRefreshTokenRepository_DeleteExpiredBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRefreshTokenRepository(db)
	user := seedUser(t, db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     "ancient",
		ExpiresAt: time.Now().Add(-48 * time.Hour),
	}))
	seedRefreshToken(t, repo, user.ID, "live")

	deleted, err := repo.DeleteExpiredBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByToken(ctx, "ancient")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, err = repo.FindByToken(ctx, "live")
	assert.NoError(t, err)
}
