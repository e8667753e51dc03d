package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoarena/backend-go/internal/database/models"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		user := &models.User{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "hashed",
			Role:     models.RoleMember,
		}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotZero(t, user.ID)

		byEmail, err := repo.FindByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byUsername, err := repo.FindByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byUsername.ID)
	})

	t.Run("reused email or username hits the unique index", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{
			Username: "bob2",
			Email:    "bob@example.com",
			Password: "hashed",
			Role:     models.RoleMember,
		})
		assert.ErrorIs(t, err, ErrDuplicateUser)

		err = repo.Create(ctx, &models.User{
			Username: "bob",
			Email:    "bob2@example.com",
			Password: "hashed",
			Role:     models.RoleMember,
		})
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("update persists confirmation flag", func(t *testing.T) {
		user, err := repo.FindByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.False(t, user.EmailConfirmed)

		user.EmailConfirmed = true
		require.NoError(t, repo.Update(ctx, user))

		reloaded, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.EmailConfirmed)
	})
}
