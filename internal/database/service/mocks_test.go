package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/motoarena/backend-go/internal/database/models"
)

// ==================== MOCK USER REPOSITORY ====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	if len(args) > 1 && args.Get(0) != nil {
		user.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ==================== MOCK REFRESH TOKEN REPOSITORY ====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (*models.RefreshToken, error) {
	args := m.Called(oldToken, newToken, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllUserTokens(ctx context.Context, userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// ==================== MOCK ACTION TOKEN REPOSITORY ====================

type MockActionTokenRepository struct {
	mock.Mock
}

func (m *MockActionTokenRepository) Issue(ctx context.Context, userID uint, purpose, token string, expiresAt time.Time) (*models.ActionToken, error) {
	args := m.Called(userID, purpose, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActionToken), args.Error(1)
}

func (m *MockActionTokenRepository) ConsumeAndActivate(ctx context.Context, userID uint, token string) error {
	args := m.Called(userID, token)
	return args.Error(0)
}

func (m *MockActionTokenRepository) ConsumeAndSetPassword(ctx context.Context, userID uint, token, passwordHash string) error {
	args := m.Called(userID, token, passwordHash)
	return args.Error(0)
}

func (m *MockActionTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// ==================== MOCK VEHICLE REPOSITORY ====================

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Vehicle, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) DeleteIfUnreferenced(ctx context.Context, id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ==================== MOCK LISTING REPOSITORY ====================

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	args := m.Called(listing)
	if len(args) > 1 && args.Get(0) != nil {
		listing.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingRepository) ListByStatus(ctx context.Context, status string) ([]models.Listing, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingRepository) Save(ctx context.Context, listing *models.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) UpdateStatus(ctx context.Context, id uint, from []string, to string) error {
	args := m.Called(id, from, to)
	return args.Error(0)
}

func (m *MockListingRepository) SubmitForReview(ctx context.Context, id uint, from []string) error {
	args := m.Called(id, from)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ==================== MOCK EXPERTISE REPOSITORY ====================

type MockExpertiseRepository struct {
	mock.Mock
}

func (m *MockExpertiseRepository) FindByID(ctx context.Context, id uint) (*models.Expertise, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expertise), args.Error(1)
}

func (m *MockExpertiseRepository) Decide(ctx context.Context, expertiseID, expertID uint, decision, listingStatus string, reason, feedback *string) error {
	args := m.Called(expertiseID, expertID, decision, listingStatus, reason, feedback)
	return args.Error(0)
}

func (m *MockExpertiseRepository) AttachDocument(ctx context.Context, expertiseID uint, documentURL string) error {
	args := m.Called(expertiseID, documentURL)
	return args.Error(0)
}

func (m *MockExpertiseRepository) CountByDecision(ctx context.Context) (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// ==================== MOCK EMAIL SENDER ====================

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}
