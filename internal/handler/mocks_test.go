package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/motoarena/backend-go/internal/database/models"
	"github.com/motoarena/backend-go/internal/database/service"
)

// ==================== MOCK AUTH SERVICE ====================

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, *service.TokenPair, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.TokenPair), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) ConfirmEmail(ctx context.Context, userID uint, token string) (*models.User, *service.TokenPair, error) {
	args := m.Called(userID, token)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.TokenPair), args.Error(2)
}

func (m *MockAuthService) ResendConfirmation(ctx context.Context, email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, userID uint, token, newPassword string) error {
	args := m.Called(userID, token, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccessClaims), args.Error(1)
}

// ==================== MOCK LISTING SERVICE ====================

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, ownerID uint, in service.CreateListingInput) (*models.Listing, error) {
	args := m.Called(ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Get(ctx context.Context, id uint) (*models.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) ListOwn(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingService) ListPublished(ctx context.Context) ([]models.Listing, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingService) ListPendingReview(ctx context.Context) ([]models.Listing, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, id, ownerID uint, in service.UpdateListingInput) (*models.Listing, error) {
	args := m.Called(id, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) SubmitForReview(ctx context.Context, id, ownerID uint) (*models.Listing, error) {
	args := m.Called(id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Approve(ctx context.Context, expertiseID, expertID uint) error {
	args := m.Called(expertiseID, expertID)
	return args.Error(0)
}

func (m *MockListingService) Reject(ctx context.Context, expertiseID, expertID uint, reason, feedback *string) error {
	args := m.Called(expertiseID, expertID, reason, feedback)
	return args.Error(0)
}

func (m *MockListingService) ReviewStats(ctx context.Context) (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockListingService) AttachReviewDocument(ctx context.Context, expertiseID, expertID uint, documentURL string) error {
	args := m.Called(expertiseID, expertID, documentURL)
	return args.Error(0)
}

func (m *MockListingService) Archive(ctx context.Context, id, ownerID uint) error {
	args := m.Called(id, ownerID)
	return args.Error(0)
}

func (m *MockListingService) Delete(ctx context.Context, id, ownerID uint) error {
	args := m.Called(id, ownerID)
	return args.Error(0)
}
