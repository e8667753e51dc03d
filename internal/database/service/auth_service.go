package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/motoarena/backend-go/internal/config"
	"github.com/motoarena/backend-go/internal/database/models"
	"github.com/motoarena/backend-go/internal/database/repository"
	"github.com/motoarena/backend-go/internal/email"
	"github.com/motoarena/backend-go/internal/worker"
)

const mailDispatchTimeout = 30 * time.Second

// AuthService defines the interface for authentication business logic
type AuthService interface {
	// Register creates an unconfirmed account and mails a confirmation link.
	// No tokens are issued until the email is confirmed.
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ConfirmEmail(ctx context.Context, userID uint, token string) (*models.User, *TokenPair, error)
	// ResendConfirmation and ForgotPassword silently no-op for unknown or
	// ineligible accounts so responses never reveal whether an email exists.
	ResendConfirmation(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID uint, token, newPassword string) error
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*AccessClaims, error)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	ExpiresAt    time.Time
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	actionTokenRepo  repository.ActionTokenRepository
	issuer           TokenIssuer
	sender           email.Sender
	pool             *worker.Pool
	cfg              *config.Config
	logger           *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	actionTokenRepo repository.ActionTokenRepository,
	issuer TokenIssuer,
	sender email.Sender,
	pool *worker.Pool,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		actionTokenRepo:  actionTokenRepo,
		issuer:           issuer,
		sender:           sender,
		pool:             pool,
		cfg:              cfg,
		logger:           logger,
	}
}

func (s *authService) Register(ctx context.Context, username, emailAddr, password string) (*models.User, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", emailAddr, "username", username)

	existingUser, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}
	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", emailAddr)
		return nil, ErrEmailAlreadyExists
	}

	existingUser, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error checking username", "error", err)
		return nil, err
	}
	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Username already taken", "username", username)
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    emailAddr,
		Password: string(hashedPassword),
		Role:     models.RoleMember,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			// Lost a race with a concurrent registration that passed the
			// pre-checks at the same time. Re-check the email to pick the
			// right conflict.
			s.logger.Warn("⚠️ [AuthService] Concurrent registration conflict", "username", username)
			if _, lookupErr := s.userRepo.FindByEmail(ctx, emailAddr); lookupErr == nil {
				return nil, ErrEmailAlreadyExists
			}
			return nil, ErrUsernameTaken
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, err
	}

	if err := s.sendConfirmationMail(ctx, user); err != nil {
		// Registration stands even when the confirmation mail cannot be
		// issued; the user can request a resend.
		s.logger.Error("❌ [AuthService] Failed to issue confirmation token", "error", err, "user_id", user.ID)
	}

	s.logger.Info("✅ [AuthService] User registered, awaiting email confirmation", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, *TokenPair, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "username", username)
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "username", username)
		return nil, nil, ErrInvalidCredentials
	}

	if !user.EmailConfirmed {
		s.logger.Warn("⚠️ [AuthService] Login before email confirmation", "user_id", user.ID)
		return nil, nil, ErrEmailNotConfirmed
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate tokens", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, tokens, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	s.logger.Info("🔄 [AuthService] Token refresh attempt")

	stored, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	if stored.IsRevoked {
		// Replay of a rotated token: assume the chain is compromised and
		// invalidate every session of this user.
		s.logger.Warn("🚨 [AuthService] Revoked refresh token replayed, revoking all user sessions",
			"user_id", stored.UserID,
		)
		if err := s.refreshTokenRepo.RevokeAllUserTokens(ctx, stored.UserID); err != nil {
			s.logger.Error("❌ [AuthService] Failed to revoke user tokens", "error", err)
		}
		return nil, ErrInvalidToken
	}
	if !stored.Usable(time.Now()) {
		return nil, ErrInvalidToken
	}

	newValue, err := s.issuer.NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.RefreshTokenTTL) * time.Second)
	rotated, err := s.refreshTokenRepo.Rotate(ctx, refreshToken, newValue, expiresAt)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) ||
			errors.Is(err, repository.ErrTokenRevoked) ||
			errors.Is(err, repository.ErrTokenExpired) {
			s.logger.Warn("⚠️ [AuthService] Refresh token rotation refused", "error", err)
			return nil, ErrInvalidToken
		}
		s.logger.Error("❌ [AuthService] Failed to rotate refresh token", "error", err)
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, rotated.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.IssueAccessToken(user.ID, user.Username, user.Roles())
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ [AuthService] Token refreshed successfully", "user_id", user.ID)
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: rotated.Token,
		ExpiresIn:    s.cfg.AccessTokenTTL,
		ExpiresAt:    s.issuer.AccessTokenExpiry(),
	}, nil
}

func (s *authService) ConfirmEmail(ctx context.Context, userID uint, token string) (*models.User, *TokenPair, error) {
	s.logger.Info("📬 [AuthService] Email confirmation attempt", "user_id", userID)

	// Token consumption and account activation commit together, so a failure
	// in between cannot burn the token without activating the account.
	if err := s.actionTokenRepo.ConsumeAndActivate(ctx, userID, token); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.logger.Warn("⚠️ [AuthService] Invalid confirmation token", "user_id", userID)
			return nil, nil, ErrInvalidToken
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	// Confirmation proves control of the mailbox; log the user straight in.
	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] Email confirmed, account active", "user_id", user.ID)
	return user, tokens, nil
}

func (s *authService) ResendConfirmation(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Debug("🔕 [AuthService] Resend requested for unknown email")
			return nil
		}
		return err
	}
	if user.EmailConfirmed {
		s.logger.Debug("🔕 [AuthService] Resend requested for active account", "user_id", user.ID)
		return nil
	}

	if err := s.sendConfirmationMail(ctx, user); err != nil {
		return err
	}

	s.logger.Info("✅ [AuthService] Confirmation mail reissued", "user_id", user.ID)
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Debug("🔕 [AuthService] Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.issuer.NewRefreshTokenValue()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.ActionTokenTTL) * time.Second)
	if _, err := s.actionTokenRepo.Issue(ctx, user.ID, models.PurposePasswordReset, token, expiresAt); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?user_id=%d&token=%s", s.cfg.AppBaseURL, user.ID, token)
	s.dispatchMail(user.Email, "Reset your motoarena password",
		fmt.Sprintf(`<p>A password reset was requested for your account.</p>
<p><a href="%s">Choose a new password</a></p>
<p>The link expires in 24 hours. If you did not request this, ignore this mail.</p>`, link))

	s.logger.Info("✅ [AuthService] Password reset mail issued", "user_id", user.ID)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, userID uint, token, newPassword string) error {
	s.logger.Info("🔑 [AuthService] Password reset attempt", "user_id", userID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Token consumption and the password change commit together; an invalid
	// token leaves the account untouched, a failed update leaves the token
	// unburned.
	if err := s.actionTokenRepo.ConsumeAndSetPassword(ctx, userID, token, string(hashedPassword)); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.logger.Warn("⚠️ [AuthService] Invalid reset token", "user_id", userID)
			return ErrInvalidToken
		}
		s.logger.Error("❌ [AuthService] Failed to reset password", "error", err)
		return err
	}

	// A reset invalidates every existing session.
	if err := s.refreshTokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Error("❌ [AuthService] Failed to revoke sessions after reset", "error", err)
		return err
	}

	s.logger.Info("✅ [AuthService] Password reset, all sessions revoked", "user_id", userID)
	return nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	s.logger.Info("👋 [AuthService] Logout attempt")

	// Revocation is idempotent: logging out twice is not an error.
	if err := s.refreshTokenRepo.Revoke(ctx, refreshToken); err != nil {
		s.logger.Error("❌ [AuthService] Failed to revoke token", "error", err)
		return err
	}

	s.logger.Info("✅ [AuthService] User logged out successfully")
	return nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	return s.issuer.ParseAccessToken(tokenString)
}

// generateTokenPair creates an access token and persists a new refresh token
func (s *authService) generateTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.issuer.IssueAccessToken(user.ID, user.Username, user.Roles())
	if err != nil {
		return nil, err
	}

	refreshValue, err := s.issuer.NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshValue,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.RefreshTokenTTL) * time.Second),
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		ExpiresIn:    s.cfg.AccessTokenTTL,
		ExpiresAt:    s.issuer.AccessTokenExpiry(),
	}, nil
}

func (s *authService) sendConfirmationMail(ctx context.Context, user *models.User) error {
	token, err := s.issuer.NewRefreshTokenValue()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.ActionTokenTTL) * time.Second)
	if _, err := s.actionTokenRepo.Issue(ctx, user.ID, models.PurposeEmailConfirmation, token, expiresAt); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/confirm-email?user_id=%d&token=%s", s.cfg.AppBaseURL, user.ID, token)
	s.dispatchMail(user.Email, "Confirm your motoarena account",
		fmt.Sprintf(`<p>Welcome to motoarena, %s!</p>
<p><a href="%s">Confirm your email address</a> to activate your account.</p>
<p>The link expires in 24 hours.</p>`, user.Username, link))

	return nil
}

// dispatchMail sends in the background; delivery failures are logged only
func (s *authService) dispatchMail(to, subject, htmlBody string) {
	s.pool.SubmitWithTimeout(mailDispatchTimeout, func(ctx context.Context) {
		if err := s.sender.Send(ctx, to, subject, htmlBody); err != nil {
			s.logger.Error("❌ [AuthService] Mail delivery failed", "error", err, "subject", subject)
		}
	})
}
