package service

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/motoarena/backend-go/internal/config"
)

// AccessClaims is the stateless claim set carried by access tokens
type AccessClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into the numeric user id.
func (c *AccessClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// TokenIssuer mints and validates access tokens and generates opaque refresh
// token values. It holds no state beyond configuration; persistence of
// refresh tokens is the caller's concern.
type TokenIssuer interface {
	IssueAccessToken(userID uint, username string, roles []string) (string, error)
	NewRefreshTokenValue() (string, error)
	ParseAccessToken(tokenString string) (*AccessClaims, error)
	// AccessTokenExpiry tells clients when a token minted now would expire,
	// so they can refresh pre-emptively.
	AccessTokenExpiry() time.Time
}

type tokenIssuer struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
}

// NewTokenIssuer creates a new token issuer instance
func NewTokenIssuer(cfg *config.Config) TokenIssuer {
	return &tokenIssuer{
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.JWTIssuer,
		audience:  cfg.JWTAudience,
		accessTTL: time.Duration(cfg.AccessTokenTTL) * time.Second,
	}
}

func (t *tokenIssuer) IssueAccessToken(userID uint, username string, roles []string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *tokenIssuer) NewRefreshTokenValue() (string, error) {
	// 256 bits of entropy, URL-safe.
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (t *tokenIssuer) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (t *tokenIssuer) AccessTokenExpiry() time.Time {
	return time.Now().Add(t.accessTTL)
}
