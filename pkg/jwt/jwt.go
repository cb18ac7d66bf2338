package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenLifetime is how long an issued access token stays valid
const DefaultAccessTokenLifetime = time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims represents the identity embedded in an access token
type Claims struct {
	AuthorID string `json:"author_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and validates HS256 access tokens.
// The secret is read once at construction and never rotated.
type Manager struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// Option customizes a Manager
type Option func(*Manager)

// WithClock overrides the time source, used by tests to check expiry
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates new JWT manager
func NewManager(secret string, lifetime time.Duration, opts ...Option) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultAccessTokenLifetime
	}
	m := &Manager{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GenerateAccessToken signs a token for the given author
func (m *Manager) GenerateAccessToken(authorID, email string) (string, error) {
	now := m.now()
	claims := Claims{
		AuthorID: authorID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates signature and expiry and returns the claims
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.AuthorID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Lifetime returns the configured access token lifetime
func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}
