package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/publicworks/portal/internal/domain"
)

// ErrInvalidToken is returned when a session token cannot be parsed, has the
// wrong signature, or has expired.
var ErrInvalidToken = errors.New("session: invalid or expired token")

// Claims is the session token payload the external session carrier stores
// between requests.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"uid"`
	Email          string `json:"email"`
	TenantID       string `json:"tid"`
	Role           string `json:"role"`
	Differentiator string `json:"diff"`
}

// IssueToken creates a signed HS256 session token for the given user.
func IssueToken(secret string, u *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "portal",
		},
		UserID:         u.ID.String(),
		Email:          u.Email,
		TenantID:       u.TenantID,
		Role:           string(u.Role),
		Differentiator: string(u.Differentiator),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("session.IssueToken: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a session token string.
func ValidateToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("session.ValidateToken: %w", ErrInvalidToken)
	}

	return claims, nil
}

// UserFromClaims rebuilds the sanitized session user from validated claims.
func UserFromClaims(c *Claims) (*domain.User, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("session.UserFromClaims: invalid user id: %w", ErrInvalidToken)
	}

	return &domain.User{
		ID:             id,
		Email:          c.Email,
		TenantID:       c.TenantID,
		Role:           domain.Role(c.Role),
		Differentiator: domain.Differentiator(c.Differentiator),
	}, nil
}
