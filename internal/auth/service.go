// Package auth verifies credentials, creates tenant-scoped accounts, and
// seeds the default administrator on first startup.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/publicworks/portal/internal/command"
	"github.com/publicworks/portal/internal/domain"
	"github.com/publicworks/portal/internal/result"
)

// User-facing failure messages. Login failures are deliberately
// undifferentiated so the response does not reveal whether an email exists.
const (
	msgInvalidCredentials = "Invalid email or password."
	msgRateLimited        = "Too many sign-in attempts. Please try again shortly."
	msgDuplicateEmail     = "An account with this email already exists."
	msgStorageUnavailable = "Something went wrong. Please try again."
)

// Service provides credential verification and tenant-scoped registration.
type Service struct {
	users   domain.UserRepository
	limiter *LoginLimiter // nil disables throttling
}

// NewService creates the auth service. Pass a nil limiter to disable login
// throttling (tests, trusted callers).
func NewService(users domain.UserRepository, limiter *LoginLimiter) *Service {
	return &Service{users: users, limiter: limiter}
}

// Login looks up the user by case-insensitive email and verifies the
// password in constant time. Unknown email and wrong password produce the
// same failure. On success the returned user carries no credential material.
func (s *Service) Login(ctx context.Context, email, password string) result.Result[*domain.User] {
	email = NormalizeEmail(email)

	if s.limiter != nil && !s.limiter.Allow(email) {
		return result.Fail[*domain.User](result.KindRateLimited, msgRateLimited)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return result.Fail[*domain.User](result.KindInvalidCredentials, msgInvalidCredentials)
	}
	if err != nil {
		log.Error().Err(err).Msg("auth: login lookup failed")
		return result.Fail[*domain.User](result.KindPersistenceFailure, msgStorageUnavailable)
	}

	if !verifyPassword(password, user.PasswordHash) {
		return result.Fail[*domain.User](result.KindInvalidCredentials, msgInvalidCredentials)
	}

	return result.OK(user.Sanitized())
}

// Register creates a tenant-scoped account. Email uniqueness is checked
// case-insensitively here and again by the storage constraint, which is the
// backstop against concurrent registrations for the same email.
func (s *Service) Register(ctx context.Context, cmd command.Register) result.Result[*domain.User] {
	email := NormalizeEmail(cmd.Email)
	if email == "" {
		return result.FailField[*domain.User]("email", "Email is required.")
	}
	if !strings.Contains(email, "@") {
		return result.FailField[*domain.User]("email", "Email is not valid.")
	}
	if cmd.Password == "" {
		return result.FailField[*domain.User]("password", "Password is required.")
	}

	role := cmd.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return result.FailField[*domain.User]("role", "Unknown role.")
	}

	differentiator := cmd.Differentiator
	if differentiator == "" {
		differentiator = domain.DifferentiatorDefault
	}
	if !differentiator.Valid() {
		return result.FailField[*domain.User]("customer_differentiator", "Unknown customer differentiator.")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return result.Fail[*domain.User](result.KindDuplicateEmail, msgDuplicateEmail)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Error().Err(err).Msg("auth: register lookup failed")
		return result.Fail[*domain.User](result.KindPersistenceFailure, msgStorageUnavailable)
	}

	hash, err := hashPassword(cmd.Password)
	if err != nil {
		log.Error().Err(err).Msg("auth: password hashing failed")
		return result.Fail[*domain.User](result.KindPersistenceFailure, msgStorageUnavailable)
	}

	now := time.Now()
	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   hash,
		Role:           role,
		TenantID:       resolveTenantID(cmd),
		Differentiator: differentiator,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return result.Fail[*domain.User](result.KindDuplicateEmail, msgDuplicateEmail)
		}
		log.Error().Err(err).Msg("auth: user create failed")
		return result.Fail[*domain.User](result.KindPersistenceFailure, msgStorageUnavailable)
	}

	return result.OK(user.Sanitized())
}

// NormalizeEmail canonicalizes an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// resolveTenantID picks the tenant key for a new account: an explicit id
// wins, then a slug of the supplied tenant name, then a fresh id.
func resolveTenantID(cmd command.Register) string {
	if cmd.TenantID != "" {
		return cmd.TenantID
	}
	if slug := slugify(cmd.TenantName); slug != "" {
		return slug
	}
	return uuid.NewString()
}

// slugify normalizes a tenant name to a stable lower-case id.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
