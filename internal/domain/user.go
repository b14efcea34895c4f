package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the portal-wide authorization role carried by a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Differentiator selects the tenant isolation strategy applied to a tenant's
// data. The set is closed; per-customer variants are added here, never
// invented at runtime.
type Differentiator string

const (
	// DifferentiatorDefault scopes data by row filtering in shared tables.
	DifferentiatorDefault Differentiator = "DEFAULT"
	// DifferentiatorDedicated scopes data to a dedicated partition.
	DifferentiatorDedicated Differentiator = "DEDICATED"
)

func (d Differentiator) Valid() bool {
	switch d {
	case DifferentiatorDefault, DifferentiatorDedicated:
		return true
	}
	return false
}

// User is an identity record. Email is unique across the whole portal
// (case-insensitive, stored normalized to lower case) and TenantID is
// immutable after creation.
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string // argon2id, hex(salt) + "$" + hex(hash)
	Role           Role
	TenantID       string
	Differentiator Differentiator
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Sanitized returns a copy without credential material, suitable for results
// and session storage.
func (u *User) Sanitized() *User {
	cp := *u
	cp.PasswordHash = ""
	return &cp
}

// IsAdmin reports whether the user holds the administrative role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserRepository is the persistence collaborator contract for users. Each
// call is atomic; Create must enforce email uniqueness and return ErrConflict
// on a duplicate, since application-level check-then-write alone is not
// race-free.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}
