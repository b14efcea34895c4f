// Package session carries the current user through a request as an explicit
// context value. There is no hidden process-wide slot: the external session
// framework stores the token from IssueToken and rebuilds the context per
// request, which keeps handlers testable without a simulated session.
package session

import (
	"context"

	"github.com/publicworks/portal/internal/domain"
)

type contextKey string

const contextKeyUser contextKey = "current_user"

// WithUser returns a context carrying the signed-in user. The user is stored
// sanitized; credential material never rides in a session.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	if u == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKeyUser, u.Sanitized())
}

// FromContext returns the current user, if any.
func FromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(contextKeyUser).(*domain.User)
	return u, ok
}

// IsLoggedIn reports whether a user is attached to the context.
func IsLoggedIn(ctx context.Context) bool {
	_, ok := FromContext(ctx)
	return ok
}

// IsAdmin reports whether the current user holds the administrative role.
func IsAdmin(ctx context.Context) bool {
	u, ok := FromContext(ctx)
	return ok && u.IsAdmin()
}

// TenantID returns the current user's tenant id, or "" when signed out.
func TenantID(ctx context.Context) string {
	u, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return u.TenantID
}

// Differentiator returns the current user's tenant differentiator.
func Differentiator(ctx context.Context) (domain.Differentiator, bool) {
	u, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return u.Differentiator, true
}
