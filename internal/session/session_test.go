package session_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publicworks/portal/internal/domain"
	"github.com/publicworks/portal/internal/session"
)

func testUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Email:          "alice@acme.example",
		PasswordHash:   "should-never-survive",
		Role:           domain.RoleUser,
		TenantID:       "acme",
		Differentiator: domain.DifferentiatorDefault,
	}
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through the context sanitized", func(t *testing.T) {
		t.Parallel()

		ctx := session.WithUser(t.Context(), testUser())

		got, ok := session.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "alice@acme.example", got.Email)
		assert.Empty(t, got.PasswordHash, "session user must not carry credential material")
		assert.True(t, session.IsLoggedIn(ctx))
	})

	t.Run("empty context reports signed out", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()

		_, ok := session.FromContext(ctx)
		assert.False(t, ok)
		assert.False(t, session.IsLoggedIn(ctx))
		assert.False(t, session.IsAdmin(ctx))
		assert.Empty(t, session.TenantID(ctx))

		_, ok = session.Differentiator(ctx)
		assert.False(t, ok)
	})

	t.Run("nil user leaves the context unchanged", func(t *testing.T) {
		t.Parallel()

		ctx := session.WithUser(t.Context(), nil)
		assert.False(t, session.IsLoggedIn(ctx))
	})

	t.Run("tenant helpers read the session user", func(t *testing.T) {
		t.Parallel()

		u := testUser()
		ctx := session.WithUser(t.Context(), u)

		assert.Equal(t, "acme", session.TenantID(ctx))

		diff, ok := session.Differentiator(ctx)
		require.True(t, ok)
		assert.Equal(t, domain.DifferentiatorDefault, diff)
	})

	t.Run("admin check follows the role", func(t *testing.T) {
		t.Parallel()

		member := testUser()
		assert.False(t, session.IsAdmin(session.WithUser(t.Context(), member)))

		admin := testUser()
		admin.Role = domain.RoleAdmin
		assert.True(t, session.IsAdmin(session.WithUser(t.Context(), admin)))
	})
}
