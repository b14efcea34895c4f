package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/publicworks/portal/internal/command"
	"github.com/publicworks/portal/internal/domain"
	"github.com/publicworks/portal/internal/result"
)

// SeedTenantName is the tenant assigned to the bootstrap administrator.
const SeedTenantName = "Public Works"

// Bootstrap ensures the seed administrator exists. It probes with a login
// and registers an ADMIN account only when the probe fails, so repeated
// process starts after the first successful seed perform zero writes. A
// concurrent bootstrap losing the storage uniqueness race is treated as
// already seeded.
func (s *Service) Bootstrap(ctx context.Context, seedEmail, seedPassword string) error {
	login := s.Login(ctx, seedEmail, seedPassword)
	if login.IsSuccess() {
		log.Info().Str("email", NormalizeEmail(seedEmail)).Msg("seed admin already exists")
		return nil
	}

	reg := s.Register(ctx, command.Register{
		Email:          seedEmail,
		Password:       seedPassword,
		TenantName:     SeedTenantName,
		Role:           domain.RoleAdmin,
		Differentiator: domain.DifferentiatorDefault,
	})
	if !reg.IsSuccess() {
		failure := reg.Failure()
		if failure.Kind == result.KindDuplicateEmail {
			log.Info().Str("email", NormalizeEmail(seedEmail)).Msg("seed admin registered concurrently")
			return nil
		}
		return fmt.Errorf("auth.Bootstrap: %w", failure)
	}

	log.Info().
		Str("email", reg.Data().Email).
		Str("tenant", reg.Data().TenantID).
		Msg("seed admin created")

	return nil
}
