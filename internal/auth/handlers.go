package auth

import (
	"context"

	"github.com/publicworks/portal/internal/command"
	"github.com/publicworks/portal/internal/result"
)

// LoginHandler exposes Service.Login on the command bus.
func LoginHandler(s *Service) command.Registration {
	return command.Handle(func(ctx context.Context, cmd command.Login) result.Result[any] {
		return result.Erase(s.Login(ctx, cmd.Email, cmd.Password))
	})
}

// RegisterHandler exposes Service.Register on the command bus.
func RegisterHandler(s *Service) command.Registration {
	return command.Handle(func(ctx context.Context, cmd command.Register) result.Result[any] {
		return result.Erase(s.Register(ctx, cmd))
	})
}
