package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/publicworks/portal/internal/auth"
	"github.com/publicworks/portal/internal/command"
	"github.com/publicworks/portal/internal/config"
	"github.com/publicworks/portal/internal/notify"
	slacksink "github.com/publicworks/portal/internal/notify/slack"
	"github.com/publicworks/portal/internal/session"
	"github.com/publicworks/portal/internal/store/postgres"
	redisstore "github.com/publicworks/portal/internal/store/redis"
	"github.com/publicworks/portal/internal/workorder"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("PORTAL_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("PORTAL_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	// Optional banner sinks.
	var sinks []notify.Sink
	if cfg.Redis.Addr != "" {
		hub, hubErr := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if hubErr != nil {
			return hubErr
		}
		defer hub.Close()
		sinks = append(sinks, notify.NewPubSubSink(hub))
	}
	if cfg.Slack.BotToken != "" {
		api := slacklib.New(cfg.Slack.BotToken)
		sinks = append(sinks, slacksink.New(api, cfg.Slack.ChannelID))
	}

	// Create services.
	limiter := auth.NewLoginLimiter(ctx, cfg.LoginLimit.AttemptsPerSecond, cfg.LoginLimit.Burst)
	authSvc := auth.NewService(store.Users(), limiter)
	workOrderSvc := workorder.NewService(store.WorkOrders(), notify.NewFanout(sinks...))

	// Build the command bus. A duplicate registration fails here, before any
	// dispatch is possible.
	bus, err := command.NewBus(
		auth.LoginHandler(authSvc),
		auth.RegisterHandler(authSvc),
		workorder.CreateHandler(workOrderSvc),
		workorder.ListHandler(workOrderSvc),
	)
	if err != nil {
		return err
	}
	_ = bus // the embedding UI layer dispatches through this wiring

	// Idempotent seed of the default administrator.
	if err := authSvc.Bootstrap(ctx, cfg.Seed.Email, cfg.Seed.Password); err != nil {
		return err
	}

	// End-to-end check of the session layer for the seeded admin: the
	// embedding UI issues and validates tokens with this same secret.
	login := authSvc.Login(ctx, cfg.Seed.Email, cfg.Seed.Password)
	if !login.IsSuccess() {
		return fmt.Errorf("seed admin sign-in check failed: %s", login.Failure().Message)
	}
	token, err := session.IssueToken(cfg.Session.Secret, login.Data(), cfg.Session.TTL)
	if err != nil {
		return err
	}
	claims, err := session.ValidateToken(cfg.Session.Secret, token)
	if err != nil {
		return fmt.Errorf("session token self-check: %w", err)
	}

	log.Info().Str("admin", claims.Email).Msg("portal core ready")
	return nil
}
