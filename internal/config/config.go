package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	Slack      SlackConfig
	Session    SessionConfig
	Seed       SeedConfig
	LoginLimit LoginLimitConfig
	SelfHosted bool
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds the optional banner pub/sub connection. An empty Addr
// disables the pub/sub sink.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// SlackConfig holds the optional operations channel sink. An empty token
// disables it.
type SlackConfig struct {
	BotToken  string
	ChannelID string
}

// SessionConfig holds session token settings for the external session carrier.
type SessionConfig struct {
	Secret string //nolint:gosec // G117: token signing secret config
	TTL    time.Duration
}

// SeedConfig holds the bootstrap administrator identity.
type SeedConfig struct {
	Email    string
	Password string //nolint:gosec // G117: seed credential config
}

// LoginLimitConfig holds per-email sign-in throttling.
type LoginLimitConfig struct {
	AttemptsPerSecond float64
	Burst             int
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production, sensitive
// values (session secret, DB password, seed password) must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("PORTAL_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("PORTAL_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("PORTAL_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	sessionTTL, err := getEnvDuration("PORTAL_SESSION_TTL", 8*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	loginRate, err := getEnvFloat("PORTAL_LOGIN_ATTEMPTS_PER_SECOND", 0.2)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	loginBurst, err := getEnvInt("PORTAL_LOGIN_BURST", 5)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	selfHosted, err := getEnvBool("PORTAL_SELF_HOSTED", false)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("PORTAL_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("PORTAL_DB_USER", "portal"),
			Password: getEnv("PORTAL_DB_PASSWORD", ""),
			DBName:   getEnv("PORTAL_DB_NAME", "portal_dev"),
			SSLMode:  getEnv("PORTAL_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("PORTAL_REDIS_ADDR", ""),
			Password: getEnv("PORTAL_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Slack: SlackConfig{
			BotToken:  getEnv("PORTAL_SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("PORTAL_SLACK_CHANNEL_ID", ""),
		},
		Session: SessionConfig{
			Secret: getEnv("PORTAL_SESSION_SECRET", ""),
			TTL:    sessionTTL,
		},
		Seed: SeedConfig{
			Email:    getEnv("PORTAL_SEED_EMAIL", "admin@publicworks.local"),
			Password: getEnv("PORTAL_SEED_PASSWORD", "admin123!"),
		},
		LoginLimit: LoginLimitConfig{
			AttemptsPerSecond: loginRate,
			Burst:             loginBurst,
		},
		SelfHosted: selfHosted,
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// Session secret is required (no insecure default).
	if c.Session.Secret == "" {
		return errors.New("PORTAL_SESSION_SECRET is required")
	}
	if len(c.Session.Secret) < 32 {
		return errors.New("PORTAL_SESSION_SECRET must be at least 32 characters")
	}

	if c.Database.SSLMode == "disable" && !c.SelfHosted {
		log.Warn().Msg("PORTAL_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("PORTAL_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("PORTAL_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("PORTAL_SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.Seed.Email == "" || c.Seed.Password == "" {
		return errors.New("PORTAL_SEED_EMAIL and PORTAL_SEED_PASSWORD must not be empty")
	}
	if c.LoginLimit.AttemptsPerSecond <= 0 {
		return fmt.Errorf("PORTAL_LOGIN_ATTEMPTS_PER_SECOND must be positive, got %g", c.LoginLimit.AttemptsPerSecond)
	}
	if c.LoginLimit.Burst < 1 {
		return fmt.Errorf("PORTAL_LOGIN_BURST must be >= 1, got %d", c.LoginLimit.Burst)
	}
	if (c.Slack.BotToken == "") != (c.Slack.ChannelID == "") {
		return errors.New("PORTAL_SLACK_BOT_TOKEN and PORTAL_SLACK_CHANNEL_ID must be set together")
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q as bool: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}
