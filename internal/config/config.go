// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Notification transports
const (
	TransportRedis   = "redis"
	TransportDiscord = "discord"
)

// Config is everything cmd/bot needs to wire the service
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	// NotifyTransport selects how notifications reach participants
	NotifyTransport string `env:"NOTIFY_TRANSPORT" envDefault:"discord"`

	// InboxTTL bounds how long undelivered notifications stay in a Redis inbox
	InboxTTL time.Duration `env:"INBOX_TTL" envDefault:"1h"`

	MaxDistanceMeters float64       `env:"MAX_DISTANCE_METERS" envDefault:"100"`
	RecencyWindow     time.Duration `env:"RECENCY_WINDOW" envDefault:"1h"`
	NearbyLimit       int           `env:"NEARBY_LIMIT" envDefault:"20"`
	ResolutionWindow  time.Duration `env:"RESOLUTION_WINDOW" envDefault:"60s"`
	MaxRetries        int           `env:"MAX_RETRIES" envDefault:"5"`
	PokeTTL           time.Duration `env:"POKE_TTL" envDefault:"1h"`

	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	// Seed fixes the random source; zero means time-seeded
	Seed int64 `env:"RANDOM_SEED"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that tags cannot express
func (c *Config) Validate() error {
	switch c.NotifyTransport {
	case TransportRedis:
	case TransportDiscord:
	default:
		return fmt.Errorf("unknown notify transport %q", c.NotifyTransport)
	}
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN environment variable is required")
	}
	if c.MaxDistanceMeters <= 0 {
		return errors.New("MAX_DISTANCE_METERS must be positive")
	}
	if c.MaxRetries < 1 {
		return errors.New("MAX_RETRIES must be at least 1")
	}
	return nil
}
