package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds all server configuration, parsed from environment variables.
type Config struct {
	Host        string `env:"HOST"        envDefault:"0.0.0.0"`
	Port        int    `env:"PORT"        envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"brainbreak"`

	// RedisAddr is optional; when empty the leaderboard cache is disabled and
	// every leaderboard read goes straight to Mongo.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	TokenSecret    string        `env:"TOKEN_SECRET"`
	TokenIssuer    string        `env:"TOKEN_ISSUER"     envDefault:"brainbreak"`
	TokenExpiresIn time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"168h"`
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// Production reports whether the server runs in production mode. Outside
// production, verification codes are surfaced in API responses as an
// operational shortcut for setups without SMTP.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}

	return nil
}
