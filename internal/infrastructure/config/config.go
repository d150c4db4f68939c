// Package config loads the gateway configuration from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs the session-ID cookie. Mandatory outside development.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL, default=720h"`

	Core  CoreConfig
	Redis RedisConfig
	Mongo MongoConfig

	// BootstrapPollInterval paces the admin-exists poll on the setup page.
	BootstrapPollInterval time.Duration `env:"BOOTSTRAP_POLL_INTERVAL, default=1s"`
	AuditWorkers          int           `env:"AUDIT_WORKERS, default=4"`
}

// CoreConfig locates the Beamify core REST API, read once at startup.
type CoreConfig struct {
	BaseURL string `env:"CORE_API_URL,     default=http://localhost:3021"`
	Version string `env:"CORE_API_VERSION, default=v1"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=beamify_gateway"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Env != "development" && cfg.SessionSecret == "" {
		return nil, fmt.Errorf("config: SESSION_SECRET is required outside development")
	}
	return &cfg, nil
}
