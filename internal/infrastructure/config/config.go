package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs and verifies access tokens. Mandatory; there is no
	// safe default for a signing key.
	JWTSecret string `env:"JWT_SECRET, required"`

	// TokenTTLMinutes is the access token lifetime. Defaults to 7 days.
	TokenTTLMinutes int `env:"TOKEN_TTL_MINUTES, default=10080"`

	// AllowedOrigins is the CORS allow-list. "*" permits any origin.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=*"`

	// ActivityWorkers sizes the background activity dispatcher pool.
	ActivityWorkers int `env:"ACTIVITY_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=civic_issues"`
	// Timeout bounds the initial connect handshake.
	Timeout time.Duration `env:"MONGO_TIMEOUT, default=10s"`
	// StoreTimeout bounds each credential store read and write.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT, default=5s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
