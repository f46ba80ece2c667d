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

	JWT      JWTConfig
	Admin    AdminConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type JWTConfig struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	Issuer        string        `env:"JWT_ISSUER,         default=authenticator"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL,     default=15m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL,    default=168h"`
}

type AdminConfig struct {
	Username  string `env:"ADMIN_USERNAME,  default=admin@example.com"`
	Password  string `env:"ADMIN_PASSWORD"`
	FirstName string `env:"ADMIN_FIRSTNAME, default=Default"`
	LastName  string `env:"ADMIN_LASTNAME,  default=Admin"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=host=localhost user=postgres password=postgres dbname=authenticator port=5432 sslmode=disable"`
}

type RedisConfig struct {
	// Addr left empty disables the Redis-backed login throttle.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type ThrottleConfig struct {
	MaxAttempts int           `env:"LOGIN_THROTTLE_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"LOGIN_THROTTLE_WINDOW,       default=5m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
