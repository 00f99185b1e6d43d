package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the API server configuration, read from the environment.
type Config struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	Port    int    `envconfig:"APP_PORT" default:"8000"`
	HTTP    HTTPConfig
	DB      DBConfig
	Redis   RedisConfig
	Limiter RateLimiterConfig
	CORS    CORSConfig
	JWT     JWTConfig
	Crypto  CryptoConfig
}

// HTTPConfig holds the http.Server timeouts.
type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"1m"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// DBConfig sizes the postgres pool.
type DBConfig struct {
	DSN         string        `envconfig:"DATABASE_URL" required:"true"`
	MaxConns    int           `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int           `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxIdleTime time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"15m"`
}

type RedisConfig struct {
	URL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// RateLimiterConfig is applied per client IP.
type RateLimiterConfig struct {
	RPS     float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	Burst   int     `envconfig:"RATE_LIMIT_BURST" default:"20"`
	Enabled bool    `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig lists the frontends allowed to send the auth cookie.
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:5173"`
}

// JWTConfig: the token TTL is also the cookie max age.
type JWTConfig struct {
	Secret         string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"24h"`
}

// CryptoConfig holds the AES key for phone numbers at rest.
type CryptoConfig struct {
	Secret string `envconfig:"AES_SECRET_KEY" required:"true"`
}

var envs = []string{"development", "staging", "production", "test"}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.knownEnv(), "invalid environment: %s (must be one of: %s)", c.Env, strings.Join(envs, ", "))
	check(c.Port >= 1 && c.Port <= 65535, "invalid port: %d (must be between 1 and 65535)", c.Port)
	check(c.HTTP.ReadTimeout > 0 && c.HTTP.WriteTimeout > 0, "HTTP read and write timeouts must be positive")
	check(c.HTTP.ShutdownTimeout > 0, "HTTP_SHUTDOWN_TIMEOUT must be positive")
	check(c.DB.MaxConns >= 1, "DB_MAX_CONNS must be at least 1")
	check(c.DB.MinConns >= 0 && c.DB.MinConns <= c.DB.MaxConns,
		"DB_MIN_CONNS (%d) must be between 0 and DB_MAX_CONNS (%d)", c.DB.MinConns, c.DB.MaxConns)
	check(c.Limiter.RPS >= 0, "RATE_LIMIT_RPS must be non-negative")
	check(c.Limiter.Burst >= 1, "RATE_LIMIT_BURST must be at least 1")
	check(len(c.JWT.Secret) >= 32, "JWT_SECRET must be at least 32 characters")
	check(c.JWT.AccessTokenTTL > 0, "JWT_ACCESS_TOKEN_TTL must be positive")
	n := len(c.Crypto.Secret)
	check(n == 16 || n == 24 || n == 32, "AES_SECRET_KEY must be 16, 24, or 32 bytes (got %d)", n)
	check(len(c.GetCORSOrigins()) > 0, "at least one trusted origin must be specified")

	return errors.Join(errs...)
}

func (c *Config) knownEnv() bool {
	for _, e := range envs {
		if c.Env == e {
			return true
		}
	}
	return false
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the trusted origins with blanks dropped.
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// String omits secrets so the config can be logged at startup.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, DB.MaxConns=%d, DB.MinConns=%d, "+
		"Limiter.RPS=%.2f, Limiter.Burst=%d, Limiter.Enabled=%t, CORS.Origins=%v, JWT.AccessTokenTTL=%s}",
		c.Env, c.Port, c.DB.MaxConns, c.DB.MinConns,
		c.Limiter.RPS, c.Limiter.Burst, c.Limiter.Enabled, c.GetCORSOrigins(),
		c.JWT.AccessTokenTTL)
}
