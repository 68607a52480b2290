package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

var (
	ErrInvalidLimit     = errors.New("content limits must be positive")
	ErrInvalidRateLimit = errors.New("rate limit must be positive")
	ErrInvalidPort      = errors.New("port must not be empty")
)

// Limits bounds the content accepted per symbology.
type Limits struct {
	MaxContentLength int `env:"MAX_CONTENT_LENGTH" envDefault:"1000"`
	BarcodeMaxLength int `env:"BARCODE_MAX_LENGTH" envDefault:"64"`
}

// DefaultLimits returns the limits used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{
		MaxContentLength: 1000,
		BarcodeMaxLength: 64,
	}
}

type Config struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	Env                string        `env:"ENV" envDefault:"development"`
	Debug              bool          `env:"DEBUG" envDefault:"false"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"50"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SwaggerHost        string        `env:"SWAGGER_HOST"`
	SwaggerSchemes     []string      `env:"SWAGGER_SCHEMES" envSeparator:"," envDefault:"http,https"`
	Limits             Limits
}

// Load reads the configuration from the environment.
// Call godotenv.Load beforehand to pick up a .env file.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.SwaggerHost == "" {
		cfg.SwaggerHost = "localhost:" + cfg.Port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail at request time.
func (c Config) Validate() error {
	if c.Port == "" {
		return ErrInvalidPort
	}
	if c.Limits.MaxContentLength <= 0 || c.Limits.BarcodeMaxLength <= 0 {
		return ErrInvalidLimit
	}
	if c.RateLimitPerMinute <= 0 {
		return ErrInvalidRateLimit
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// RateLimitDescription renders the rate limit the way it is reported by /metrics.
func (c Config) RateLimitDescription() string {
	return fmt.Sprintf("%d per minute", c.RateLimitPerMinute)
}
