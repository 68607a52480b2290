package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "DEBUG", "LOG_LEVEL", "RATE_LIMIT_PER_MINUTE", "SHUTDOWN_TIMEOUT",
		"SWAGGER_HOST", "SWAGGER_SCHEMES", "MAX_CONTENT_LENGTH", "BARCODE_MAX_LENGTH",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Limits != DefaultLimits() {
		t.Errorf("Limits = %+v, want %+v", cfg.Limits, DefaultLimits())
	}
	if cfg.RateLimitPerMinute != 50 {
		t.Errorf("RateLimitPerMinute = %d, want 50", cfg.RateLimitPerMinute)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.SwaggerHost != "localhost:8080" {
		t.Errorf("SwaggerHost = %q, want localhost:8080", cfg.SwaggerHost)
	}
	if len(cfg.SwaggerSchemes) != 2 || cfg.SwaggerSchemes[0] != "http" || cfg.SwaggerSchemes[1] != "https" {
		t.Errorf("SwaggerSchemes = %v, want [http https]", cfg.SwaggerSchemes)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("MAX_CONTENT_LENGTH", "200")
	t.Setenv("BARCODE_MAX_LENGTH", "20")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")
	t.Setenv("SWAGGER_HOST", "")
	t.Setenv("SWAGGER_SCHEMES", "https")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Limits.MaxContentLength != 200 || cfg.Limits.BarcodeMaxLength != 20 {
		t.Errorf("Limits = %+v", cfg.Limits)
	}
	if cfg.SwaggerHost != "localhost:9090" {
		t.Errorf("SwaggerHost = %q, want localhost:9090", cfg.SwaggerHost)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %q, want :9090", cfg.Addr())
	}
	if got := cfg.RateLimitDescription(); got != "10 per minute" {
		t.Errorf("RateLimitDescription() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:               "8080",
		LogLevel:           "info",
		RateLimitPerMinute: 50,
		Limits:             DefaultLimits(),
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Port = "" }, wantErr: ErrInvalidPort},
		{name: "zero content limit", mutate: func(c *Config) { c.Limits.MaxContentLength = 0 }, wantErr: ErrInvalidLimit},
		{name: "negative barcode limit", mutate: func(c *Config) { c.Limits.BarcodeMaxLength = -1 }, wantErr: ErrInvalidLimit},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimitPerMinute = 0 }, wantErr: ErrInvalidRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UnknownLogLevel(t *testing.T) {
	cfg := Config{Port: "8080", LogLevel: "verbose", RateLimitPerMinute: 1, Limits: DefaultLimits()}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
