package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	fxerrors "github.com/km-arc/go-fixture/framework/errors"
)

// Config is the central typed configuration of the fixture server and CLI.
type Config struct {
	App     AppConfig
	Fixture FixtureConfig
	Server  ServerConfig
}

type AppConfig struct {
	Name     string `validate:"required"`
	Env      string `validate:"oneof=local testing production"`
	Debug    bool
	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"omitempty,oneof=debug info warn warning error"`
}

type FixtureConfig struct {
	// MaxDepth bounds recursive construction; 0 means unbounded.
	MaxDepth int `validate:"gte=0"`
}

type ServerConfig struct {
	RateLimit       float64       `validate:"gt=0"` // requests per second
	RateBurst       int           `validate:"gte=1"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in CI
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:     env("APP_NAME", "fixtured"),
			Env:      env("APP_ENV", "local"),
			Debug:    envBool("APP_DEBUG", false),
			Port:     env("APP_PORT", "8000"),
			LogLevel: env("LOG_LEVEL", "info"),
		},
		Fixture: FixtureConfig{
			MaxDepth: GetInt("FIXTURE_MAX_DEPTH", 64),
		},
		Server: ServerConfig{
			RateLimit:       envFloat("SERVER_RATE_LIMIT", 100),
			RateBurst:       GetInt("SERVER_RATE_BURST", 200),
			ReadTimeout:     envDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    envDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: envDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every section against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fxerrors.Wrap(fxerrors.ErrCodeInvalidConfig, "invalid configuration", err)
	}
	return nil
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
