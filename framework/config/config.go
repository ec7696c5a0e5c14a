package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when the environment holds values the service
// cannot run with.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the central typed configuration struct.
type Config struct {
	App        AppConfig
	Log        LogConfig
	Validation ValidationConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"FormRules" validate:"required"`
	Env   string `env:"APP_ENV" envDefault:"local" validate:"oneof=local production testing"`
	Debug bool   `env:"APP_DEBUG" envDefault:"true"`
	Port  string `env:"APP_PORT" envDefault:"8000" validate:"required,numeric"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

type ValidationConfig struct {
	// FormsFile is an optional YAML file of named form rule sets.
	FormsFile string `env:"VALIDATION_FORMS_FILE"`
	// MaxBody caps request bodies accepted by the validation endpoints.
	MaxBody int64 `env:"VALIDATION_MAX_BODY" envDefault:"1048576" validate:"gt=0"`
}

// Load reads .env files (if present) and populates a Config from environment
// variables. Call once at bootstrap: cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Non-fatal: .env may not exist in production
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.App.Port }
