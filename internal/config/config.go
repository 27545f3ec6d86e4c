package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the demo.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Token   TokenConfig
	Demo    DemoConfig
	Metrics MetricsConfig
}

// AppConfig identifies the running process in logs.
type AppConfig struct {
	Name string `env:"APP_NAME" envDefault:"token-demo"`
	Env  string `env:"APP_ENV" envDefault:"development"`
}

// LoggerConfig configures logging behavior. Logs default to stderr so stdout
// only carries the report lines.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
}

// TokenConfig defines signing parameters.
type TokenConfig struct {
	Algorithm string        `env:"TOKEN_ALGORITHM" envDefault:"HS256"`
	TTL       time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
}

// DemoConfig describes the user the demo issues a token for.
type DemoConfig struct {
	Username string `env:"DEMO_USERNAME" envDefault:"Marmont"`
	Role     string `env:"DEMO_ROLE" envDefault:"ADMIN"`
}

// MetricsConfig names the file the run's counters are written to in the
// Prometheus text format. Empty disables the export.
type MetricsConfig struct {
	File string `env:"METRICS_FILE"`
}

// MinTokenTTL is the smallest lifetime a token can carry, since exp and iat
// are encoded in whole seconds.
const MinTokenTTL = time.Second

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env parsing alone cannot reject.
func (c *Config) Validate() error {
	var errs []error
	if c.Token.TTL < MinTokenTTL {
		errs = append(errs, fmt.Errorf("invalid TOKEN_TTL %s: must be at least %s", c.Token.TTL, MinTokenTTL))
	}
	if strings.TrimSpace(c.Token.Algorithm) == "" {
		errs = append(errs, errors.New("TOKEN_ALGORITHM must not be empty"))
	}
	if strings.TrimSpace(c.Demo.Role) == "" {
		errs = append(errs, errors.New("DEMO_ROLE must not be empty"))
	}
	return errors.Join(errs...)
}

// TTLMillis returns the token lifetime in milliseconds.
func (t TokenConfig) TTLMillis() int64 {
	return t.TTL.Milliseconds()
}
