package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

// Strategy names accepted by MIRA_STRATEGY.
const (
	StrategyAuto        = "auto"
	StrategyConsole     = "console"
	StrategyAppleScript = "applescript"
	StrategyEmulator    = "emulator"
	StrategyPTY         = "pty"
)

// Config holds all application configuration.
type Config struct {
	Apps      AppsConfig
	Launch    LaunchConfig
	HTTP      HTTPConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// AppsConfig controls discovery.
type AppsConfig struct {
	Dir            string   `envconfig:"MIRA_APPS_DIR" default:"Modules"`
	Extension      string   `envconfig:"MIRA_APP_EXT" default:".py"`
	ReservedPrefix string   `envconfig:"MIRA_RESERVED_PREFIX" default:"__"`
	Exclude        []string `envconfig:"MIRA_EXCLUDE"`
}

// LaunchConfig controls how apps are started and stopped.
type LaunchConfig struct {
	Interpreter  string        `envconfig:"MIRA_INTERPRETER" default:"python"`
	Strategy     string        `envconfig:"MIRA_STRATEGY" default:"auto"`
	Terminals    []string      `envconfig:"MIRA_TERMINALS" default:"gnome-terminal,konsole,xterm"`
	CloseTimeout time.Duration `envconfig:"MIRA_CLOSE_TIMEOUT" default:"5s"`
	OutputBuffer int           `envconfig:"MIRA_OUTPUT_BUFFER" default:"65536"`
}

// HTTPConfig holds the optional admin API configuration.
type HTTPConfig struct {
	Enabled bool   `envconfig:"MIRA_HTTP_ENABLED" default:"false"`
	Host    string `envconfig:"MIRA_HTTP_HOST" default:"127.0.0.1"`
	Port    string `envconfig:"MIRA_HTTP_PORT" default:"8090"`

	// CORSOrigins enables CORS for browser dashboards; empty disables it
	CORSOrigins []string `envconfig:"MIRA_HTTP_CORS_ORIGINS"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds admin API rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`

	// GlobalRequestsPerSecond caps all clients together; 0 disables the cap
	GlobalRequestsPerSecond int `envconfig:"RATE_LIMIT_GLOBAL_RPS" default:"0"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Apps: AppsConfig{
			Dir:            "Modules",
			Extension:      ".py",
			ReservedPrefix: "__",
		},
		Launch: LaunchConfig{
			Interpreter:  "python",
			Strategy:     StrategyAuto,
			Terminals:    []string{"gnome-terminal", "konsole", "xterm"},
			CloseTimeout: 5 * time.Second,
			OutputBuffer: 64 * 1024,
		},
		HTTP: HTTPConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    "8090",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error

	if strings.TrimSpace(c.Apps.Dir) == "" {
		errs = multierr.Append(errs, errors.New("apps dir must not be empty"))
	}
	if !strings.HasPrefix(c.Apps.Extension, ".") {
		errs = multierr.Append(errs, fmt.Errorf("app extension %q must start with '.'", c.Apps.Extension))
	}
	if strings.TrimSpace(c.Launch.Interpreter) == "" {
		errs = multierr.Append(errs, errors.New("interpreter must not be empty"))
	}
	switch c.Launch.Strategy {
	case StrategyAuto, StrategyConsole, StrategyAppleScript, StrategyEmulator, StrategyPTY:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown launch strategy %q", c.Launch.Strategy))
	}
	if c.Launch.CloseTimeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("close timeout must be positive, got %s", c.Launch.CloseTimeout))
	}
	if c.Launch.OutputBuffer <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("output buffer must be positive, got %d", c.Launch.OutputBuffer))
	}
	if c.RateLimit.GlobalRequestsPerSecond < 0 {
		errs = multierr.Append(errs, fmt.Errorf("global rate limit must not be negative, got %d", c.RateLimit.GlobalRequestsPerSecond))
	}
	if c.HTTP.Enabled && c.HTTP.Port == "" {
		errs = multierr.Append(errs, errors.New("http port must be set when the admin API is enabled"))
	}

	return errs
}

// Addr returns the admin API listen address.
func (h HTTPConfig) Addr() string {
	return h.Host + ":" + h.Port
}
