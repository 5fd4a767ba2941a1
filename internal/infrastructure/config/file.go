package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config for on-disk files. Pointers mark settings where
// the zero value is meaningful and must be distinguishable from "unset".
type fileConfig struct {
	Apps struct {
		Dir            string   `yaml:"dir" toml:"dir"`
		Extension      string   `yaml:"extension" toml:"extension"`
		ReservedPrefix *string  `yaml:"reserved_prefix" toml:"reserved_prefix"`
		Exclude        []string `yaml:"exclude" toml:"exclude"`
	} `yaml:"apps" toml:"apps"`
	Launch struct {
		Interpreter  string   `yaml:"interpreter" toml:"interpreter"`
		Strategy     string   `yaml:"strategy" toml:"strategy"`
		Terminals    []string `yaml:"terminals" toml:"terminals"`
		CloseTimeout string   `yaml:"close_timeout" toml:"close_timeout"`
		OutputBuffer int      `yaml:"output_buffer" toml:"output_buffer"`
	} `yaml:"launch" toml:"launch"`
	HTTP struct {
		Enabled     *bool    `yaml:"enabled" toml:"enabled"`
		Host        string   `yaml:"host" toml:"host"`
		Port        string   `yaml:"port" toml:"port"`
		CORSOrigins []string `yaml:"cors_origins" toml:"cors_origins"`
	} `yaml:"http" toml:"http"`
	Logging struct {
		Level       string `yaml:"level" toml:"level"`
		Development *bool  `yaml:"development" toml:"development"`
	} `yaml:"logging" toml:"logging"`
	RateLimit struct {
		RequestsPerSecond int   `yaml:"requests_per_second" toml:"requests_per_second"`
		Burst             int   `yaml:"burst" toml:"burst"`
		Enabled           *bool `yaml:"enabled" toml:"enabled"`
		GlobalRPS         int   `yaml:"global_requests_per_second" toml:"global_requests_per_second"`
	} `yaml:"rate_limit" toml:"rate_limit"`
}

// LoadFile loads the environment configuration and overlays the settings
// present in the YAML or TOML file at path. An empty path is the same as Load.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", ext)
	}

	if err := fc.apply(cfg); err != nil {
		return nil, fmt.Errorf("apply %s: %w", path, err)
	}
	return cfg, nil
}

// apply copies every non-zero setting onto cfg.
func (fc *fileConfig) apply(cfg *Config) error {
	setString(&cfg.Apps.Dir, fc.Apps.Dir)
	setString(&cfg.Apps.Extension, fc.Apps.Extension)
	if fc.Apps.ReservedPrefix != nil {
		cfg.Apps.ReservedPrefix = *fc.Apps.ReservedPrefix
	}
	if len(fc.Apps.Exclude) > 0 {
		cfg.Apps.Exclude = fc.Apps.Exclude
	}

	setString(&cfg.Launch.Interpreter, fc.Launch.Interpreter)
	setString(&cfg.Launch.Strategy, fc.Launch.Strategy)
	if len(fc.Launch.Terminals) > 0 {
		cfg.Launch.Terminals = fc.Launch.Terminals
	}
	if fc.Launch.CloseTimeout != "" {
		d, err := time.ParseDuration(fc.Launch.CloseTimeout)
		if err != nil {
			return fmt.Errorf("launch.close_timeout: %w", err)
		}
		cfg.Launch.CloseTimeout = d
	}
	if fc.Launch.OutputBuffer != 0 {
		cfg.Launch.OutputBuffer = fc.Launch.OutputBuffer
	}

	if fc.HTTP.Enabled != nil {
		cfg.HTTP.Enabled = *fc.HTTP.Enabled
	}
	setString(&cfg.HTTP.Host, fc.HTTP.Host)
	setString(&cfg.HTTP.Port, fc.HTTP.Port)
	if len(fc.HTTP.CORSOrigins) > 0 {
		cfg.HTTP.CORSOrigins = fc.HTTP.CORSOrigins
	}

	setString(&cfg.Logging.Level, fc.Logging.Level)
	if fc.Logging.Development != nil {
		cfg.Logging.Development = *fc.Logging.Development
	}

	if fc.RateLimit.RequestsPerSecond != 0 {
		cfg.RateLimit.RequestsPerSecond = fc.RateLimit.RequestsPerSecond
	}
	if fc.RateLimit.Burst != 0 {
		cfg.RateLimit.Burst = fc.RateLimit.Burst
	}
	if fc.RateLimit.Enabled != nil {
		cfg.RateLimit.Enabled = *fc.RateLimit.Enabled
	}
	if fc.RateLimit.GlobalRPS != 0 {
		cfg.RateLimit.GlobalRequestsPerSecond = fc.RateLimit.GlobalRPS
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
