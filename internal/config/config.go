package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"clockodo-mcp/internal/adapter/clockodo"
	"clockodo-mcp/internal/domain"
)

// Config holds environment-driven configuration.
type Config struct {
	Clockodo struct {
		Email       string
		APIKey      string
		BaseURL     string // default: https://my.clockodo.com/api/v2
		Application string // X-Clockodo-External-Application header value
		Timeout     time.Duration
	}
}

// fileConfig is the optional TOML overrides file. Credentials are
// deliberately not accepted here; secrets stay in the environment.
type fileConfig struct {
	BaseURL     string `toml:"base_url"`
	Application string `toml:"application"`
	Timeout     string `toml:"timeout"`
}

// Load reads configuration from the environment, after loading a .env file
// when one exists. An optional TOML file at path supplies defaults for the
// non-secret settings; environment variables win over the file.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if path == "" {
		path = os.Getenv("CLOCKODO_CONFIG")
	}
	if path != "" {
		fc, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		cfg.Clockodo.BaseURL = fc.BaseURL
		cfg.Clockodo.Application = fc.Application
		if fc.Timeout != "" {
			d, err := time.ParseDuration(fc.Timeout)
			if err != nil {
				return cfg, domain.NewConfigError(fmt.Sprintf("invalid timeout %q in %s", fc.Timeout, path))
			}
			cfg.Clockodo.Timeout = d
		}
	}

	cfg.Clockodo.Email = os.Getenv("CLOCKODO_EMAIL")
	cfg.Clockodo.APIKey = os.Getenv("CLOCKODO_API_KEY")
	if cfg.Clockodo.Email == "" {
		return cfg, domain.NewConfigError("CLOCKODO_EMAIL is required")
	}
	if cfg.Clockodo.APIKey == "" {
		return cfg, domain.NewConfigError("CLOCKODO_API_KEY is required")
	}

	if v := os.Getenv("CLOCKODO_BASE_URL"); v != "" {
		cfg.Clockodo.BaseURL = v
	}
	if cfg.Clockodo.BaseURL == "" {
		cfg.Clockodo.BaseURL = clockodo.DefaultBaseURL
	}
	if v := os.Getenv("CLOCKODO_APPLICATION"); v != "" {
		cfg.Clockodo.Application = v
	}
	if v := os.Getenv("CLOCKODO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, domain.NewConfigError("CLOCKODO_TIMEOUT must be a duration like 30s")
		}
		cfg.Clockodo.Timeout = d
	}
	if cfg.Clockodo.Timeout == 0 {
		cfg.Clockodo.Timeout = 30 * time.Second
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, domain.NewConfigError(fmt.Sprintf("read config file: %v", err))
	}
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return fc, domain.NewConfigError(fmt.Sprintf("parse config file %s: %v", path, err))
	}
	return fc, nil
}
