// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// APIBaseURL is the ServiFlex backend base URL (e.g. http://localhost:56387/).
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	// HTTPTimeout is the per-request budget (e.g. "30s"). Requests resolve to a timeout error after it.
	HTTPTimeout string `mapstructure:"HTTP_TIMEOUT"`
	// DataDir is the directory holding the local preferences database and device key.
	DataDir string `mapstructure:"DATA_DIR"`
	// AppVersion is reported in the X-App-Version request header.
	AppVersion string `mapstructure:"APP_VERSION"`
	// AppPlatform is reported in the X-Platform request header.
	AppPlatform string `mapstructure:"APP_PLATFORM"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored. Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "http://localhost:56387/")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("DATA_DIR", ".serviflex")
	v.SetDefault("APP_VERSION", "1.0")
	v.SetDefault("APP_PLATFORM", "terminal")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("config: API_BASE_URL must be set")
	}
	if !strings.HasSuffix(cfg.APIBaseURL, "/") {
		cfg.APIBaseURL += "/"
	}
	if cfg.DataDir == "" {
		return nil, errors.New("config: DATA_DIR must be set")
	}

	return &cfg, nil
}

// Timeout parses HTTPTimeout as a time.Duration. Returns 30s if unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
