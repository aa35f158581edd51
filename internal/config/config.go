package config

import (
	"net/url"
	"slices"
	"time"

	"github.com/go-faster/errors"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the web client.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	AppAddr         string        `envconfig:"APP_ADDR" default:":3000"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"10s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppIdleTimeout  time.Duration `envconfig:"APP_IDLE_TIMEOUT" default:"120s"`

	// APIBaseURL is the root of the employee service, e.g. http://host:8080/api.
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`

	// RedirectDelay is how long the add-employee success page waits before
	// returning to the list.
	RedirectDelay time.Duration `envconfig:"REDIRECT_DELAY" default:"1500ms"`

	// RateLimitPerMinute caps mutating requests per client IP. Zero disables it.
	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return errors.Wrap(err, "API_BASE_URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}

	for name, d := range map[string]time.Duration{
		"API_TIMEOUT":       c.APITimeout,
		"APP_READ_TIMEOUT":  c.AppReadTimeout,
		"APP_WRITE_TIMEOUT": c.AppWriteTimeout,
		"APP_IDLE_TIMEOUT":  c.AppIdleTimeout,
	} {
		if d <= 0 {
			return errors.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.RedirectDelay < 0 {
		return errors.Errorf("REDIRECT_DELAY must not be negative, got %s", c.RedirectDelay)
	}
	if c.RateLimitPerMinute < 0 {
		return errors.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimitPerMinute)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return errors.Errorf("LOG_LEVEL must be one of %v, got %q", logLevels, c.LogLevel)
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return errors.Errorf("LOG_FORMAT must be one of %v, got %q", logFormats, c.LogFormat)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
