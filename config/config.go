package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the web front-end.
type Config struct {
	APIBaseURL string        `envconfig:"API_BASE_URL" required:"true"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	ServerPort int           `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`

	CookieSecure       bool          `envconfig:"COOKIE_SECURE" default:"false"`
	CookieDomain       string        `envconfig:"COOKIE_DOMAIN"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	RedirectDelay      time.Duration `envconfig:"REDIRECT_DELAY" default:"2s"`

	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`
	PublicCacheTTL time.Duration `envconfig:"PUBLIC_CACHE_TTL" default:"15s"`

	R2AccountID       string `envconfig:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `envconfig:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `envconfig:"R2_BUCKET_NAME"`
	R2PublicBaseURL   string `envconfig:"R2_PUBLIC_BASE_URL"`
}

// Load reads the configuration from the environment.
// A .env file is loaded first when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

// StorageEnabled reports whether every R2 setting is present.
func (c *Config) StorageEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}
