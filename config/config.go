// config/config.go - process configuration read from the environment
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

const (
	DefaultPort            = "4000"
	DefaultAppEnv          = "development"
	DefaultLogLevel        = "info"
	DefaultProviderTimeout = 30 * time.Second

	// ServiceRoleName is the role claim Supabase puts in admin-capable keys.
	ServiceRoleName = "service_role"
)

var (
	ErrMissingSupabaseURL    = errors.New("SUPABASE_URL environment variable is required")
	ErrMissingServiceRoleKey = errors.New("SERVICE_ROLE_KEY environment variable is required")
	ErrInvalidSupabaseURL    = errors.New("SUPABASE_URL must be an absolute http(s) URL")
)

// Config holds everything the service needs at startup. It is built once
// and handed to the components that depend on it.
type Config struct {
	Port            string
	AppEnv          string
	LogLevel        string
	SupabaseURL     string
	ServiceRoleKey  string
	ProviderTimeout time.Duration
}

// LoadEnvFile loads variables from .env (or the given files) into the
// process environment. Existing variables are not overridden.
func LoadEnvFile(files ...string) error {
	return godotenv.Load(files...)
}

// FromEnv builds a Config from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", DefaultPort),
		AppEnv:          getEnv("APP_ENV", DefaultAppEnv),
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		SupabaseURL:     strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		ServiceRoleKey:  strings.TrimSpace(os.Getenv("SERVICE_ROLE_KEY")),
		ProviderTimeout: DefaultProviderTimeout,
	}

	if raw := os.Getenv("PROVIDER_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT %q", raw)
		}
		cfg.ProviderTimeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the provider secrets are present and usable.
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return ErrMissingSupabaseURL
	}
	if c.ServiceRoleKey == "" {
		return ErrMissingServiceRoleKey
	}

	u, err := url.Parse(c.SupabaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidSupabaseURL
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ServiceRole returns the role claim of the service key. The signature is
// not verified: only the provider can do that.
func (c *Config) ServiceRole() (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.ServiceRoleKey, claims); err != nil {
		return "", fmt.Errorf("parse service role key: %w", err)
	}

	role, _ := claims["role"].(string)
	return role, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
