// Package config provides configuration management for the application.
package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"github.com/EthM370/test-api-lambdas/internal/models"
)

// PrimaryCorsOrigin is always allowed, whatever ValidCorsOrigins says.
const PrimaryCorsOrigin = "https://acm.illinois.edu"

// Run environments.
const (
	RunEnvironmentDev  = "dev"
	RunEnvironmentProd = "prod"
)

// secretCorsOriginsKey is the key read from the optional config secret.
const secretCorsOriginsKey = "ValidCorsOrigins"

// Config holds all configuration values for the application.
type Config struct {
	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	// CORS
	ValidCorsOrigins []string `env:"ValidCorsOrigins" envDefault:"https://acm.illinois.edu" envSeparator:","`

	// Application
	RunEnvironment   string `env:"RunEnvironment" envDefault:"prod"`
	ConfigSecretName string `env:"CONFIG_SECRET_NAME"`

	// AWS
	AWSRegion string `env:"AWS_REGION" envDefault:"us-east-1"`

	// Local development server
	Port int `env:"PORT" envDefault:"3000"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	cfg.RunEnvironment = strings.ToLower(strings.TrimSpace(cfg.RunEnvironment))
	if cfg.RunEnvironment != RunEnvironmentDev && cfg.RunEnvironment != RunEnvironmentProd {
		return nil, errors.Wrapf(models.ErrInvalidRunEnvironment, "got %q", cfg.RunEnvironment)
	}

	return cfg, nil
}

// CorsOrigins returns the primary origin followed by every additional valid origin,
// trimmed and without duplicates.
func (c *Config) CorsOrigins() []string {
	origins := append([]string{PrimaryCorsOrigin}, c.ValidCorsOrigins...)
	origins = lo.Map(origins, func(o string, _ int) string { return strings.TrimSpace(o) })
	return lo.Uniq(lo.Compact(origins))
}

// AddCorsOrigins appends a comma-separated list of origins.
func (c *Config) AddCorsOrigins(raw string) {
	c.ValidCorsOrigins = append(c.ValidCorsOrigins, strings.Split(raw, ",")...)
}

// ApplySecret merges values read from the config secret. Unknown keys are ignored.
func (c *Config) ApplySecret(values map[string]any) {
	if raw, ok := values[secretCorsOriginsKey].(string); ok {
		c.AddCorsOrigins(raw)
	}
}
