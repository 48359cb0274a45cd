// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/tripledger/pkg/logging"
)

type Config struct {
	// HTTP server
	Port            string
	ShutdownTimeout time.Duration

	// Database
	DBPath string

	// Auth. An empty secret disables bearer token checks.
	AuthSecret   string
	AuthTokenTTL time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Observability
	MetricsEnabled   bool
	OTelEnabled      bool
	OTelEndpoint     string
	OTelSamplerRatio float64
	ServiceName      string
}

// Load reads the configuration from environment variables, falling back to
// defaults. Call godotenv.Load first to pick up a local .env file.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBPath: getEnv("DB_PATH", "./data/tripledger.db"),

		AuthSecret:   getEnv("AUTH_SECRET", ""),
		AuthTokenTTL: getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", string(logging.FormatText)),

		MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		OTelEnabled:      getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelSamplerRatio: getEnvFloat("OTEL_SAMPLER_RATIO", 0.1),
		ServiceName:      getEnv("SERVICE_NAME", "tripledger"),
	}
}

// AuthEnabled reports whether RPCs require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.AuthEnabled() && len(c.AuthSecret) < 32 {
		errors = append(errors, "AUTH_SECRET must be at least 32 characters")
	}
	if c.AuthTokenTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid token TTL %v: must be positive", c.AuthTokenTTL))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	switch logging.Format(strings.ToLower(c.LogFormat)) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if c.OTelSamplerRatio < 0 || c.OTelSamplerRatio > 1 {
		errors = append(errors, fmt.Sprintf("invalid sampler ratio %v: must be between 0 and 1", c.OTelSamplerRatio))
	}
	if c.OTelEnabled && c.ServiceName == "" {
		errors = append(errors, "service name is required when tracing is enabled")
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
