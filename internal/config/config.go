package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"eantienda/domain/codes"
	"eantienda/domain/ean"
	"eantienda/domain/layout"
	"eantienda/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	EAN       EANConfig
	Codes     CodesConfig
	Labels    LabelsConfig
	Uploads   UploadConfig
	Session   SessionConfig
	Layouts   layout.Presets
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EANConfig holds the identifier range owned by the shop
type EANConfig struct {
	Prefix string
}

// CodesConfig holds unique code generation settings
type CodesConfig struct {
	Length      int
	MaxAttempts int
	MaxPerBatch int
}

// LabelsConfig holds label printing limits
type LabelsConfig struct {
	MaxSelection int
	LayoutFile   string
}

// UploadConfig holds upload limits
type UploadConfig struct {
	MaxBytes int64
}

// SessionConfig holds per-browser workspace settings
type SessionConfig struct {
	TTL time.Duration
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		EAN: EANConfig{
			Prefix: getEnvOrDefault("EAN_PREFIX", ean.DefaultPrefix),
		},
		Codes: CodesConfig{
			Length:      getEnvIntOrDefault("CODE_LENGTH", codes.DefaultLength),
			MaxAttempts: getEnvIntOrDefault("CODE_MAX_ATTEMPTS", codes.DefaultMaxAttempts),
			MaxPerBatch: getEnvIntOrDefault("MAX_CODES_PER_BATCH", 1000),
		},
		Labels: LabelsConfig{
			MaxSelection: getEnvIntOrDefault("MAX_LABEL_SELECTION", 10),
			LayoutFile:   getEnvOrDefault("LAYOUT_FILE", ""),
		},
		Uploads: UploadConfig{
			MaxBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 10)) << 20,
		},
		Session: SessionConfig{
			TTL: getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
	}

	layouts, err := LoadLayouts(config.Labels.LayoutFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load layout presets")
	}
	config.Layouts = layouts

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if err := ean.ValidatePrefix(config.EAN.Prefix); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("EAN_PREFIX: %v", err))
	}
	if config.Codes.Length < 2 {
		return errors.ConfigInvalid("CODE_LENGTH must be at least 2")
	}
	if config.Codes.MaxAttempts <= 0 {
		return errors.ConfigInvalid("CODE_MAX_ATTEMPTS must be positive")
	}
	if config.Codes.MaxPerBatch <= 0 {
		return errors.ConfigInvalid("MAX_CODES_PER_BATCH must be positive")
	}
	if config.Labels.MaxSelection <= 0 {
		return errors.ConfigInvalid("MAX_LABEL_SELECTION must be positive")
	}
	if config.Uploads.MaxBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
