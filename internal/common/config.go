package common

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Validation ValidationConfig
	Output     OutputConfig
	LogLevel   string
}

// ValidationConfig holds the business-rule thresholds used by the validator.
type ValidationConfig struct {
	ToleranceKg     decimal.Decimal
	MinWeightKg     decimal.Decimal
	MaxWeightKg     decimal.Decimal
	MaxRecordAge    time.Duration
	MinVehicleRunes int
	MaxVehicleRunes int
}

// OutputConfig holds output-related configuration
type OutputConfig struct {
	Dir        string
	JSONIndent int
}

// DefaultValidationConfig returns the standard business-rule thresholds.
// Callers tweaking individual thresholds should start from this (or from
// LoadConfig) so the remaining fields stay meaningful; the validator takes
// its config verbatim.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		ToleranceKg:     decimal.NewFromFloat(1.0),
		MinWeightKg:     decimal.NewFromInt(1),
		MaxWeightKg:     decimal.NewFromInt(100000),
		MaxRecordAge:    10 * 365 * 24 * time.Hour,
		MinVehicleRunes: 2,
		MaxVehicleRunes: 20,
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	defaults := DefaultValidationConfig()
	return &Config{
		Validation: ValidationConfig{
			ToleranceKg:     getEnvAsDecimal("WEIGHT_TOLERANCE_KG", defaults.ToleranceKg),
			MinWeightKg:     getEnvAsDecimal("MIN_REASONABLE_WEIGHT_KG", defaults.MinWeightKg),
			MaxWeightKg:     getEnvAsDecimal("MAX_REASONABLE_WEIGHT_KG", defaults.MaxWeightKg),
			MaxRecordAge:    getEnvAsDuration("MAX_RECORD_AGE", defaults.MaxRecordAge),
			MinVehicleRunes: getEnvAsInt("MIN_VEHICLE_NUMBER_LEN", defaults.MinVehicleRunes),
			MaxVehicleRunes: getEnvAsInt("MAX_VEHICLE_NUMBER_LEN", defaults.MaxVehicleRunes),
		},
		Output: OutputConfig{
			Dir:        getEnv("OUTPUT_DIR", "output"),
			JSONIndent: getEnvAsInt("JSON_INDENT", 2),
		},
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Validation.ToleranceKg.IsNegative() {
		return NewAppError("CONFIG_ERROR", "WEIGHT_TOLERANCE_KG must be non-negative", ErrInvalidInput)
	}
	if c.Validation.MinWeightKg.GreaterThan(c.Validation.MaxWeightKg) {
		return NewAppError("CONFIG_ERROR", "MIN_REASONABLE_WEIGHT_KG exceeds MAX_REASONABLE_WEIGHT_KG", ErrInvalidInput)
	}
	return nil
}
