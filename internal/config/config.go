package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Host string
	Port int

	// Database configuration
	DatabasePath string

	// User configuration
	UserID string

	// Cloud persistence configuration
	CloudEnabled bool
	CloudBaseURL string
	CloudAPIKey  string

	// Intervals API configuration
	IntervalsAPIKey    string
	IntervalsAthleteID string

	// Internal API configuration
	InternalAPIKey string

	// Metrics configuration
	MetricsEnabled bool
	MetricsHost    string
	MetricsPort    int

	// Logging configuration
	LogLevel string
}

// Load reads configuration from environment variables
// It fails fast if required variables are missing
func Load() (*Config, error) {
	cfg := &Config{
		// Optional values with defaults
		Host:           getEnv("HOST", "localhost"),
		Port:           getEnvInt("PORT", 4201),
		DatabasePath:   getEnv("DATABASE_PATH", "./data.db"),
		UserID:         getEnv("USER_ID", "default"),
		CloudEnabled:   getEnvBool("CLOUD_ENABLED", false),
		CloudBaseURL:   getEnv("CLOUD_BASE_URL", ""),
		CloudAPIKey:    getEnv("CLOUD_API_KEY", ""),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		MetricsHost:    getEnv("METRICS_HOST", "localhost"),
		MetricsPort:    getEnvInt("METRICS_PORT", 4202),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	// Required values
	var missingVars []string

	cfg.IntervalsAPIKey = os.Getenv("INTERVALS_API_KEY")
	if cfg.IntervalsAPIKey == "" {
		missingVars = append(missingVars, "INTERVALS_API_KEY")
	}

	cfg.IntervalsAthleteID = os.Getenv("INTERVALS_ATHLETE_ID")
	if cfg.IntervalsAthleteID == "" {
		missingVars = append(missingVars, "INTERVALS_ATHLETE_ID")
	}

	cfg.InternalAPIKey = os.Getenv("INTERNAL_API_KEY")
	if cfg.InternalAPIKey == "" {
		missingVars = append(missingVars, "INTERNAL_API_KEY")
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	if cfg.CloudEnabled && cfg.CloudBaseURL == "" {
		return nil, fmt.Errorf("CLOUD_BASE_URL is required when CLOUD_ENABLED is set")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
