// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/avelez/globetrotter/backend/internal/domain"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AutoMigrate runs pending database migrations at startup when true.
	// Defaults to false; set AUTO_MIGRATE=true to enable.
	AutoMigrate bool

	// StayPerDay is the baseline accommodation cost per itinerary day,
	// in whole currency units. Defaults to 100.
	StayPerDay int

	// MealsPerDay is the baseline food cost per itinerary day. Defaults to 45.
	MealsPerDay int

	// TransportSurcharge is the one-time transport cost applied to the
	// first day of a trip. Defaults to 800.
	TransportSurcharge int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first numeric variable that fails to parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
	}

	var err error
	if cfg.StayPerDay, err = getEnvInt("STAY_PER_DAY", 100); err != nil {
		return Config{}, err
	}
	if cfg.MealsPerDay, err = getEnvInt("MEALS_PER_DAY", 45); err != nil {
		return Config{}, err
	}
	if cfg.TransportSurcharge, err = getEnvInt("TRANSPORT_SURCHARGE", 800); err != nil {
		return Config{}, err
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// CostModel returns the configured baseline costs in the form the itinerary
// engine consumes.
func (c Config) CostModel() domain.CostModel {
	return domain.CostModel{
		StayPerDay:         c.StayPerDay,
		MealsPerDay:        c.MealsPerDay,
		TransportSurcharge: c.TransportSurcharge,
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt parses the environment variable named by key as an int,
// returning fallback when it is unset or empty.
func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
