// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the trip view service.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// TripsAPIURL is the base URL of the trips REST backend
	// (e.g. "http://localhost:8081"). Required.
	TripsAPIURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RequestTimeout bounds each round trip to the trips backend.
	// Defaults to 10s. Set REQUEST_TIMEOUT to a Go duration ("5s", "1m").
	RequestTimeout time.Duration

	// MaxBodyBytes caps incoming request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SubmitRatePerMin limits create-trip requests per minute. Defaults to 30.
	SubmitRatePerMin int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var problems []string

	cfg.TripsAPIURL = strings.TrimSpace(os.Getenv("TRIPS_API_URL"))
	if cfg.TripsAPIURL == "" {
		problems = append(problems, "required environment variables not set: TRIPS_API_URL")
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be a positive duration")
	}
	cfg.RequestTimeout = timeout

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	rate, err := strconv.Atoi(getEnv("SUBMIT_RATE_PER_MIN", "30"))
	if err != nil || rate <= 0 {
		problems = append(problems, "SUBMIT_RATE_PER_MIN must be a positive integer")
	}
	cfg.SubmitRatePerMin = rate

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
