package config_test

import (
	"testing"
	"time"

	"github.com/pkordes/tripview/internal/config"
	"github.com/stretchr/testify/require"
)

// clearOptional blanks every optional variable so defaults apply.
func clearOptional(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "LOG_LEVEL", "CORS_ORIGINS", "REQUEST_TIMEOUT", "MAX_BODY_BYTES", "SUBMIT_RATE_PER_MIN"} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required TRIPS_API_URL is provided.
func TestLoad_defaults(t *testing.T) {
	clearOptional(t)
	t.Setenv("TRIPS_API_URL", "http://localhost:8081")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "http://localhost:8081", cfg.TripsAPIURL)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.Equal(t, 30, cfg.SubmitRatePerMin)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("TRIPS_API_URL", "https://trips.example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("REQUEST_TIMEOUT", "2500ms")
	t.Setenv("MAX_BODY_BYTES", "4096")
	t.Setenv("SUBMIT_RATE_PER_MIN", "5")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "https://trips.example.com", cfg.TripsAPIURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
	require.Equal(t, 5, cfg.SubmitRatePerMin)
}

// TestLoad_missingRequired verifies that an error is returned when TRIPS_API_URL
// is not set, and that the error message names the missing variable.
func TestLoad_missingRequired(t *testing.T) {
	clearOptional(t)
	t.Setenv("TRIPS_API_URL", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "TRIPS_API_URL")
}

// TestLoad_malformedValues verifies that every unparseable value is reported at once.
func TestLoad_malformedValues(t *testing.T) {
	clearOptional(t)
	t.Setenv("TRIPS_API_URL", "http://localhost:8081")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("MAX_BODY_BYTES", "-1")
	t.Setenv("SUBMIT_RATE_PER_MIN", "lots")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "REQUEST_TIMEOUT")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
	require.ErrorContains(t, err, "SUBMIT_RATE_PER_MIN")
}
