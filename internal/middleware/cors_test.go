package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripview/internal/middleware"
)

// trivialHandler is a minimal http.Handler that always returns 200.
var trivialHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

const viteOrigin = "http://localhost:5173"

// TestCORSHandler_GET_AllowedOrigin verifies that a state read from an allowed
// origin receives the Access-Control-Allow-Origin header.
func TestCORSHandler_GET_AllowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{viteOrigin})(trivialHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", viteOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, viteOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORSHandler_OPTIONS_PreflightPOST verifies that the preflight for a JSON
// create-trip POST is answered with the CORS headers the browser needs.
func TestCORSHandler_OPTIONS_PreflightPOST(t *testing.T) {
	h := middleware.NewCORSHandler([]string{viteOrigin})(trivialHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/trips", nil)
	req.Header.Set("Origin", viteOrigin)
	req.Header.Set("Access-Control-Request-Method", "POST")
	// Browsers send Access-Control-Request-Headers in lowercase; rs/cors
	// compares against its lowercased allow list verbatim.
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, rec.Code == http.StatusNoContent || rec.Code == http.StatusOK,
		"expected 2xx for OPTIONS preflight, got %d", rec.Code)
	assert.Equal(t, viteOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
}

// TestCORSHandler_OPTIONS_PreflightUnknownHeader_Refused verifies that only
// Content-Type is granted; the event stream does not resume from an event ID.
func TestCORSHandler_OPTIONS_PreflightUnknownHeader_Refused(t *testing.T) {
	h := middleware.NewCORSHandler([]string{viteOrigin})(trivialHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", viteOrigin)
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "last-event-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORSHandler_OPTIONS_PreflightDELETE_Refused verifies that methods the
// view API does not offer are not granted in preflight.
func TestCORSHandler_OPTIONS_PreflightDELETE_Refused(t *testing.T) {
	h := middleware.NewCORSHandler([]string{viteOrigin})(trivialHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/trips", nil)
	req.Header.Set("Origin", viteOrigin)
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

// TestCORSHandler_GET_DisallowedOrigin verifies that a request from an origin
// not on the list gets no Access-Control-Allow-Origin header. The browser then
// hides the response from the page even though it may be 200.
func TestCORSHandler_GET_DisallowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{viteOrigin})(trivialHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
