// Package testutil provides shared helpers for tests.
// Backend is an in-memory stand-in for the trips REST backend so client,
// store and handler tests can exercise real HTTP round trips.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripview/internal/domain"
)

// Backend is a fake trips backend speaking the same wire contract as the
// real one: GET and POST /api/trips, camelCase JSON, YYYY-MM-DD dates,
// Spring-style {"message": "..."} error bodies.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	trips    []domain.Trip
	listHits int
	postHits int
	failList int // status to answer GET with; 0 means succeed
	keys     map[string]domain.Trip
}

// NewBackend starts a Backend seeded with trips. It is closed automatically
// when the test finishes.
func NewBackend(t *testing.T, trips ...domain.Trip) *Backend {
	t.Helper()

	b := &Backend{
		trips: append([]domain.Trip(nil), trips...),
		keys:  make(map[string]domain.Trip),
	}

	r := chi.NewRouter()
	r.Get("/api/trips", b.list)
	r.Post("/api/trips", b.create)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// FailList makes subsequent GET /api/trips answer with status and no body.
// Pass 0 to go back to succeeding.
func (b *Backend) FailList(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failList = status
}

// Trips returns the trips the backend holds, in creation order.
func (b *Backend) Trips() []domain.Trip {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Trip(nil), b.trips...)
}

// Hits returns how many list and create requests have been served.
func (b *Backend) Hits() (list, create int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listHits, b.postHits
}

func (b *Backend) list(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	b.listHits++
	status := b.failList
	trips := append([]domain.Trip{}, b.trips...)
	b.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// create mirrors the backend's own checks: required fields and
// startDate <= endDate, rejected with 400.
func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.postHits++
	b.mu.Unlock()

	var d domain.TripDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "message": "malformed request body"})
		return
	}
	start, errStart := domain.ParseDate(d.StartDate)
	end, errEnd := domain.ParseDate(d.EndDate)
	switch {
	case strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.TripTimezone) == "" || errStart != nil || errEnd != nil:
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "message": "name, startDate, endDate and tripTimezone are required"})
		return
	case start.After(end):
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "message": "startDate must be <= endDate"})
		return
	}

	key := r.Header.Get("Idempotency-Key")

	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.keys[key]; ok && key != "" {
		writeJSON(w, http.StatusCreated, prev)
		return
	}
	trip := domain.Trip{
		ID:           uuid.NewString(),
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		TripTimezone: d.TripTimezone,
	}
	b.trips = append(b.trips, trip)
	if key != "" {
		b.keys[key] = trip
	}
	w.Header().Set("Location", "/api/trips/"+trip.ID)
	writeJSON(w, http.StatusCreated, trip)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
