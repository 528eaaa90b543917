// Package handler implements the view-model HTTP API of the trip view service.
// All handlers are methods on Server. Methods are split into files by concern
// (health.go, trip.go, events.go) but share the same Server struct.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripview/internal/domain"
	"github.com/pkordes/tripview/internal/store"
	"github.com/pkordes/tripview/spec"
)

// TripStorer is the part of store.TripStore the handlers depend on.
// Defining it here, in the consumer package, lets handler tests inject a
// fake without a trips backend.
type TripStorer interface {
	Load(ctx context.Context) error
	Validate(draft domain.TripDraft) error
	Create(ctx context.Context, draft domain.TripDraft) (domain.Trip, error)
	Snapshot() store.Snapshot
	Subscribe() (<-chan store.Snapshot, func())
}

// Server serves TripStore snapshots and accepts view commands.
type Server struct {
	trips TripStorer
}

// NewServer constructs the Server with its dependencies.
func NewServer(trips TripStorer) *Server {
	return &Server{trips: trips}
}

// Routes returns the router for every endpoint the service exposes.
// createMW wraps POST /api/trips only (e.g. a rate limiter).
func (s *Server) Routes(createMW ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.GetState)
		r.Get("/events", s.StreamEvents)
		r.Post("/trips/load", s.LoadTrips)
		r.Post("/trips/validate", s.ValidateTrip)
		r.With(createMW...).Post("/trips", s.CreateTrip)
	})

	return r
}

// serveOpenAPI handles GET /openapi.yaml.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
