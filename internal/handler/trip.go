package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pkordes/tripview/internal/domain"
)

// validationResponse is the POST /api/trips/validate body.
type validationResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// GetState handles GET /api/state.
// Returns the current snapshot: load status, sorted trips, saving flag and
// the last submit error.
func (s *Server) GetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.trips.Snapshot())
}

// LoadTrips handles POST /api/trips/load.
// Always answers with the resulting snapshot; 502 when the backend failed.
// The load is not tied to the request: a client disconnect does not cancel it.
func (s *Server) LoadTrips(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())

	status := http.StatusOK
	if err := s.trips.Load(ctx); err != nil {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, s.trips.Snapshot())
}

// ValidateTrip handles POST /api/trips/validate.
// Lets the view decide whether to enable submission without touching state.
func (s *Server) ValidateTrip(w http.ResponseWriter, r *http.Request) {
	var draft domain.TripDraft
	if !decodeBody(w, r, &draft) {
		return
	}

	if err := s.trips.Validate(draft); err != nil {
		writeJSON(w, http.StatusOK, validationResponse{Valid: false, Reason: domain.MessageOf(err)})
		return
	}
	writeJSON(w, http.StatusOK, validationResponse{Valid: true})
}

// CreateTrip handles POST /api/trips.
// Returns 201 with the created trip. 409 while another create is in flight,
// 422 for local or backend validation failures, 502 for backend failures.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var draft domain.TripDraft
	if !decodeBody(w, r, &draft) {
		return
	}

	trip, err := s.trips.Create(context.WithoutCancel(r.Context()), draft)
	if err != nil {
		slog.DebugContext(r.Context(), "create trip rejected", "error", err)
		writeDomainError(w, err, "Failed to create trip")
		return
	}

	writeJSON(w, http.StatusCreated, trip)
}
