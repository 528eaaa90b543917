// Package store holds the trip collection state manager: the single source of
// truth for the trips known to the view, their load status, and the state of
// the create-trip flow.
//
// The view reads Snapshot (or subscribes to changes) and issues commands via
// Load and Create. It never mutates state directly.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/tripview/internal/domain"
)

const (
	loadFailedMessage   = "Failed to load trips"
	createFailedMessage = "Failed to create trip"
)

// TripClient is the transport the store depends on. Defining it here, in the
// consumer package, lets tests inject a fake without a network.
type TripClient interface {
	FetchTrips(ctx context.Context) ([]domain.Trip, error)
	SubmitTrip(ctx context.Context, draft domain.TripDraft) (domain.Trip, error)
}

// Recorder receives operation outcomes for metrics. Outcome is "ok" or the
// error kind name.
type Recorder interface {
	RecordLoad(outcome string, duration time.Duration)
	RecordCreate(outcome string, duration time.Duration)
	RecordTripCount(n int)
}

type nopRecorder struct{}

func (nopRecorder) RecordLoad(string, time.Duration)   {}
func (nopRecorder) RecordCreate(string, time.Duration) {}
func (nopRecorder) RecordTripCount(int)                {}

// TripStore owns the trip collection and its status flags.
// All methods are safe for concurrent use. The mutex is never held across a
// network call.
type TripStore struct {
	client TripClient
	log    *slog.Logger
	rec    Recorder

	mu          sync.Mutex
	trips       []domain.Trip // insertion order, newest first, unique IDs
	status      LoadStatus
	loadError   string
	saving      bool
	submitError string
	loadGen     uint64
	version     uint64
	subs        map[*subscriber]struct{}
}

// Option customises a TripStore.
type Option func(*TripStore)

// WithLogger sets the store's logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *TripStore) { s.log = log }
}

// WithRecorder sets the metrics recorder. Defaults to a no-op.
func WithRecorder(rec Recorder) Option {
	return func(s *TripStore) { s.rec = rec }
}

// New constructs an empty, Idle TripStore backed by client.
func New(client TripClient, opts ...Option) *TripStore {
	s := &TripStore{
		client: client,
		log:    slog.Default(),
		rec:    nopRecorder{},
		trips:  []domain.Trip{},
		status: StatusIdle,
		subs:   make(map[*subscriber]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the full trip set and replaces the collection with it.
//
// Status moves to Loading immediately. On success the collection is replaced
// (not merged) and status becomes Ready. On failure status becomes Error and
// the collection keeps its prior contents. If another Load was started while
// this one was in flight, this response is discarded and nil is returned.
//
// The returned error is informational: state already reflects it.
func (s *TripStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.status = StatusLoading
	s.loadError = ""
	s.changedLocked()
	s.mu.Unlock()

	start := time.Now()
	trips, err := s.client.FetchTrips(ctx)
	elapsed := time.Since(start)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.loadGen {
		s.log.DebugContext(ctx, "discarding stale load response", "generation", gen, "current", s.loadGen)
		s.rec.RecordLoad("stale", elapsed)
		return nil
	}

	if err != nil {
		s.status = StatusError
		s.loadError = messageOr(err, loadFailedMessage)
		s.changedLocked()
		s.log.WarnContext(ctx, "load trips failed", "error", err, "kept_trips", len(s.trips))
		s.rec.RecordLoad(outcome(err), elapsed)
		return err
	}

	s.trips = dedupe(trips)
	s.status = StatusReady
	s.changedLocked()
	s.log.InfoContext(ctx, "trips loaded", "count", len(s.trips), "duration_ms", elapsed.Milliseconds())
	s.rec.RecordLoad("ok", elapsed)
	s.rec.RecordTripCount(len(s.trips))
	return nil
}

// Validate reports whether draft may be submitted. It has no side effects.
func (s *TripStore) Validate(draft domain.TripDraft) error {
	return domain.ValidateDraft(draft)
}

// Create validates draft, submits it, and prepends the created trip.
//
// While another Create is in flight it returns domain.ErrAlreadyInProgress
// without touching state or the network. An invalid draft returns an error
// wrapping domain.ErrInvalidInput, records the reason as the submit error,
// and never reaches the network. A backend failure leaves the collection
// unchanged and records the failure as the submit error.
func (s *TripStore) Create(ctx context.Context, draft domain.TripDraft) (domain.Trip, error) {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		s.rec.RecordCreate(outcome(domain.ErrAlreadyInProgress), 0)
		return domain.Trip{}, domain.NewError(domain.ErrAlreadyInProgress, "a trip is already being created")
	}
	if err := domain.ValidateDraft(draft); err != nil {
		s.submitError = messageOr(err, createFailedMessage)
		s.changedLocked()
		s.mu.Unlock()
		s.rec.RecordCreate(outcome(err), 0)
		return domain.Trip{}, err
	}
	s.saving = true
	s.submitError = ""
	s.changedLocked()
	s.mu.Unlock()

	start := time.Now()
	trip, err := s.client.SubmitTrip(ctx, draft)
	elapsed := time.Since(start)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		s.submitError = messageOr(err, createFailedMessage)
		s.changedLocked()
		s.log.WarnContext(ctx, "create trip failed", "error", err)
		s.rec.RecordCreate(outcome(err), elapsed)
		return domain.Trip{}, err
	}

	s.trips = prepend(s.trips, trip)
	s.changedLocked()
	s.log.InfoContext(ctx, "trip created", "trip_id", trip.ID, "duration_ms", elapsed.Milliseconds())
	s.rec.RecordCreate("ok", elapsed)
	s.rec.RecordTripCount(len(s.trips))
	return trip, nil
}

// SortedTrips returns the collection ordered by start date, newest first.
// It is computed from the collection on every call.
func (s *TripStore) SortedTrips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByStartDesc(s.trips)
}

// Snapshot returns a read-only copy of the current state.
func (s *TripStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *TripStore) snapshotLocked() Snapshot {
	return Snapshot{
		Version:     s.version,
		Status:      s.status,
		LoadError:   s.loadError,
		Trips:       sortByStartDesc(s.trips),
		Saving:      s.saving,
		SubmitError: s.submitError,
	}
}

// dedupe copies trips, keeping the first occurrence of each ID.
func dedupe(trips []domain.Trip) []domain.Trip {
	out := make([]domain.Trip, 0, len(trips))
	seen := make(map[string]struct{}, len(trips))
	for _, t := range trips {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// prepend returns a new slice with trip first, dropping any older entry with
// the same ID.
func prepend(trips []domain.Trip, trip domain.Trip) []domain.Trip {
	out := make([]domain.Trip, 0, len(trips)+1)
	out = append(out, trip)
	for _, t := range trips {
		if t.ID != trip.ID {
			out = append(out, t)
		}
	}
	return out
}

// messageOr returns err's message, or fallback when it carries none.
func messageOr(err error, fallback string) string {
	if msg := domain.MessageOf(err); msg != "" {
		return msg
	}
	return fallback
}

// outcome names err's kind for metrics labels.
func outcome(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrNetwork:
		return "network"
	case domain.ErrServer:
		return "server_error"
	case domain.ErrValidationRejected:
		return "validation_rejected"
	case domain.ErrInvalidInput:
		return "invalid_input"
	case domain.ErrAlreadyInProgress:
		return "already_in_progress"
	default:
		return "unknown"
	}
}
