package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/pkordes/tripview/internal/domain"
)

// LoadStatus is the state of the initial trip fetch:
// Idle -> Loading -> Ready | Error. Any new Load re-enters Loading.
type LoadStatus int

const (
	StatusIdle LoadStatus = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s LoadStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText lets LoadStatus appear as its name in JSON.
func (s LoadStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name produced by MarshalText.
func (s *LoadStatus) UnmarshalText(b []byte) error {
	for _, st := range []LoadStatus{StatusIdle, StatusLoading, StatusReady, StatusError} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("store: unknown load status %q", b)
}

// Snapshot is an immutable view of TripStore state.
// Trips is already in display order. Version increases on every change.
type Snapshot struct {
	Version     uint64        `json:"version"`
	Status      LoadStatus    `json:"status"`
	LoadError   string        `json:"loadError,omitempty"`
	Trips       []domain.Trip `json:"trips"`
	Saving      bool          `json:"saving"`
	SubmitError string        `json:"submitError,omitempty"`
}

// sortByStartDesc returns a copy of trips stably sorted by start date,
// newest first. Trips whose start date does not parse sort last.
func sortByStartDesc(trips []domain.Trip) []domain.Trip {
	type keyed struct {
		trip  domain.Trip
		start time.Time
		ok    bool
	}
	ks := make([]keyed, len(trips))
	for i, t := range trips {
		start, err := domain.ParseDate(t.StartDate)
		ks[i] = keyed{trip: t, start: start, ok: err == nil}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.ok && !b.ok:
			return -1
		case !a.ok && b.ok:
			return 1
		case !a.ok && !b.ok:
			return 0
		}
		return b.start.Compare(a.start)
	})

	out := make([]domain.Trip, len(ks))
	for i, k := range ks {
		out[i] = k.trip
	}
	return out
}
