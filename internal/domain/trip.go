// Package domain contains the core data types for the trip planner view service.
// This package has zero external dependencies and is imported by every other
// internal package (tripclient, store, handler).
package domain

import "time"

// DateLayout is the calendar date format used on the wire and for display.
const DateLayout = "2006-01-02"

// Trip is a server-persisted travel plan.
// ID is assigned by the backend and never changes after creation.
// StartDate and EndDate are calendar dates in DateLayout form.
type Trip struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	TripTimezone string `json:"tripTimezone"`
}

// TripDraft is unsaved user input for a prospective trip.
// It has the shape of Trip without the server-assigned ID.
type TripDraft struct {
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	TripTimezone string `json:"tripTimezone"`
}

// ParseDate parses a DateLayout string into a time.Time at UTC midnight.
// Comparisons between trip dates must go through ParseDate rather than
// comparing the raw strings.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
