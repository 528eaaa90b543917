package domain

import "strings"

// ValidateDraft enforces the local rules a draft must pass before it is sent
// to the backend. Checks run in order and stop at the first failure:
//   - Name must be non-empty (whitespace-only names are rejected).
//   - StartDate must be present and a DateLayout date.
//   - EndDate must be present and a DateLayout date.
//   - TripTimezone must be non-empty.
//   - StartDate must not be after EndDate.
//
// A nil result means the draft is valid. Otherwise the error wraps
// ErrInvalidInput and MessageOf returns the reason.
//
// The backend remains authoritative; this only decides whether submission
// should be offered at all.
func ValidateDraft(d TripDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return NewError(ErrInvalidInput, "name is required")
	}

	if strings.TrimSpace(d.StartDate) == "" {
		return NewError(ErrInvalidInput, "startDate is required")
	}
	start, err := ParseDate(d.StartDate)
	if err != nil {
		return NewError(ErrInvalidInput, "startDate must be a YYYY-MM-DD date")
	}

	if strings.TrimSpace(d.EndDate) == "" {
		return NewError(ErrInvalidInput, "endDate is required")
	}
	end, err := ParseDate(d.EndDate)
	if err != nil {
		return NewError(ErrInvalidInput, "endDate must be a YYYY-MM-DD date")
	}

	if strings.TrimSpace(d.TripTimezone) == "" {
		return NewError(ErrInvalidInput, "tripTimezone is required")
	}

	if start.After(end) {
		return NewError(ErrInvalidInput, "startDate must be <= endDate")
	}
	return nil
}
