package tripclient

import (
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripview/internal/domain"
)

// createTripRequest is the POST /api/trips body.
type createTripRequest struct {
	Name         string             `json:"name"`
	StartDate    openapi_types.Date `json:"startDate"`
	EndDate      openapi_types.Date `json:"endDate"`
	TripTimezone string             `json:"tripTimezone"`
}

// tripResponse is one trip as returned by the backend. Dates stay strings so
// one malformed row cannot fail a whole list; the store orders such trips last.
type tripResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	TripTimezone string `json:"tripTimezone"`
}

// draftToRequest converts a draft into the wire request.
// Returns an error if either date is not a DateLayout date.
func draftToRequest(d domain.TripDraft) (createTripRequest, error) {
	start, err := domain.ParseDate(d.StartDate)
	if err != nil {
		return createTripRequest{}, errors.New("startDate must be a YYYY-MM-DD date")
	}
	end, err := domain.ParseDate(d.EndDate)
	if err != nil {
		return createTripRequest{}, errors.New("endDate must be a YYYY-MM-DD date")
	}
	return createTripRequest{
		Name:         d.Name,
		StartDate:    openapi_types.Date{Time: start},
		EndDate:      openapi_types.Date{Time: end},
		TripTimezone: d.TripTimezone,
	}, nil
}

// toDomain converts the wire trip into a domain.Trip. Dates are passed through
// as sent.
func (t tripResponse) toDomain() domain.Trip {
	return domain.Trip(t)
}
