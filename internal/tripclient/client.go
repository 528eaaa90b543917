// Package tripclient is the HTTP transport adapter for the trips REST backend.
// Each method performs exactly one round trip and reports failures as
// *domain.Error values of kind ErrNetwork, ErrServer or ErrValidationRejected.
// It never retries; timeouts are whatever the underlying http.Client enforces.
package tripclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripview/internal/domain"
)

// tripsPath is the collection resource on the backend.
const tripsPath = "/api/trips"

// maxErrorBody caps how much of a failed response is read looking for a message.
const maxErrorBody = 64 << 10

// Client talks to the trips backend rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New constructs a Client for the backend at baseURL (scheme + host, optional path prefix).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTrips handles GET /api/trips and returns every trip the backend knows.
// A successful empty response yields a non-nil empty slice.
func (c *Client) FetchTrips(ctx context.Context) ([]domain.Trip, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tripsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("tripclient.Client.FetchTrips: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, false)
	}

	var body []tripResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.Errorf(domain.ErrNetwork, "decode trips: %v", err)
	}

	trips := make([]domain.Trip, len(body))
	for i, t := range body {
		trips[i] = t.toDomain()
	}
	return trips, nil
}

// SubmitTrip handles POST /api/trips and returns the created trip with its
// server-assigned ID. Each call carries a fresh Idempotency-Key.
func (c *Client) SubmitTrip(ctx context.Context, draft domain.TripDraft) (domain.Trip, error) {
	payload, err := draftToRequest(draft)
	if err != nil {
		// The store validates before calling, so this only fires for direct callers.
		return domain.Trip{}, domain.NewError(domain.ErrInvalidInput, err.Error())
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("tripclient.Client.SubmitTrip: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tripsPath, bytes.NewReader(buf))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("tripclient.Client.SubmitTrip: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.do(req)
	if err != nil {
		return domain.Trip{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return domain.Trip{}, statusError(resp, true)
	}

	var body tripResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Trip{}, domain.Errorf(domain.ErrNetwork, "decode trip: %v", err)
	}
	if body.ID == "" {
		return domain.Trip{}, domain.NewError(domain.ErrServer, "created trip has no id")
	}
	return body.toDomain(), nil
}

// do sends req and logs the round trip. Transport failures become ErrNetwork.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(req.Context(), "backend request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, domain.NewError(domain.ErrNetwork, transportMessage(err))
	}

	c.log.DebugContext(req.Context(), "backend request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// transportMessage turns a transport error into text fit for the view.
func transportMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request to trips backend timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request to trips backend was canceled"
	}
	return "could not reach trips backend"
}

// statusError maps a non-success response to a domain error.
// On submit, 400 and 422 are validation rejections; everything else is ErrServer.
func statusError(resp *http.Response, submit bool) error {
	msg := readErrorMessage(resp.Body)
	if submit && (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity) {
		return domain.NewError(domain.ErrValidationRejected, msg)
	}
	return domain.NewError(domain.ErrServer, msg)
}

// errorResponse accepts both {"message": "..."} and
// {"error": {"code": "...", "message": "..."}} error bodies.
type errorResponse struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// readErrorMessage extracts the backend's human-readable message, or "".
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if len(body.Error) > 0 {
		var detail errorDetail
		if err := json.Unmarshal(body.Error, &detail); err == nil && detail.Message != "" {
			return strings.TrimSpace(detail.Message)
		}
	}
	return strings.TrimSpace(body.Message)
}
