package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/tripview/internal/domain"
)

// errorDetail and errorResponse are the JSON error envelope:
// {"error": {"code": "...", "message": "..."}}.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeDomainError maps a store/client error to a status code and envelope.
// The message is the one the view should show; fallback is used when the
// error carries none.
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	msg := domain.MessageOf(err)
	if msg == "" {
		msg = fallback
	}

	switch {
	case errors.Is(err, domain.ErrAlreadyInProgress):
		writeError(w, http.StatusConflict, "already_in_progress", msg)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", msg)
	case errors.Is(err, domain.ErrValidationRejected):
		writeError(w, http.StatusUnprocessableEntity, "validation_rejected", msg)
	case errors.Is(err, domain.ErrNetwork):
		writeError(w, http.StatusBadGateway, "network", msg)
	case errors.Is(err, domain.ErrServer):
		writeError(w, http.StatusBadGateway, "server_error", msg)
	default:
		writeError(w, http.StatusInternalServerError, "internal", fallback)
	}
}

// decodeBody decodes a JSON request body into dst. It writes the error
// response itself and reports false when decoding failed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body is too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be a JSON trip draft")
		return false
	}
	return true
}
