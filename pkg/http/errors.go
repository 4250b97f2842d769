package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string `json:"error"`             // Machine-readable error code
	Message string `json:"message"`           // Human-readable message
	Details string `json:"details,omitempty"` // Optional additional context
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes a JSON error response with the given status code
func WriteError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: errorCode, Message: message})
}

// Common error writers for consistency
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}

func WriteBadGateway(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, "backend_error", message)
}

// WriteFromError maps the gateway's sentinel errors to status codes. The
// message is surfaced verbatim; callers are responsible for keeping it safe
// to show an operator.
func WriteFromError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrNoSelection):
		WriteBadRequest(w, message)
	case errors.Is(err, models.ErrNotAuthenticated),
		errors.Is(err, models.ErrTokenExpired),
		errors.Is(err, models.ErrUnauthorized):
		WriteUnauthorized(w, message)
	case errors.Is(err, models.ErrForbidden):
		WriteForbidden(w, message)
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrSessionNotFound):
		WriteNotFound(w, message)
	case errors.Is(err, models.ErrBackendUnavailable):
		WriteBadGateway(w, message)
	default:
		WriteInternalError(w, message)
	}
}
