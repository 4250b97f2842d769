package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Gateway state errors
	ErrNotAuthenticated   = errors.New("authentication required")
	ErrTokenExpired       = errors.New("access token expired")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNoSelection        = errors.New("no users selected")
	ErrSessionNotFound    = errors.New("console session not found")
)
