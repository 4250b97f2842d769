package logger

import (
	"log/slog"
	"net/url"
	"strings"
)

// SanitizeQueryString reports whether a query string contains parameters
// that must never reach the logs (credentials forwarded to the backend).
func SanitizeQueryString(rawQuery string) bool {
	if rawQuery == "" {
		return false
	}

	sensitiveParams := map[string]bool{
		"password":     true,
		"token":        true,
		"access_token": true,
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Unparseable query strings are redacted wholesale
		return true
	}

	for key := range values {
		if sensitiveParams[strings.ToLower(key)] {
			return true
		}
	}

	return false
}

// RedactedAttr returns a redacted slog attribute for sensitive values.
// In production the actual value is never logged.
func RedactedAttr(key, value, env string) slog.Attr {
	if env == "production" {
		return slog.String(key, "[REDACTED]")
	}
	return slog.String(key, value)
}
