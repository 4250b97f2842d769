package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// The gateway is a pure client of the backend's auth: it never issues or
// signs tokens. It decodes the payload without signature verification to
// reject obviously expired tokens before spending a round trip; the backend
// remains the authority on token validity.

// ParseClaims decodes a bearer token's claims without verifying the
// signature. Returns ErrUnauthorized on any parse failure.
func ParseClaims(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: malformed token", models.ErrUnauthorized)
	}

	return claims, nil
}

// CheckExpiry returns ErrTokenExpired when the exp claim is in the past.
// A token without an exp claim is accepted; the backend will reject it if
// it disagrees.
func CheckExpiry(claims *models.TokenClaims, now time.Time) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	if now.After(claims.ExpiresAt.Time) {
		return models.ErrTokenExpired
	}
	return nil
}
