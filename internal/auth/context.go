package auth

import (
	"context"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// TokenContextKey holds the raw bearer token forwarded to the backend
	TokenContextKey contextKey = "bearer_token"
	// ClaimsContextKey holds the decoded token claims
	ClaimsContextKey contextKey = "claims"
)

// WithCredentials stores the raw token and its decoded claims on the context.
func WithCredentials(ctx context.Context, token string, claims *models.TokenClaims) context.Context {
	ctx = context.WithValue(ctx, TokenContextKey, token)
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// TokenFromContext returns the bearer token attached by the auth middleware.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenContextKey).(string)
	return token, ok && token != ""
}

// ClaimsFromContext returns the decoded claims, or nil when absent.
func ClaimsFromContext(ctx context.Context) *models.TokenClaims {
	claims, _ := ctx.Value(ClaimsContextKey).(*models.TokenClaims)
	return claims
}

// OperatorFromContext returns the acting operator's identity, or "" when the
// request is unauthenticated.
func OperatorFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.Operator()
	}
	return ""
}
