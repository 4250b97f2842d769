package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/harmonymatch/admin-gateway/internal/models"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// Middleware extracts the operator's bearer token, rejects requests whose
// token is missing, malformed, or carries an expired exp claim, and attaches
// the token and claims to the request context for the backend client.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				pkghttp.WriteUnauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				pkghttp.WriteUnauthorized(w, "invalid authorization header format")
				return
			}

			tokenString := parts[1]

			claims, err := ParseClaims(tokenString)
			if err != nil {
				pkghttp.WriteUnauthorized(w, "invalid token")
				return
			}

			if err := CheckExpiry(claims, time.Now()); err != nil {
				if errors.Is(err, models.ErrTokenExpired) {
					pkghttp.WriteUnauthorized(w, "token expired, please log in again")
					return
				}
				pkghttp.WriteUnauthorized(w, "invalid token")
				return
			}

			ctx := WithCredentials(r.Context(), tokenString, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
