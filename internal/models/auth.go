package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the subset of the backend's access-token payload the
// gateway reads. The gateway never verifies the signature (it does not hold
// the backend's signing key); it only checks the expiry claim before
// forwarding the token.
type TokenClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Operator identifies the staff member behind a request, derived from the
// token claims.
func (c *TokenClaims) Operator() string {
	if c.Username != "" {
		return c.Username
	}
	return c.Subject
}

// LoginResult is what the backend's login endpoint returns on success.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
