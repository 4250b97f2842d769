package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/models"
	"github.com/harmonymatch/admin-gateway/internal/services"
)

func newAuthHandler(api AuthAPI) *AuthHandler {
	audit := services.NewAuditService(nil, slog.Default())
	return NewAuthHandler(api, audit, nil, slog.Default())
}

func TestLogin_Success(t *testing.T) {
	api := &MockAuthAPI{
		LoginFunc: func(ctx context.Context, username, password string) (*models.LoginResult, backend.Result) {
			assert.Equal(t, "admin", username)
			assert.Equal(t, "secret123", password)
			return &models.LoginResult{AccessToken: "tok", TokenType: "bearer"},
				backend.Result{Success: true, StatusCode: http.StatusOK}
		},
	}
	handler := newAuthHandler(api)

	req := NewTestRequest(t, "POST", "/auth/login", LoginRequest{Username: "admin", Password: "secret123"})
	w := httptest.NewRecorder()
	handler.Login(w, req)

	var resp LoginResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestLogin_BadCredentials(t *testing.T) {
	api := &MockAuthAPI{
		LoginFunc: func(ctx context.Context, username, password string) (*models.LoginResult, backend.Result) {
			return nil, backend.Result{Success: false, Message: "user not found", StatusCode: http.StatusNotFound}
		},
	}
	handler := newAuthHandler(api)

	req := NewTestRequest(t, "POST", "/auth/login", LoginRequest{Username: "admin", Password: "wrong"})
	w := httptest.NewRecorder()
	handler.Login(w, req)

	// The backend distinguishes unknown user from wrong password; the
	// gateway must not.
	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestLogin_BackendDown(t *testing.T) {
	api := &MockAuthAPI{
		LoginFunc: func(ctx context.Context, username, password string) (*models.LoginResult, backend.Result) {
			return nil, backend.Result{Success: false, Message: "connection refused", StatusCode: http.StatusBadGateway}
		},
	}
	handler := newAuthHandler(api)

	req := NewTestRequest(t, "POST", "/auth/login", LoginRequest{Username: "admin", Password: "secret123"})
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	called := false
	api := &MockAuthAPI{
		LoginFunc: func(ctx context.Context, username, password string) (*models.LoginResult, backend.Result) {
			called = true
			return nil, backend.Result{}
		},
	}
	handler := newAuthHandler(api)

	req := NewTestRequest(t, "POST", "/auth/login", LoginRequest{Username: "admin"})
	w := httptest.NewRecorder()
	handler.Login(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
	assert.False(t, called, "backend should not be contacted with an invalid payload")
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler := newAuthHandler(&MockAuthAPI{})

	req := httptest.NewRequest("POST", "/auth/login", nil)
	w := httptest.NewRecorder()
	handler.Login(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}
