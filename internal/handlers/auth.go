package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/models"
	"github.com/harmonymatch/admin-gateway/internal/services"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
	pkglogger "github.com/harmonymatch/admin-gateway/pkg/logger"
)

// AuthAPI is the slice of the backend client the login handler needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, backend.Result)
}

// AuthHandler proxies operator logins to the backend. The gateway never
// stores credentials; it forwards them once and hands the resulting token
// back to the dashboard.
type AuthHandler struct {
	api            AuthAPI
	audit          *services.AuditService
	authLog        *pkglogger.AuditLogger
	trustedProxies []string
	logger         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(api AuthAPI, audit *services.AuditService, trustedProxies []string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		api:            api,
		audit:          audit,
		authLog:        pkglogger.NewAuditLogger(logger),
		trustedProxies: trustedProxies,
		logger:         logger,
	}
}

// LoginRequest is the dashboard's login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse mirrors the backend's token grant.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	login, res := h.api.Login(r.Context(), req.Username, req.Password)

	event := pkglogger.AuditEvent{
		EventType: models.AuditEventTypeLogin,
		Operator:  req.Username,
		IPAddress: pkghttp.ExtractClientIP(r, h.trustedProxies),
		UserAgent: r.UserAgent(),
		Success:   res.Success,
	}
	if !res.Success {
		event.FailureReason = res.Message
	}
	h.authLog.LogAuthAttempt(event)

	h.audit.Record(r.Context(), services.Entry{
		EventType:     models.AuditEventTypeLogin,
		Operator:      req.Username,
		Action:        models.AuditActionTrigger,
		Success:       res.Success,
		FailureReason: event.FailureReason,
		IPAddress:     event.IPAddress,
		UserAgent:     event.UserAgent,
	})

	if !res.Success {
		// The backend's message may leak which half of the credential pair
		// was wrong; collapse everything to one answer.
		if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden ||
			res.StatusCode == http.StatusBadRequest || res.StatusCode == http.StatusNotFound {
			pkghttp.WriteUnauthorized(w, "invalid username or password")
			return
		}
		pkghttp.WriteFromError(w, res.Err(), "login is unavailable right now")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: login.AccessToken,
		TokenType:   login.TokenType,
	})
}
