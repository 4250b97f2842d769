package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/models"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// UserAdmin is the service surface for listing and single-user operations.
type UserAdmin interface {
	ListUsers(ctx context.Context, page, limit int, input console.FilterInput) (*models.UserPage, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, delta models.UserDelta) error
	DeleteUser(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, password, confirm string) error
}

// UserHandler serves per-row user administration.
type UserHandler struct {
	admin  UserAdmin
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(admin UserAdmin, logger *slog.Logger) *UserHandler {
	return &UserHandler{admin: admin, logger: logger}
}

func boolParam(q url.Values, key string) *bool {
	if !q.Has(key) {
		return nil
	}
	b, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return nil
	}
	return &b
}

// ListUsers handles GET /users. Filters travel as query parameters; both
// the current and legacy names are accepted.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	input := console.FilterInput{
		Search:               q.Get("search"),
		Status:               q.Get("status"),
		Gender:               q.Get("gender"),
		Plan:                 q.Get("plans"),
		Country:              q.Get("country"),
		Online:               boolParam(q, "online"),
		Photo1Approved:       boolParam(q, "photo1"),
		Photo2Approved:       boolParam(q, "photo2"),
		BioApproved:          boolParam(q, "bioApproved"),
		ExpectationsApproved: boolParam(q, "expectationsApproved"),
		LegacySearch:         q.Get("searchQuery"),
		LegacyPlan:           q.Get("memtype"),
		LegacyPhoto1:         boolParam(q, "photo1Approve"),
		LegacyPhoto2:         boolParam(q, "photo2Approve"),
	}

	users, err := h.admin.ListUsers(r.Context(), page, limit, input)
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load users")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := h.admin.GetUser(r.Context(), userID)
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// UpdateUserRequest carries the field delta for one user. Values travel as
// strings the way the backend's form endpoint expects them.
type UpdateUserRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

// UpdateUser handles PUT /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.admin.UpdateUser(r.Context(), userID, models.UserDelta(req.Fields)); err != nil {
		pkghttp.WriteFromError(w, err, "failed to update user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteUser handles DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.admin.DeleteUser(r.Context(), userID); err != nil {
		pkghttp.WriteFromError(w, err, "failed to delete user")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ChangePasswordRequest carries a password reset for one user.
type ChangePasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// ChangePassword handles POST /users/{id}/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.admin.ChangePassword(r.Context(), userID, req.Password, req.ConfirmPassword); err != nil {
		pkghttp.WriteFromError(w, err, "failed to change password")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}
