package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/services"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// Console is the service surface for the user-listing session.
type Console interface {
	Snapshot(ctx context.Context) (*services.View, error)
	Refresh(ctx context.Context) (*services.View, error)
	SetFilters(ctx context.Context, input console.FilterInput) (*services.View, error)
	SetPage(ctx context.Context, page int) (*services.View, error)
	SetPageSize(ctx context.Context, size int) (*services.View, error)
	NextPage(ctx context.Context) (*services.View, error)
	PrevPage(ctx context.Context) (*services.View, error)
	ToggleSelection(ctx context.Context, userID string) (*services.View, error)
	SelectAll(ctx context.Context) (*services.View, error)
	ClearSelection(ctx context.Context) (*services.View, error)
	ApplyBulk(ctx context.Context, action console.BulkAction) (*services.View, error)
	ResetSession(ctx context.Context) error
}

// ConsoleHandler exposes the operator's listing session over HTTP.
type ConsoleHandler struct {
	console Console
	logger  *slog.Logger
}

// NewConsoleHandler creates a new ConsoleHandler
func NewConsoleHandler(console Console, logger *slog.Logger) *ConsoleHandler {
	return &ConsoleHandler{console: console, logger: logger}
}

func (h *ConsoleHandler) writeView(w http.ResponseWriter, view *services.View, err error, message string) {
	if err != nil {
		pkghttp.WriteFromError(w, err, message)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, view)
}

// Snapshot handles GET /console
func (h *ConsoleHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	view, err := h.console.Snapshot(r.Context())
	h.writeView(w, view, err, "failed to load console")
}

// Refresh handles POST /console/refresh
func (h *ConsoleHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	view, err := h.console.Refresh(r.Context())
	h.writeView(w, view, err, "failed to refresh user list")
}

// SetFilters handles PUT /console/filters
func (h *ConsoleHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var input console.FilterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	view, err := h.console.SetFilters(r.Context(), input)
	h.writeView(w, view, err, "failed to apply filters")
}

// PageRequest selects a page number.
type PageRequest struct {
	Page int `json:"page" validate:"gte=1"`
}

// SetPage handles PUT /console/page
func (h *ConsoleHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	view, err := h.console.SetPage(r.Context(), req.Page)
	h.writeView(w, view, err, "failed to change page")
}

// PageSizeRequest selects how many rows each page holds.
type PageSizeRequest struct {
	PageSize int `json:"page_size" validate:"required"`
}

// SetPageSize handles PUT /console/page-size
func (h *ConsoleHandler) SetPageSize(w http.ResponseWriter, r *http.Request) {
	var req PageSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	view, err := h.console.SetPageSize(r.Context(), req.PageSize)
	h.writeView(w, view, err, "failed to change page size")
}

// NextPage handles POST /console/page/next
func (h *ConsoleHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.console.NextPage(r.Context())
	h.writeView(w, view, err, "failed to change page")
}

// PrevPage handles POST /console/page/prev
func (h *ConsoleHandler) PrevPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.console.PrevPage(r.Context())
	h.writeView(w, view, err, "failed to change page")
}

// SelectionRequest names the row to toggle.
type SelectionRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// ToggleSelection handles POST /console/selection/toggle
func (h *ConsoleHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	view, err := h.console.ToggleSelection(r.Context(), req.UserID)
	h.writeView(w, view, err, "failed to update selection")
}

// SelectAll handles POST /console/selection/all
func (h *ConsoleHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	view, err := h.console.SelectAll(r.Context())
	h.writeView(w, view, err, "failed to update selection")
}

// ClearSelection handles POST /console/selection/clear
func (h *ConsoleHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	view, err := h.console.ClearSelection(r.Context())
	h.writeView(w, view, err, "failed to update selection")
}

// ApplyBulk handles POST /console/bulk
func (h *ConsoleHandler) ApplyBulk(w http.ResponseWriter, r *http.Request) {
	var action console.BulkAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	view, err := h.console.ApplyBulk(r.Context(), action)
	if err != nil {
		pkghttp.WriteFromError(w, err, err.Error())
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, view)
}

// ResetSession handles DELETE /console
func (h *ConsoleHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.console.ResetSession(r.Context()); err != nil {
		pkghttp.WriteFromError(w, err, "failed to reset console session")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
