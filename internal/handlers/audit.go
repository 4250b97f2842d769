package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harmonymatch/admin-gateway/internal/services"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// AuditHandler serves read access to the local audit trail.
type AuditHandler struct {
	audit  *services.AuditService
	logger *slog.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit *services.AuditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, logger: logger}
}

func auditRange(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

// GetRecent handles GET /audit
func (h *AuditHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, offset := auditRange(r)

	logs, err := h.audit.GetRecentActivity(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load audit trail")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, logs)
}

// GetByOperator handles GET /audit/operator/{operator}
func (h *AuditHandler) GetByOperator(w http.ResponseWriter, r *http.Request) {
	operator := chi.URLParam(r, "operator")
	if operator == "" {
		pkghttp.WriteBadRequest(w, "operator is required")
		return
	}
	limit, offset := auditRange(r)

	logs, err := h.audit.GetOperatorActivity(r.Context(), operator, limit, offset)
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load operator audit trail")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, logs)
}
