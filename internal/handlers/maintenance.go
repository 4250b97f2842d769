package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/harmonymatch/admin-gateway/internal/models"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// Maintenance triggers the backend's maintenance job.
type Maintenance interface {
	Run(ctx context.Context) (*models.MaintenanceReport, error)
}

// MaintenanceHandler exposes the manual maintenance trigger.
type MaintenanceHandler struct {
	service Maintenance
	logger  *slog.Logger
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(service Maintenance, logger *slog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{service: service, logger: logger}
}

// Run handles POST /maintenance/run
func (h *MaintenanceHandler) Run(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Run(r.Context())
	if err != nil {
		pkghttp.WriteFromError(w, err, "maintenance run failed")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, report)
}
