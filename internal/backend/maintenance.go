package backend

import (
	"context"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// RunMaintenance triggers the backend's parameterless maintenance job and
// returns its summary: counts of deleted chat messages, deleted stale match
// requests, activated users, and users flagged or permanently deleted.
func (c *Client) RunMaintenance(ctx context.Context) (*models.MaintenanceReport, Result) {
	res := c.PostJSON(ctx, "/run_maintenance_tasks", nil)
	if !res.Success {
		return nil, res
	}

	var report models.MaintenanceReport
	if err := res.Decode(&report); err != nil {
		res.Success = false
		res.Message = "unexpected maintenance report payload"
		return nil, res
	}
	return &report, res
}
