package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/models"
)

func sampleReport() *models.MaintenanceReport {
	return &models.MaintenanceReport{
		Timestamp: "2026-08-29T03:00:00Z",
		Tasks: models.MaintenanceTasks{
			ChatMessagesDeleted:  models.DeletedCount{DeletedCount: 120},
			StaleRequestsDeleted: models.DeletedCount{DeletedCount: 14},
			UsersActivated:       models.UpdatedCount{UpdatedCount: 3},
			UsersMarkedDeleted:   models.PermanentSweep{MatchedCount: 5, PermanentlyDeleted: 2},
		},
	}
}

func TestMaintenanceRun_ReturnsReport(t *testing.T) {
	api := &MockMaintenanceAPI{
		RunMaintenanceFunc: func(ctx context.Context) (*models.MaintenanceReport, backend.Result) {
			return sampleReport(), okResult()
		},
	}
	svc := NewMaintenanceService(api, NewAuditService(nil, slog.Default()), nil, "", slog.Default())

	report, err := svc.Run(OperatorContext("moderator1"))

	assert.NoError(t, err)
	assert.Equal(t, 120, report.Tasks.ChatMessagesDeleted.DeletedCount)
	assert.Equal(t, 2, report.Tasks.UsersMarkedDeleted.PermanentlyDeleted)
}

func TestMaintenanceRun_SendsReportEmail(t *testing.T) {
	var sentTo string
	var sentReport *models.MaintenanceReport
	email := &MockEmailService{
		SendMaintenanceReportFunc: func(ctx context.Context, to string, report *models.MaintenanceReport) error {
			sentTo = to
			sentReport = report
			return nil
		},
	}
	api := &MockMaintenanceAPI{
		RunMaintenanceFunc: func(ctx context.Context) (*models.MaintenanceReport, backend.Result) {
			return sampleReport(), okResult()
		},
	}
	svc := NewMaintenanceService(api, NewAuditService(nil, slog.Default()), email, "ops@example.com", slog.Default())

	_, err := svc.Run(OperatorContext("moderator1"))

	assert.NoError(t, err)
	assert.Equal(t, "ops@example.com", sentTo)
	assert.Equal(t, 14, sentReport.Tasks.StaleRequestsDeleted.DeletedCount)
}

func TestMaintenanceRun_EmailFailureDoesNotFailRun(t *testing.T) {
	email := &MockEmailService{
		SendMaintenanceReportFunc: func(ctx context.Context, to string, report *models.MaintenanceReport) error {
			return errors.New("ses throttled")
		},
	}
	svc := NewMaintenanceService(&MockMaintenanceAPI{}, NewAuditService(nil, slog.Default()), email, "ops@example.com", slog.Default())

	_, err := svc.Run(OperatorContext("moderator1"))
	assert.NoError(t, err)
}

func TestMaintenanceRun_BackendFailureIsAudited(t *testing.T) {
	var recorded *models.AuditLog
	auditStore := &MockAuditLogStore{
		CreateFunc: func(ctx context.Context, log *models.AuditLog) (*models.AuditLog, error) {
			recorded = log
			return log, nil
		},
	}
	api := &MockMaintenanceAPI{
		RunMaintenanceFunc: func(ctx context.Context) (*models.MaintenanceReport, backend.Result) {
			return nil, failedResult(502, "backend unreachable")
		},
	}
	svc := NewMaintenanceService(api, NewAuditService(auditStore, slog.Default()), nil, "", slog.Default())

	_, err := svc.Run(OperatorContext("moderator1"))

	assert.ErrorIs(t, err, models.ErrBackendUnavailable)
	assert.NotNil(t, recorded)
	assert.False(t, recorded.Success)
	assert.Equal(t, models.AuditEventTypeMaintenance, recorded.EventType)
	assert.Equal(t, "backend unreachable", *recorded.FailureReason)
}
