package services

import (
	"context"
	"log/slog"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/models"
)

// MaintenanceAPI is the slice of the backend client for the maintenance
// trigger.
type MaintenanceAPI interface {
	RunMaintenance(ctx context.Context) (*models.MaintenanceReport, backend.Result)
}

// MaintenanceService triggers the backend's maintenance job, records the
// run, and mails the summary when a report address is configured. It serves
// both the manual endpoint and the cron schedule.
type MaintenanceService struct {
	api      MaintenanceAPI
	audit    *AuditService
	email    EmailService
	reportTo string
	logger   *slog.Logger
}

// NewMaintenanceService creates a new MaintenanceService. email may be nil
// when report delivery is disabled.
func NewMaintenanceService(api MaintenanceAPI, audit *AuditService, email EmailService, reportTo string, logger *slog.Logger) *MaintenanceService {
	return &MaintenanceService{
		api:      api,
		audit:    audit,
		email:    email,
		reportTo: reportTo,
		logger:   logger,
	}
}

// Run triggers one maintenance pass and returns the backend's summary.
func (s *MaintenanceService) Run(ctx context.Context) (*models.MaintenanceReport, error) {
	report, res := s.api.RunMaintenance(ctx)

	entry := Entry{
		EventType:     models.AuditEventTypeMaintenance,
		Operator:      auth.OperatorFromContext(ctx),
		ResourceType:  models.AuditResourceTypeJob,
		Action:        models.AuditActionTrigger,
		Success:       res.Success,
		FailureReason: failureReason(res),
	}
	if report != nil {
		entry.Metadata = models.AuditMetadata{
			"chat_messages_deleted":  report.Tasks.ChatMessagesDeleted.DeletedCount,
			"stale_requests_deleted": report.Tasks.StaleRequestsDeleted.DeletedCount,
			"users_activated":        report.Tasks.UsersActivated.UpdatedCount,
			"users_swept":            report.Tasks.UsersMarkedDeleted.PermanentlyDeleted,
		}
	}
	s.audit.Record(ctx, entry)

	if !res.Success {
		return nil, res.Err()
	}

	if s.email != nil && s.reportTo != "" {
		if err := s.email.SendMaintenanceReport(ctx, s.reportTo, report); err != nil {
			// The run itself succeeded; report delivery is best effort.
			s.logger.WarnContext(ctx, "maintenance report email failed",
				slog.Any("error", err),
			)
		}
	}

	return report, nil
}
