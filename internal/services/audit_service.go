package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// AuditLogStore is the slice of the audit repository the service needs.
type AuditLogStore interface {
	Create(ctx context.Context, log *models.AuditLog) (*models.AuditLog, error)
	GetRecent(ctx context.Context, limit int, offset int) ([]*models.AuditLog, error)
	GetByOperator(ctx context.Context, operator string, limit int, offset int) ([]*models.AuditLog, error)
}

// AuditService records administrative actions with a dual-write pattern
// (slog + database). Persistence failures are logged and swallowed: an
// audit hiccup must never fail the operator's action. A nil store keeps
// the slog half only, which is how the service runs with AUDIT_ENABLED=false.
type AuditService struct {
	store  AuditLogStore
	logger *slog.Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(store AuditLogStore, logger *slog.Logger) *AuditService {
	return &AuditService{
		store:  store,
		logger: logger,
	}
}

// Entry captures one administrative action for the audit trail.
type Entry struct {
	EventType     string
	Operator      string
	ResourceType  string
	ResourceID    string
	Action        string
	Success       bool
	FailureReason string
	IPAddress     string
	UserAgent     string
	Metadata      models.AuditMetadata
}

// Record writes the entry to slog and, when enabled, to the database.
func (s *AuditService) Record(ctx context.Context, e Entry) {
	if e.Success {
		s.logger.InfoContext(ctx, "audit event",
			slog.String("event_type", e.EventType),
			slog.String("operator", e.Operator),
			slog.String("action", e.Action),
			slog.Any("metadata", e.Metadata),
		)
	} else {
		s.logger.WarnContext(ctx, "audit event failed",
			slog.String("event_type", e.EventType),
			slog.String("operator", e.Operator),
			slog.String("action", e.Action),
			slog.String("failure_reason", e.FailureReason),
			slog.Any("metadata", e.Metadata),
		)
	}

	if s.store == nil {
		return
	}

	log := &models.AuditLog{
		EventType: e.EventType,
		Operator:  e.Operator,
		Action:    e.Action,
		Success:   e.Success,
		Metadata:  e.Metadata,
	}
	if e.ResourceType != "" {
		log.ResourceType = &e.ResourceType
	}
	if e.ResourceID != "" {
		log.ResourceID = &e.ResourceID
	}
	if e.FailureReason != "" {
		log.FailureReason = &e.FailureReason
	}
	if e.IPAddress != "" {
		log.IPAddress = &e.IPAddress
	}
	if e.UserAgent != "" {
		log.UserAgent = &e.UserAgent
	}

	if _, err := s.store.Create(ctx, log); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist audit log",
			slog.String("event_type", e.EventType),
			slog.Any("error", err),
		)
	}
}

// GetRecentActivity retrieves the newest audit entries.
func (s *AuditService) GetRecentActivity(ctx context.Context, limit int, offset int) ([]*models.AuditLog, error) {
	if s.store == nil {
		return []*models.AuditLog{}, nil
	}

	limit, offset = clampAuditRange(limit, offset)
	logs, err := s.store.GetRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit trail: %w", err)
	}
	return logs, nil
}

// GetOperatorActivity retrieves one operator's audit entries.
func (s *AuditService) GetOperatorActivity(ctx context.Context, operator string, limit int, offset int) ([]*models.AuditLog, error) {
	if s.store == nil {
		return []*models.AuditLog{}, nil
	}

	limit, offset = clampAuditRange(limit, offset)
	logs, err := s.store.GetByOperator(ctx, operator, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator audit trail: %w", err)
	}
	return logs, nil
}

func clampAuditRange(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
