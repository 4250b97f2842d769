package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

func TestAuditRecord_PersistsEntry(t *testing.T) {
	var recorded *models.AuditLog
	store := &MockAuditLogStore{
		CreateFunc: func(ctx context.Context, log *models.AuditLog) (*models.AuditLog, error) {
			recorded = log
			return log, nil
		},
	}
	svc := NewAuditService(store, slog.Default())

	svc.Record(context.Background(), Entry{
		EventType:    models.AuditEventTypeUserUpdate,
		Operator:     "moderator1",
		ResourceType: models.AuditResourceTypeUser,
		ResourceID:   "u1",
		Action:       models.AuditActionUpdate,
		Success:      true,
		Metadata:     models.AuditMetadata{"fields": []string{"status"}},
	})

	assert.NotNil(t, recorded)
	assert.Equal(t, "moderator1", recorded.Operator)
	assert.Equal(t, "u1", *recorded.ResourceID)
	assert.Nil(t, recorded.FailureReason, "empty strings stay NULL")
}

func TestAuditRecord_StoreFailureIsSwallowed(t *testing.T) {
	store := &MockAuditLogStore{
		CreateFunc: func(ctx context.Context, log *models.AuditLog) (*models.AuditLog, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewAuditService(store, slog.Default())

	// Must not panic or propagate; the operator's action already succeeded.
	svc.Record(context.Background(), Entry{
		EventType: models.AuditEventTypeUserDelete,
		Operator:  "moderator1",
		Action:    models.AuditActionDelete,
		Success:   true,
	})
}

func TestAuditRecord_NilStoreLogsOnly(t *testing.T) {
	svc := NewAuditService(nil, slog.Default())

	svc.Record(context.Background(), Entry{
		EventType: models.AuditEventTypeLogin,
		Operator:  "moderator1",
		Action:    models.AuditActionTrigger,
		Success:   false,
	})

	logs, err := svc.GetRecentActivity(context.Background(), 10, 0)
	assert.NoError(t, err)
	assert.Empty(t, logs)
}

func TestGetRecentActivity_ClampsRange(t *testing.T) {
	var gotLimit, gotOffset int
	store := &MockAuditLogStore{
		GetRecentFunc: func(ctx context.Context, limit, offset int) ([]*models.AuditLog, error) {
			gotLimit, gotOffset = limit, offset
			return []*models.AuditLog{}, nil
		},
	}
	svc := NewAuditService(store, slog.Default())

	_, err := svc.GetRecentActivity(context.Background(), 5000, -3)

	assert.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, 0, gotOffset)
}
