package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

func setupAuditTest(t *testing.T) (*TestDB, context.Context) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := SetupTestDatabase(ctx)
	require.NoError(t, err, "failed to set up test database")

	t.Cleanup(func() {
		_ = db.Teardown(context.Background())
	})

	return db, ctx
}

func strPtr(s string) *string { return &s }

func TestAuditLogRepository_CreateAndGetRecent(t *testing.T) {
	db, ctx := setupAuditTest(t)
	repo := db.NewAuditLogRepository()

	created, err := repo.Create(ctx, &models.AuditLog{
		EventType:    models.AuditEventTypeBulkUpdate,
		Operator:     "admin",
		ResourceType: strPtr(models.AuditResourceTypeUser),
		Action:       models.AuditActionUpdate,
		Success:      true,
		Metadata:     models.AuditMetadata{"user_ids": []string{"u-1", "u-2"}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID, "id should be generated")
	assert.WithinDuration(t, time.Now(), created.CreatedAt, 5*time.Second)

	logs, err := repo.GetRecent(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditEventTypeBulkUpdate, logs[0].EventType)
	assert.Equal(t, "admin", logs[0].Operator)
	assert.True(t, logs[0].Success)
}

func TestAuditLogRepository_GetByOperator(t *testing.T) {
	db, ctx := setupAuditTest(t)
	repo := db.NewAuditLogRepository()

	for _, operator := range []string{"alice", "bob", "alice"} {
		_, err := repo.Create(ctx, &models.AuditLog{
			EventType: models.AuditEventTypeUserUpdate,
			Operator:  operator,
			Action:    models.AuditActionUpdate,
			Success:   true,
		})
		require.NoError(t, err)
	}

	logs, err := repo.GetByOperator(ctx, "alice", 10, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, "alice", l.Operator)
	}
}

func TestAuditLogRepository_GetFailedAttempts(t *testing.T) {
	db, ctx := setupAuditTest(t)
	repo := db.NewAuditLogRepository()

	_, err := repo.Create(ctx, &models.AuditLog{
		EventType: models.AuditEventTypeLogin,
		Operator:  "admin",
		Action:    models.AuditActionTrigger,
		Success:   true,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.AuditLog{
		EventType:     models.AuditEventTypeLogin,
		Operator:      "admin",
		Action:        models.AuditActionTrigger,
		Success:       false,
		FailureReason: strPtr("invalid username or password"),
	})
	require.NoError(t, err)

	logs, err := repo.GetFailedAttempts(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)
	require.NotNil(t, logs[0].FailureReason)
	assert.Equal(t, "invalid username or password", *logs[0].FailureReason)
}

func TestAuditLogRepository_Cleanup(t *testing.T) {
	db, ctx := setupAuditTest(t)
	repo := db.NewAuditLogRepository()

	_, err := repo.Create(ctx, &models.AuditLog{
		EventType: models.AuditEventTypeUserDelete,
		Operator:  "admin",
		Action:    models.AuditActionDelete,
		Success:   true,
	})
	require.NoError(t, err)

	// Backdate the row past the retention window
	_, err = db.Pool.Exec(ctx, "UPDATE audit_logs SET created_at = NOW() - INTERVAL '100 days'")
	require.NoError(t, err)

	deleted, err := repo.Cleanup(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	logs, err := repo.GetRecent(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
