package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/models"
	"github.com/harmonymatch/admin-gateway/internal/session"
)

func newUserAdminService(t *testing.T, api UserAccountAPI, auditStore AuditLogStore) (*UserAdminService, session.Store) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	audit := NewAuditService(auditStore, slog.Default())
	return NewUserAdminService(api, &MockUserDirectory{}, store, audit, slog.Default()), store
}

func TestListUsers_NormalizesPageAndFilters(t *testing.T) {
	var gotPage, gotLimit int
	var gotCriteria models.FilterCriteria
	directory := &MockUserDirectory{
		ListUsersFunc: func(ctx context.Context, page, limit int, criteria models.FilterCriteria) (*models.UserPage, backend.Result) {
			gotPage, gotLimit, gotCriteria = page, limit, criteria
			return &models.UserPage{Stats: models.UserStats{Total: 1, TotalPages: 1}}, okResult()
		},
	}
	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)
	svc := NewUserAdminService(&MockUserAccountAPI{}, directory, store, NewAuditService(nil, slog.Default()), slog.Default())

	page, err := svc.ListUsers(OperatorContext("admin"), 0, 37, console.FilterInput{LegacySearch: "priya"})
	assert.NoError(t, err)
	assert.NotNil(t, page)
	assert.Equal(t, 1, gotPage, "page below 1 is clamped")
	assert.Equal(t, console.DefaultPageSize, gotLimit, "unknown page size falls back to default")
	assert.Equal(t, "priya", gotCriteria.Search, "legacy filter name is normalized")
}

func seedSession(t *testing.T, store session.Store, operator string, ids ...string) {
	t.Helper()
	state := console.NewState()
	page := &models.UserPage{Stats: models.UserStats{Total: len(ids), TotalPages: 1}}
	for _, id := range ids {
		page.Users = append(page.Users, models.User{ID: id})
	}
	seq := state.IssueFetch()
	state.ApplyPage(page, seq)
	assert.NoError(t, store.Put(context.Background(), operator, state))
}

func TestUpdateUser_MergesIntoCachedPage(t *testing.T) {
	api := &MockUserAccountAPI{}
	svc, store := newUserAdminService(t, api, nil)
	ctx := OperatorContext("moderator1")
	seedSession(t, store, "moderator1", "u1", "u2")

	delta := models.UserDelta{}
	delta.SetBool(models.FieldPhoto1Approved, true)

	assert.NoError(t, svc.UpdateUser(ctx, "u2", delta))

	state, err := store.Get(ctx, "moderator1")
	assert.NoError(t, err)
	assert.True(t, state.Users[1].Photo1Approved, "accepted update lands in the cached row")
	assert.False(t, state.Users[0].Photo1Approved)
}

func TestUpdateUser_EmptyDeltaRejected(t *testing.T) {
	called := false
	api := &MockUserAccountAPI{
		UpdateUserFunc: func(ctx context.Context, userID string, delta models.UserDelta) backend.Result {
			called = true
			return okResult()
		},
	}
	svc, _ := newUserAdminService(t, api, nil)

	err := svc.UpdateUser(OperatorContext("moderator1"), "u1", models.UserDelta{})

	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.False(t, called)
}

func TestUpdateUser_BackendFailureLeavesCacheAlone(t *testing.T) {
	api := &MockUserAccountAPI{
		UpdateUserFunc: func(ctx context.Context, userID string, delta models.UserDelta) backend.Result {
			return failedResult(500, "boom")
		},
	}
	svc, store := newUserAdminService(t, api, nil)
	ctx := OperatorContext("moderator1")
	seedSession(t, store, "moderator1", "u1")

	delta := models.UserDelta{}
	delta.SetBool(models.FieldPhoto1Approved, true)

	err := svc.UpdateUser(ctx, "u1", delta)
	assert.ErrorIs(t, err, models.ErrBackendUnavailable)

	state, err := store.Get(ctx, "moderator1")
	assert.NoError(t, err)
	assert.False(t, state.Users[0].Photo1Approved)
}

func TestDeleteUser_DropsCachedRow(t *testing.T) {
	api := &MockUserAccountAPI{}
	svc, store := newUserAdminService(t, api, nil)
	ctx := OperatorContext("moderator1")
	seedSession(t, store, "moderator1", "u1", "u2", "u3")

	assert.NoError(t, svc.DeleteUser(ctx, "u2"))

	state, err := store.Get(ctx, "moderator1")
	assert.NoError(t, err)
	assert.Len(t, state.Users, 2)
	for _, u := range state.Users {
		assert.NotEqual(t, "u2", u.ID)
	}
}

func TestChangePassword_Validation(t *testing.T) {
	called := false
	api := &MockUserAccountAPI{
		ChangeUserPasswordFunc: func(ctx context.Context, userID, password string) backend.Result {
			called = true
			return okResult()
		},
	}
	svc, _ := newUserAdminService(t, api, nil)
	ctx := OperatorContext("moderator1")

	err := svc.ChangePassword(ctx, "u1", "short", "short")
	assert.ErrorIs(t, err, models.ErrBadRequest)

	err = svc.ChangePassword(ctx, "u1", "longenough", "different")
	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.False(t, called, "invalid passwords never reach the backend")

	assert.NoError(t, svc.ChangePassword(ctx, "u1", "longenough", "longenough"))
	assert.True(t, called)
}

func TestChangePassword_AuditOmitsPassword(t *testing.T) {
	var recorded *models.AuditLog
	auditStore := &MockAuditLogStore{
		CreateFunc: func(ctx context.Context, log *models.AuditLog) (*models.AuditLog, error) {
			recorded = log
			return log, nil
		},
	}
	svc, _ := newUserAdminService(t, &MockUserAccountAPI{}, auditStore)

	assert.NoError(t, svc.ChangePassword(OperatorContext("moderator1"), "u1", "hunter2secret", "hunter2secret"))

	assert.NotNil(t, recorded)
	assert.Equal(t, models.AuditEventTypePassword, recorded.EventType)
	assert.Equal(t, "moderator1", recorded.Operator)
	for _, v := range recorded.Metadata {
		assert.NotContains(t, v, "hunter2secret")
	}
}

func TestGetUser_PassesThroughBackendError(t *testing.T) {
	api := &MockUserAccountAPI{
		GetUserFunc: func(ctx context.Context, userID string) (*models.User, backend.Result) {
			return nil, failedResult(404, "user not found")
		},
	}
	svc, _ := newUserAdminService(t, api, nil)

	_, err := svc.GetUser(OperatorContext("moderator1"), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
