package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/models"
	"github.com/harmonymatch/admin-gateway/internal/session"
)

const minPasswordLength = 6

// UserAccountAPI is the slice of the backend client for single-user
// operations.
type UserAccountAPI interface {
	GetUser(ctx context.Context, userID string) (*models.User, backend.Result)
	UpdateUser(ctx context.Context, userID string, delta models.UserDelta) backend.Result
	DeleteUser(ctx context.Context, userID string) backend.Result
	ChangeUserPassword(ctx context.Context, userID, password string) backend.Result
}

// UserAdminService handles stateless listing and per-row operations:
// profile lookups, field updates, deletion, and password resets. Accepted
// updates are folded into the operator's cached console page so the row
// reflects the change without a refetch.
type UserAdminService struct {
	api       UserAccountAPI
	directory UserDirectory
	store     session.Store
	audit     *AuditService
	logger    *slog.Logger
}

// NewUserAdminService creates a new UserAdminService
func NewUserAdminService(api UserAccountAPI, directory UserDirectory, store session.Store, audit *AuditService, logger *slog.Logger) *UserAdminService {
	return &UserAdminService{
		api:       api,
		directory: directory,
		store:     store,
		audit:     audit,
		logger:    logger,
	}
}

// ListUsers runs one filtered page query without touching any console
// session.
func (s *UserAdminService) ListUsers(ctx context.Context, page, limit int, input console.FilterInput) (*models.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if !console.ValidPageSize(limit) {
		limit = console.DefaultPageSize
	}

	users, res := s.directory.ListUsers(ctx, page, limit, input.Normalize())
	if !res.Success {
		return nil, res.Err()
	}
	return users, nil
}

// GetUser fetches one profile from the backend.
func (s *UserAdminService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, res := s.api.GetUser(ctx, userID)
	if !res.Success {
		return nil, res.Err()
	}
	return user, nil
}

// UpdateUser applies a field delta to one user and merges the accepted
// values into the operator's cached page.
func (s *UserAdminService) UpdateUser(ctx context.Context, userID string, delta models.UserDelta) error {
	if len(delta) == 0 {
		return fmt.Errorf("%w: empty update", models.ErrBadRequest)
	}

	res := s.api.UpdateUser(ctx, userID, delta)

	s.audit.Record(ctx, Entry{
		EventType:     models.AuditEventTypeUserUpdate,
		Operator:      auth.OperatorFromContext(ctx),
		ResourceType:  models.AuditResourceTypeUser,
		ResourceID:    userID,
		Action:        models.AuditActionUpdate,
		Success:       res.Success,
		FailureReason: failureReason(res),
		Metadata:      models.AuditMetadata{"fields": delta},
	})

	if !res.Success {
		return res.Err()
	}

	s.mergeIntoSession(ctx, func(state sessionState) {
		state.MergeUser(userID, delta)
	})
	return nil
}

// DeleteUser removes one user and drops the row from the cached page.
func (s *UserAdminService) DeleteUser(ctx context.Context, userID string) error {
	res := s.api.DeleteUser(ctx, userID)

	s.audit.Record(ctx, Entry{
		EventType:     models.AuditEventTypeUserDelete,
		Operator:      auth.OperatorFromContext(ctx),
		ResourceType:  models.AuditResourceTypeUser,
		ResourceID:    userID,
		Action:        models.AuditActionDelete,
		Success:       res.Success,
		FailureReason: failureReason(res),
	})

	if !res.Success {
		return res.Err()
	}

	s.mergeIntoSession(ctx, func(state sessionState) {
		state.RemoveUser(userID)
	})
	return nil
}

// ChangePassword validates and sets a new password for one user. The
// password itself never reaches the audit trail.
func (s *UserAdminService) ChangePassword(ctx context.Context, userID, password, confirm string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", models.ErrBadRequest, minPasswordLength)
	}
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", models.ErrBadRequest)
	}

	res := s.api.ChangeUserPassword(ctx, userID, password)

	s.audit.Record(ctx, Entry{
		EventType:     models.AuditEventTypePassword,
		Operator:      auth.OperatorFromContext(ctx),
		ResourceType:  models.AuditResourceTypeUser,
		ResourceID:    userID,
		Action:        models.AuditActionUpdate,
		Success:       res.Success,
		FailureReason: failureReason(res),
	})

	if !res.Success {
		return res.Err()
	}
	return nil
}

type sessionState interface {
	MergeUser(userID string, delta models.UserDelta)
	RemoveUser(userID string)
}

// mergeIntoSession is best-effort: the backend already accepted the change,
// so a session hiccup only costs the operator a refetch.
func (s *UserAdminService) mergeIntoSession(ctx context.Context, apply func(sessionState)) {
	operator := auth.OperatorFromContext(ctx)
	if operator == "" {
		return
	}

	state, err := s.store.Get(ctx, operator)
	if err != nil {
		return
	}
	apply(state)

	if err := s.store.Put(ctx, operator, state); err != nil {
		s.logger.WarnContext(ctx, "failed to update cached console page",
			slog.String("operator", operator),
			slog.Any("error", err),
		)
	}
}
