package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/models"
	"github.com/harmonymatch/admin-gateway/internal/session"
)

// UserDirectory is the slice of the backend client the console needs.
type UserDirectory interface {
	ListUsers(ctx context.Context, page, limit int, criteria models.FilterCriteria) (*models.UserPage, backend.Result)
	BulkUpdateUsers(ctx context.Context, userIDs []string, delta backend.BulkDelta) backend.Result
}

// ConsoleService drives one operator's user-listing session: filters,
// pagination, the selection set, and bulk actions. Every mutation persists
// the session state so a gateway restart (or another replica, with the
// redis store) picks up where the operator left off.
type ConsoleService struct {
	store     session.Store
	directory UserDirectory
	audit     *AuditService
	logger    *slog.Logger
}

// NewConsoleService creates a new ConsoleService
func NewConsoleService(store session.Store, directory UserDirectory, audit *AuditService, logger *slog.Logger) *ConsoleService {
	return &ConsoleService{
		store:     store,
		directory: directory,
		audit:     audit,
		logger:    logger,
	}
}

// View is the console snapshot returned to the operator's client.
type View struct {
	Users      []models.User         `json:"users"`
	Stats      models.UserStats      `json:"stats"`
	Filters    models.FilterCriteria `json:"filters"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	Window     []console.PageItem    `json:"window"`
	Selected   []string              `json:"selected"`
}

func viewOf(state *console.State) *View {
	return &View{
		Users:      state.Users,
		Stats:      state.Stats,
		Filters:    state.Filters,
		Page:       state.Page,
		PageSize:   state.PageSize,
		TotalPages: state.Stats.TotalPages,
		Window:     state.Window(),
		Selected:   state.SelectedIDs(),
	}
}

func (s *ConsoleService) loadState(ctx context.Context) (string, *console.State, error) {
	operator := auth.OperatorFromContext(ctx)
	if operator == "" {
		return "", nil, models.ErrNotAuthenticated
	}

	state, err := s.store.Get(ctx, operator)
	if errors.Is(err, models.ErrSessionNotFound) {
		return operator, console.NewState(), nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load console session: %w", err)
	}
	return operator, state, nil
}

func (s *ConsoleService) saveState(ctx context.Context, operator string, state *console.State) error {
	if err := s.store.Put(ctx, operator, state); err != nil {
		return fmt.Errorf("failed to save console session: %w", err)
	}
	return nil
}

// Snapshot returns the current console view without touching the backend.
// A fresh session comes back empty; the client follows up with Refresh.
func (s *ConsoleService) Snapshot(ctx context.Context) (*View, error) {
	_, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return viewOf(state), nil
}

// Refresh refetches the current page from the backend.
func (s *ConsoleService) Refresh(ctx context.Context) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, operator, state)
}

// SetFilters applies new criteria, rewinds to page one, and refetches.
func (s *ConsoleService) SetFilters(ctx context.Context, input console.FilterInput) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	state.SetFilters(input.Normalize())
	return s.fetch(ctx, operator, state)
}

// SetPage jumps to a page. Out-of-range jumps leave the console untouched
// and skip the backend entirely.
func (s *ConsoleService) SetPage(ctx context.Context, page int) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if !state.SetPage(page) {
		return viewOf(state), nil
	}
	return s.fetch(ctx, operator, state)
}

// SetPageSize switches the page size and refetches from page one.
func (s *ConsoleService) SetPageSize(ctx context.Context, size int) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if !state.SetPageSize(size) {
		return nil, fmt.Errorf("%w: unsupported page size %d", models.ErrBadRequest, size)
	}
	return s.fetch(ctx, operator, state)
}

// NextPage advances one page; at the last page it is a no-op.
func (s *ConsoleService) NextPage(ctx context.Context) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if !state.NextPage() {
		return viewOf(state), nil
	}
	return s.fetch(ctx, operator, state)
}

// PrevPage steps back one page; at the first page it is a no-op.
func (s *ConsoleService) PrevPage(ctx context.Context) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if !state.PrevPage() {
		return viewOf(state), nil
	}
	return s.fetch(ctx, operator, state)
}

// fetch runs one list cycle: reserve a sequence number, persist it, call
// the backend, then re-load the state and apply the page only if no newer
// fetch was issued while this one was in flight.
func (s *ConsoleService) fetch(ctx context.Context, operator string, state *console.State) (*View, error) {
	seq := state.IssueFetch()
	if err := s.saveState(ctx, operator, state); err != nil {
		return nil, err
	}

	page, res := s.directory.ListUsers(ctx, state.Page, state.PageSize, state.Filters)
	if !res.Success {
		return nil, res.Err()
	}

	current, err := s.store.Get(ctx, operator)
	if err != nil {
		if !errors.Is(err, models.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to reload console session: %w", err)
		}
		current = state
	}

	if !current.ApplyPage(page, seq) {
		s.logger.DebugContext(ctx, "discarding stale user page",
			slog.String("operator", operator),
			slog.Uint64("seq", seq),
		)
		return viewOf(current), nil
	}

	if err := s.saveState(ctx, operator, current); err != nil {
		return nil, err
	}
	return viewOf(current), nil
}

// ToggleSelection flips one row in or out of the selection set.
func (s *ConsoleService) ToggleSelection(ctx context.Context, userID string) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	state.ToggleSelected(userID)
	if err := s.saveState(ctx, operator, state); err != nil {
		return nil, err
	}
	return viewOf(state), nil
}

// SelectAll replaces the selection with every row on the current page.
func (s *ConsoleService) SelectAll(ctx context.Context) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	state.SelectAllVisible()
	if err := s.saveState(ctx, operator, state); err != nil {
		return nil, err
	}
	return viewOf(state), nil
}

// ClearSelection empties the selection set.
func (s *ConsoleService) ClearSelection(ctx context.Context) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	state.ClearSelection()
	if err := s.saveState(ctx, operator, state); err != nil {
		return nil, err
	}
	return viewOf(state), nil
}

// ApplyBulk sends one bulk update covering every selected row. An empty
// selection is rejected before any network traffic. On success the
// selection is cleared and the current page refetched; on failure the
// selection survives so the operator can retry.
func (s *ConsoleService) ApplyBulk(ctx context.Context, action console.BulkAction) (*View, error) {
	operator, state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	ids := state.SelectedIDs()
	if len(ids) == 0 {
		return nil, models.ErrNoSelection
	}

	delta, err := action.Delta()
	if err != nil {
		return nil, err
	}

	res := s.directory.BulkUpdateUsers(ctx, ids, delta)

	s.audit.Record(ctx, Entry{
		EventType:     models.AuditEventTypeBulkUpdate,
		Operator:      operator,
		ResourceType:  models.AuditResourceTypeUser,
		Action:        models.AuditActionUpdate,
		Success:       res.Success,
		FailureReason: failureReason(res),
		Metadata: models.AuditMetadata{
			"user_ids":    ids,
			"action_type": action.Type,
			"field":       action.Field,
			"value":       action.Value,
		},
	})

	if !res.Success {
		return nil, res.Err()
	}

	state.ClearSelection()
	return s.fetch(ctx, operator, state)
}

// ResetSession drops the operator's console session entirely.
func (s *ConsoleService) ResetSession(ctx context.Context) error {
	operator := auth.OperatorFromContext(ctx)
	if operator == "" {
		return models.ErrNotAuthenticated
	}
	if err := s.store.Delete(ctx, operator); err != nil {
		return fmt.Errorf("failed to reset console session: %w", err)
	}
	return nil
}

func failureReason(res backend.Result) string {
	if res.Success {
		return ""
	}
	return res.Message
}
