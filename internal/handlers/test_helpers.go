package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/models"
	"github.com/harmonymatch/admin-gateway/internal/services"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAuthContext attaches operator credentials the way the auth middleware
// would, for testing authenticated endpoints.
func WithAuthContext(req *http.Request, operator string) *http.Request {
	claims := &models.TokenClaims{Username: operator}
	ctx := auth.WithCredentials(req.Context(), "test-token", claims)
	return req.WithContext(ctx)
}

// WithChiRouteContext injects URL parameters for handlers read via chi.URLParam
func WithChiRouteContext(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockAuthAPI implements AuthAPI for testing
type MockAuthAPI struct {
	LoginFunc func(ctx context.Context, username, password string) (*models.LoginResult, backend.Result)
}

func (m *MockAuthAPI) Login(ctx context.Context, username, password string) (*models.LoginResult, backend.Result) {
	if m.LoginFunc == nil {
		return nil, backend.Result{Success: false, Message: "login failed", StatusCode: http.StatusUnauthorized}
	}
	return m.LoginFunc(ctx, username, password)
}

// MockUserAdmin implements UserAdmin for testing
type MockUserAdmin struct {
	ListUsersFunc      func(ctx context.Context, page, limit int, input console.FilterInput) (*models.UserPage, error)
	GetUserFunc        func(ctx context.Context, userID string) (*models.User, error)
	UpdateUserFunc     func(ctx context.Context, userID string, delta models.UserDelta) error
	DeleteUserFunc     func(ctx context.Context, userID string) error
	ChangePasswordFunc func(ctx context.Context, userID, password, confirm string) error
}

func (m *MockUserAdmin) ListUsers(ctx context.Context, page, limit int, input console.FilterInput) (*models.UserPage, error) {
	if m.ListUsersFunc == nil {
		return &models.UserPage{}, nil
	}
	return m.ListUsersFunc(ctx, page, limit, input)
}

func (m *MockUserAdmin) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if m.GetUserFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetUserFunc(ctx, userID)
}

func (m *MockUserAdmin) UpdateUser(ctx context.Context, userID string, delta models.UserDelta) error {
	if m.UpdateUserFunc == nil {
		return nil
	}
	return m.UpdateUserFunc(ctx, userID, delta)
}

func (m *MockUserAdmin) DeleteUser(ctx context.Context, userID string) error {
	if m.DeleteUserFunc == nil {
		return nil
	}
	return m.DeleteUserFunc(ctx, userID)
}

func (m *MockUserAdmin) ChangePassword(ctx context.Context, userID, password, confirm string) error {
	if m.ChangePasswordFunc == nil {
		return nil
	}
	return m.ChangePasswordFunc(ctx, userID, password, confirm)
}

// MockConsole implements Console for testing
type MockConsole struct {
	SnapshotFunc        func(ctx context.Context) (*services.View, error)
	RefreshFunc         func(ctx context.Context) (*services.View, error)
	SetFiltersFunc      func(ctx context.Context, input console.FilterInput) (*services.View, error)
	SetPageFunc         func(ctx context.Context, page int) (*services.View, error)
	SetPageSizeFunc     func(ctx context.Context, size int) (*services.View, error)
	NextPageFunc        func(ctx context.Context) (*services.View, error)
	PrevPageFunc        func(ctx context.Context) (*services.View, error)
	ToggleSelectionFunc func(ctx context.Context, userID string) (*services.View, error)
	SelectAllFunc       func(ctx context.Context) (*services.View, error)
	ClearSelectionFunc  func(ctx context.Context) (*services.View, error)
	ApplyBulkFunc       func(ctx context.Context, action console.BulkAction) (*services.View, error)
	ResetSessionFunc    func(ctx context.Context) error
}

func emptyView() *services.View {
	return &services.View{Page: 1, PageSize: console.DefaultPageSize}
}

func (m *MockConsole) Snapshot(ctx context.Context) (*services.View, error) {
	if m.SnapshotFunc == nil {
		return emptyView(), nil
	}
	return m.SnapshotFunc(ctx)
}

func (m *MockConsole) Refresh(ctx context.Context) (*services.View, error) {
	if m.RefreshFunc == nil {
		return emptyView(), nil
	}
	return m.RefreshFunc(ctx)
}

func (m *MockConsole) SetFilters(ctx context.Context, input console.FilterInput) (*services.View, error) {
	if m.SetFiltersFunc == nil {
		return emptyView(), nil
	}
	return m.SetFiltersFunc(ctx, input)
}

func (m *MockConsole) SetPage(ctx context.Context, page int) (*services.View, error) {
	if m.SetPageFunc == nil {
		return emptyView(), nil
	}
	return m.SetPageFunc(ctx, page)
}

func (m *MockConsole) SetPageSize(ctx context.Context, size int) (*services.View, error) {
	if m.SetPageSizeFunc == nil {
		return emptyView(), nil
	}
	return m.SetPageSizeFunc(ctx, size)
}

func (m *MockConsole) NextPage(ctx context.Context) (*services.View, error) {
	if m.NextPageFunc == nil {
		return emptyView(), nil
	}
	return m.NextPageFunc(ctx)
}

func (m *MockConsole) PrevPage(ctx context.Context) (*services.View, error) {
	if m.PrevPageFunc == nil {
		return emptyView(), nil
	}
	return m.PrevPageFunc(ctx)
}

func (m *MockConsole) ToggleSelection(ctx context.Context, userID string) (*services.View, error) {
	if m.ToggleSelectionFunc == nil {
		return emptyView(), nil
	}
	return m.ToggleSelectionFunc(ctx, userID)
}

func (m *MockConsole) SelectAll(ctx context.Context) (*services.View, error) {
	if m.SelectAllFunc == nil {
		return emptyView(), nil
	}
	return m.SelectAllFunc(ctx)
}

func (m *MockConsole) ClearSelection(ctx context.Context) (*services.View, error) {
	if m.ClearSelectionFunc == nil {
		return emptyView(), nil
	}
	return m.ClearSelectionFunc(ctx)
}

func (m *MockConsole) ApplyBulk(ctx context.Context, action console.BulkAction) (*services.View, error) {
	if m.ApplyBulkFunc == nil {
		return emptyView(), nil
	}
	return m.ApplyBulkFunc(ctx, action)
}

func (m *MockConsole) ResetSession(ctx context.Context) error {
	if m.ResetSessionFunc == nil {
		return nil
	}
	return m.ResetSessionFunc(ctx)
}

// MockMaintenance implements Maintenance for testing
type MockMaintenance struct {
	RunFunc func(ctx context.Context) (*models.MaintenanceReport, error)
}

func (m *MockMaintenance) Run(ctx context.Context) (*models.MaintenanceReport, error) {
	if m.RunFunc == nil {
		return &models.MaintenanceReport{}, nil
	}
	return m.RunFunc(ctx)
}

// MockCatalog implements Catalog for testing
type MockCatalog struct {
	ListPaymentsFunc func(ctx context.Context) ([]models.Payment, error)

	ListPlansFunc  func(ctx context.Context) ([]models.MembershipPlan, error)
	GetPlanFunc    func(ctx context.Context, id int64) (*models.MembershipPlan, error)
	CreatePlanFunc func(ctx context.Context, plan models.MembershipPlan) error
	UpdatePlanFunc func(ctx context.Context, id int64, plan models.MembershipPlan) error
	DeletePlanFunc func(ctx context.Context, id int64) error

	ListBannersFunc  func(ctx context.Context, category models.BannerCategory) ([]models.Banner, error)
	CreateBannerFunc func(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) error
	UpdateBannerFunc func(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) error
	DeleteBannerFunc func(ctx context.Context, category models.BannerCategory, id int64) error

	ListProviderConfigsFunc  func(ctx context.Context) ([]models.ProviderConfig, error)
	GetProviderConfigFunc    func(ctx context.Context, id int64) (*models.ProviderConfig, error)
	CreateProviderConfigFunc func(ctx context.Context, cfg models.ProviderConfig) error
	UpdateProviderConfigFunc func(ctx context.Context, id int64, cfg models.ProviderConfig) error
	DeleteProviderConfigFunc func(ctx context.Context, id int64) error
}

func (m *MockCatalog) ListPayments(ctx context.Context) ([]models.Payment, error) {
	if m.ListPaymentsFunc == nil {
		return []models.Payment{}, nil
	}
	return m.ListPaymentsFunc(ctx)
}

func (m *MockCatalog) ListPlans(ctx context.Context) ([]models.MembershipPlan, error) {
	if m.ListPlansFunc == nil {
		return []models.MembershipPlan{}, nil
	}
	return m.ListPlansFunc(ctx)
}

func (m *MockCatalog) GetPlan(ctx context.Context, id int64) (*models.MembershipPlan, error) {
	if m.GetPlanFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetPlanFunc(ctx, id)
}

func (m *MockCatalog) CreatePlan(ctx context.Context, plan models.MembershipPlan) error {
	if m.CreatePlanFunc == nil {
		return nil
	}
	return m.CreatePlanFunc(ctx, plan)
}

func (m *MockCatalog) UpdatePlan(ctx context.Context, id int64, plan models.MembershipPlan) error {
	if m.UpdatePlanFunc == nil {
		return nil
	}
	return m.UpdatePlanFunc(ctx, id, plan)
}

func (m *MockCatalog) DeletePlan(ctx context.Context, id int64) error {
	if m.DeletePlanFunc == nil {
		return nil
	}
	return m.DeletePlanFunc(ctx, id)
}

func (m *MockCatalog) ListBanners(ctx context.Context, category models.BannerCategory) ([]models.Banner, error) {
	if m.ListBannersFunc == nil {
		return []models.Banner{}, nil
	}
	return m.ListBannersFunc(ctx, category)
}

func (m *MockCatalog) CreateBanner(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) error {
	if m.CreateBannerFunc == nil {
		return nil
	}
	return m.CreateBannerFunc(ctx, category, name, fileName, file)
}

func (m *MockCatalog) UpdateBanner(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) error {
	if m.UpdateBannerFunc == nil {
		return nil
	}
	return m.UpdateBannerFunc(ctx, category, id, name, fileName, file)
}

func (m *MockCatalog) DeleteBanner(ctx context.Context, category models.BannerCategory, id int64) error {
	if m.DeleteBannerFunc == nil {
		return nil
	}
	return m.DeleteBannerFunc(ctx, category, id)
}

func (m *MockCatalog) ListProviderConfigs(ctx context.Context) ([]models.ProviderConfig, error) {
	if m.ListProviderConfigsFunc == nil {
		return []models.ProviderConfig{}, nil
	}
	return m.ListProviderConfigsFunc(ctx)
}

func (m *MockCatalog) GetProviderConfig(ctx context.Context, id int64) (*models.ProviderConfig, error) {
	if m.GetProviderConfigFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetProviderConfigFunc(ctx, id)
}

func (m *MockCatalog) CreateProviderConfig(ctx context.Context, cfg models.ProviderConfig) error {
	if m.CreateProviderConfigFunc == nil {
		return nil
	}
	return m.CreateProviderConfigFunc(ctx, cfg)
}

func (m *MockCatalog) UpdateProviderConfig(ctx context.Context, id int64, cfg models.ProviderConfig) error {
	if m.UpdateProviderConfigFunc == nil {
		return nil
	}
	return m.UpdateProviderConfigFunc(ctx, id, cfg)
}

func (m *MockCatalog) DeleteProviderConfig(ctx context.Context, id int64) error {
	if m.DeleteProviderConfigFunc == nil {
		return nil
	}
	return m.DeleteProviderConfigFunc(ctx, id)
}
