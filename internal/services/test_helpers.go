package services

import (
	"context"
	"io"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/models"
)

// OperatorContext builds an authenticated context for service tests.
func OperatorContext(operator string) context.Context {
	claims := &models.TokenClaims{Username: operator}
	return auth.WithCredentials(context.Background(), "test-token", claims)
}

func okResult() backend.Result {
	return backend.Result{Success: true, StatusCode: 200}
}

func failedResult(status int, message string) backend.Result {
	return backend.Result{Success: false, StatusCode: status, Message: message}
}

// MockUserDirectory implements UserDirectory for testing
type MockUserDirectory struct {
	ListUsersFunc       func(ctx context.Context, page, limit int, criteria models.FilterCriteria) (*models.UserPage, backend.Result)
	BulkUpdateUsersFunc func(ctx context.Context, userIDs []string, delta backend.BulkDelta) backend.Result
}

func (m *MockUserDirectory) ListUsers(ctx context.Context, page, limit int, criteria models.FilterCriteria) (*models.UserPage, backend.Result) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, page, limit, criteria)
	}
	return &models.UserPage{}, okResult()
}

func (m *MockUserDirectory) BulkUpdateUsers(ctx context.Context, userIDs []string, delta backend.BulkDelta) backend.Result {
	if m.BulkUpdateUsersFunc != nil {
		return m.BulkUpdateUsersFunc(ctx, userIDs, delta)
	}
	return okResult()
}

// MockUserAccountAPI implements UserAccountAPI for testing
type MockUserAccountAPI struct {
	GetUserFunc            func(ctx context.Context, userID string) (*models.User, backend.Result)
	UpdateUserFunc         func(ctx context.Context, userID string, delta models.UserDelta) backend.Result
	DeleteUserFunc         func(ctx context.Context, userID string) backend.Result
	ChangeUserPasswordFunc func(ctx context.Context, userID, password string) backend.Result
}

func (m *MockUserAccountAPI) GetUser(ctx context.Context, userID string) (*models.User, backend.Result) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, failedResult(404, "user not found")
}

func (m *MockUserAccountAPI) UpdateUser(ctx context.Context, userID string, delta models.UserDelta) backend.Result {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, userID, delta)
	}
	return okResult()
}

func (m *MockUserAccountAPI) DeleteUser(ctx context.Context, userID string) backend.Result {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, userID)
	}
	return okResult()
}

func (m *MockUserAccountAPI) ChangeUserPassword(ctx context.Context, userID, password string) backend.Result {
	if m.ChangeUserPasswordFunc != nil {
		return m.ChangeUserPasswordFunc(ctx, userID, password)
	}
	return okResult()
}

// MockSessionStore implements session.Store for testing
type MockSessionStore struct {
	GetFunc    func(ctx context.Context, operator string) (*console.State, error)
	PutFunc    func(ctx context.Context, operator string, state *console.State) error
	DeleteFunc func(ctx context.Context, operator string) error
}

func (m *MockSessionStore) Get(ctx context.Context, operator string) (*console.State, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, operator)
	}
	return nil, models.ErrSessionNotFound
}

func (m *MockSessionStore) Put(ctx context.Context, operator string, state *console.State) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, operator, state)
	}
	return nil
}

func (m *MockSessionStore) Delete(ctx context.Context, operator string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, operator)
	}
	return nil
}

// MockAuditLogStore implements AuditLogStore for testing
type MockAuditLogStore struct {
	CreateFunc        func(ctx context.Context, log *models.AuditLog) (*models.AuditLog, error)
	GetRecentFunc     func(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
	GetByOperatorFunc func(ctx context.Context, operator string, limit, offset int) ([]*models.AuditLog, error)
}

func (m *MockAuditLogStore) Create(ctx context.Context, log *models.AuditLog) (*models.AuditLog, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	return log, nil
}

func (m *MockAuditLogStore) GetRecent(ctx context.Context, limit, offset int) ([]*models.AuditLog, error) {
	if m.GetRecentFunc != nil {
		return m.GetRecentFunc(ctx, limit, offset)
	}
	return []*models.AuditLog{}, nil
}

func (m *MockAuditLogStore) GetByOperator(ctx context.Context, operator string, limit, offset int) ([]*models.AuditLog, error) {
	if m.GetByOperatorFunc != nil {
		return m.GetByOperatorFunc(ctx, operator, limit, offset)
	}
	return []*models.AuditLog{}, nil
}

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	SendMaintenanceReportFunc func(ctx context.Context, to string, report *models.MaintenanceReport) error
}

func (m *MockEmailService) SendMaintenanceReport(ctx context.Context, to string, report *models.MaintenanceReport) error {
	if m.SendMaintenanceReportFunc != nil {
		return m.SendMaintenanceReportFunc(ctx, to, report)
	}
	return nil
}

// MockMaintenanceAPI implements MaintenanceAPI for testing
type MockMaintenanceAPI struct {
	RunMaintenanceFunc func(ctx context.Context) (*models.MaintenanceReport, backend.Result)
}

func (m *MockMaintenanceAPI) RunMaintenance(ctx context.Context) (*models.MaintenanceReport, backend.Result) {
	if m.RunMaintenanceFunc != nil {
		return m.RunMaintenanceFunc(ctx)
	}
	return &models.MaintenanceReport{}, okResult()
}

// MockCatalogAPI implements CatalogAPI for testing
type MockCatalogAPI struct {
	ListPaymentsFunc func(ctx context.Context) ([]models.Payment, backend.Result)

	ListMembershipPlansFunc  func(ctx context.Context) ([]models.MembershipPlan, backend.Result)
	GetMembershipPlanFunc    func(ctx context.Context, id int64) (*models.MembershipPlan, backend.Result)
	CreateMembershipPlanFunc func(ctx context.Context, plan models.MembershipPlan) backend.Result
	UpdateMembershipPlanFunc func(ctx context.Context, id int64, plan models.MembershipPlan) backend.Result
	DeleteMembershipPlanFunc func(ctx context.Context, id int64) backend.Result

	ListBannersFunc  func(ctx context.Context, category models.BannerCategory) ([]models.Banner, backend.Result)
	CreateBannerFunc func(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) backend.Result
	UpdateBannerFunc func(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) backend.Result
	DeleteBannerFunc func(ctx context.Context, category models.BannerCategory, id int64) backend.Result

	ListProviderConfigsFunc  func(ctx context.Context) ([]models.ProviderConfig, backend.Result)
	GetProviderConfigFunc    func(ctx context.Context, id int64) (*models.ProviderConfig, backend.Result)
	CreateProviderConfigFunc func(ctx context.Context, cfg models.ProviderConfig) backend.Result
	UpdateProviderConfigFunc func(ctx context.Context, id int64, cfg models.ProviderConfig) backend.Result
	DeleteProviderConfigFunc func(ctx context.Context, id int64) backend.Result
}

func (m *MockCatalogAPI) ListPayments(ctx context.Context) ([]models.Payment, backend.Result) {
	if m.ListPaymentsFunc != nil {
		return m.ListPaymentsFunc(ctx)
	}
	return []models.Payment{}, okResult()
}

func (m *MockCatalogAPI) ListMembershipPlans(ctx context.Context) ([]models.MembershipPlan, backend.Result) {
	if m.ListMembershipPlansFunc != nil {
		return m.ListMembershipPlansFunc(ctx)
	}
	return []models.MembershipPlan{}, okResult()
}

func (m *MockCatalogAPI) GetMembershipPlan(ctx context.Context, id int64) (*models.MembershipPlan, backend.Result) {
	if m.GetMembershipPlanFunc != nil {
		return m.GetMembershipPlanFunc(ctx, id)
	}
	return nil, failedResult(404, "plan not found")
}

func (m *MockCatalogAPI) CreateMembershipPlan(ctx context.Context, plan models.MembershipPlan) backend.Result {
	if m.CreateMembershipPlanFunc != nil {
		return m.CreateMembershipPlanFunc(ctx, plan)
	}
	return okResult()
}

func (m *MockCatalogAPI) UpdateMembershipPlan(ctx context.Context, id int64, plan models.MembershipPlan) backend.Result {
	if m.UpdateMembershipPlanFunc != nil {
		return m.UpdateMembershipPlanFunc(ctx, id, plan)
	}
	return okResult()
}

func (m *MockCatalogAPI) DeleteMembershipPlan(ctx context.Context, id int64) backend.Result {
	if m.DeleteMembershipPlanFunc != nil {
		return m.DeleteMembershipPlanFunc(ctx, id)
	}
	return okResult()
}

func (m *MockCatalogAPI) ListBanners(ctx context.Context, category models.BannerCategory) ([]models.Banner, backend.Result) {
	if m.ListBannersFunc != nil {
		return m.ListBannersFunc(ctx, category)
	}
	return []models.Banner{}, okResult()
}

func (m *MockCatalogAPI) CreateBanner(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) backend.Result {
	if m.CreateBannerFunc != nil {
		return m.CreateBannerFunc(ctx, category, name, fileName, file)
	}
	return okResult()
}

func (m *MockCatalogAPI) UpdateBanner(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) backend.Result {
	if m.UpdateBannerFunc != nil {
		return m.UpdateBannerFunc(ctx, category, id, name, fileName, file)
	}
	return okResult()
}

func (m *MockCatalogAPI) DeleteBanner(ctx context.Context, category models.BannerCategory, id int64) backend.Result {
	if m.DeleteBannerFunc != nil {
		return m.DeleteBannerFunc(ctx, category, id)
	}
	return okResult()
}

func (m *MockCatalogAPI) ListProviderConfigs(ctx context.Context) ([]models.ProviderConfig, backend.Result) {
	if m.ListProviderConfigsFunc != nil {
		return m.ListProviderConfigsFunc(ctx)
	}
	return []models.ProviderConfig{}, okResult()
}

func (m *MockCatalogAPI) GetProviderConfig(ctx context.Context, id int64) (*models.ProviderConfig, backend.Result) {
	if m.GetProviderConfigFunc != nil {
		return m.GetProviderConfigFunc(ctx, id)
	}
	return nil, failedResult(404, "config not found")
}

func (m *MockCatalogAPI) CreateProviderConfig(ctx context.Context, cfg models.ProviderConfig) backend.Result {
	if m.CreateProviderConfigFunc != nil {
		return m.CreateProviderConfigFunc(ctx, cfg)
	}
	return okResult()
}

func (m *MockCatalogAPI) UpdateProviderConfig(ctx context.Context, id int64, cfg models.ProviderConfig) backend.Result {
	if m.UpdateProviderConfigFunc != nil {
		return m.UpdateProviderConfigFunc(ctx, id, cfg)
	}
	return okResult()
}

func (m *MockCatalogAPI) DeleteProviderConfig(ctx context.Context, id int64) backend.Result {
	if m.DeleteProviderConfigFunc != nil {
		return m.DeleteProviderConfigFunc(ctx, id)
	}
	return okResult()
}
