package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/harmonymatch/admin-gateway/internal/auth"
	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/models"
)

// CatalogAPI is the slice of the backend client covering membership plans,
// promotional banners, provider configs, and payment history.
type CatalogAPI interface {
	ListPayments(ctx context.Context) ([]models.Payment, backend.Result)

	ListMembershipPlans(ctx context.Context) ([]models.MembershipPlan, backend.Result)
	GetMembershipPlan(ctx context.Context, id int64) (*models.MembershipPlan, backend.Result)
	CreateMembershipPlan(ctx context.Context, plan models.MembershipPlan) backend.Result
	UpdateMembershipPlan(ctx context.Context, id int64, plan models.MembershipPlan) backend.Result
	DeleteMembershipPlan(ctx context.Context, id int64) backend.Result

	ListBanners(ctx context.Context, category models.BannerCategory) ([]models.Banner, backend.Result)
	CreateBanner(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) backend.Result
	UpdateBanner(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) backend.Result
	DeleteBanner(ctx context.Context, category models.BannerCategory, id int64) backend.Result

	ListProviderConfigs(ctx context.Context) ([]models.ProviderConfig, backend.Result)
	GetProviderConfig(ctx context.Context, id int64) (*models.ProviderConfig, backend.Result)
	CreateProviderConfig(ctx context.Context, cfg models.ProviderConfig) backend.Result
	UpdateProviderConfig(ctx context.Context, id int64, cfg models.ProviderConfig) backend.Result
	DeleteProviderConfig(ctx context.Context, id int64) backend.Result
}

// CatalogService fronts the platform's configuration surfaces. Mutations
// land in the audit trail; reads pass straight through.
type CatalogService struct {
	api    CatalogAPI
	audit  *AuditService
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(api CatalogAPI, audit *AuditService, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		api:    api,
		audit:  audit,
		logger: logger,
	}
}

// ListPayments returns the platform's payment history.
func (s *CatalogService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	payments, res := s.api.ListPayments(ctx)
	if !res.Success {
		return nil, res.Err()
	}
	return payments, nil
}

// ListPlans returns all membership plans.
func (s *CatalogService) ListPlans(ctx context.Context) ([]models.MembershipPlan, error) {
	plans, res := s.api.ListMembershipPlans(ctx)
	if !res.Success {
		return nil, res.Err()
	}
	return plans, nil
}

// GetPlan returns one membership plan.
func (s *CatalogService) GetPlan(ctx context.Context, id int64) (*models.MembershipPlan, error) {
	plan, res := s.api.GetMembershipPlan(ctx, id)
	if !res.Success {
		return nil, res.Err()
	}
	return plan, nil
}

// CreatePlan adds a membership plan.
func (s *CatalogService) CreatePlan(ctx context.Context, plan models.MembershipPlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}
	res := s.api.CreateMembershipPlan(ctx, plan)
	s.recordCatalogOp(ctx, models.AuditEventTypePlanOp, models.AuditResourceTypePlan, plan.Name, models.AuditActionCreate, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

// UpdatePlan modifies a membership plan.
func (s *CatalogService) UpdatePlan(ctx context.Context, id int64, plan models.MembershipPlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}
	res := s.api.UpdateMembershipPlan(ctx, id, plan)
	s.recordCatalogOp(ctx, models.AuditEventTypePlanOp, models.AuditResourceTypePlan, strconv.FormatInt(id, 10), models.AuditActionUpdate, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

// DeletePlan removes a membership plan.
func (s *CatalogService) DeletePlan(ctx context.Context, id int64) error {
	res := s.api.DeleteMembershipPlan(ctx, id)
	s.recordCatalogOp(ctx, models.AuditEventTypePlanOp, models.AuditResourceTypePlan, strconv.FormatInt(id, 10), models.AuditActionDelete, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

// ListBanners returns the banners in one category.
func (s *CatalogService) ListBanners(ctx context.Context, category models.BannerCategory) ([]models.Banner, error) {
	banners, res := s.api.ListBanners(ctx, category)
	if !res.Success {
		return nil, res.Err()
	}
	return banners, nil
}

// CreateBanner uploads a new banner image.
func (s *CatalogService) CreateBanner(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: banner name is required", models.ErrBadRequest)
	}
	if file == nil {
		return fmt.Errorf("%w: banner image is required", models.ErrBadRequest)
	}
	res := s.api.CreateBanner(ctx, category, name, fileName, file)
	s.recordCatalogOp(ctx, models.AuditEventTypeBannerOp, models.AuditResourceTypeBanner, name, models.AuditActionCreate, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

// UpdateBanner replaces a banner's name and, when a file is supplied, its
// image.
func (s *CatalogService) UpdateBanner(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: banner name is required", models.ErrBadRequest)
	}
	res := s.api.UpdateBanner(ctx, category, id, name, fileName, file)
	s.recordCatalogOp(ctx, models.AuditEventTypeBannerOp, models.AuditResourceTypeBanner, strconv.FormatInt(id, 10), models.AuditActionUpdate, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

// DeleteBanner removes a banner.
func (s *CatalogService) DeleteBanner(ctx context.Context, category models.BannerCategory, id int64) error {
	res := s.api.DeleteBanner(ctx, category, id)
	s.recordCatalogOp(ctx, models.AuditEventTypeBannerOp, models.AuditResourceTypeBanner, strconv.FormatInt(id, 10), models.AuditActionDelete, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

// ListProviderConfigs returns the video/voice provider credentials.
func (s *CatalogService) ListProviderConfigs(ctx context.Context) ([]models.ProviderConfig, error) {
	configs, res := s.api.ListProviderConfigs(ctx)
	if !res.Success {
		return nil, res.Err()
	}
	return configs, nil
}

// GetProviderConfig returns one provider config.
func (s *CatalogService) GetProviderConfig(ctx context.Context, id int64) (*models.ProviderConfig, error) {
	cfg, res := s.api.GetProviderConfig(ctx, id)
	if !res.Success {
		return nil, res.Err()
	}
	return cfg, nil
}

// CreateProviderConfig registers a new provider credential set.
func (s *CatalogService) CreateProviderConfig(ctx context.Context, cfg models.ProviderConfig) error {
	if err := validateProviderConfig(cfg); err != nil {
		return err
	}
	res := s.api.CreateProviderConfig(ctx, cfg)
	s.recordCatalogOp(ctx, models.AuditEventTypeProviderOp, models.AuditResourceTypeProvider, cfg.AppID, models.AuditActionCreate, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

// UpdateProviderConfig modifies a provider credential set.
func (s *CatalogService) UpdateProviderConfig(ctx context.Context, id int64, cfg models.ProviderConfig) error {
	if err := validateProviderConfig(cfg); err != nil {
		return err
	}
	res := s.api.UpdateProviderConfig(ctx, id, cfg)
	s.recordCatalogOp(ctx, models.AuditEventTypeProviderOp, models.AuditResourceTypeProvider, strconv.FormatInt(id, 10), models.AuditActionUpdate, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

// DeleteProviderConfig removes a provider credential set.
func (s *CatalogService) DeleteProviderConfig(ctx context.Context, id int64) error {
	res := s.api.DeleteProviderConfig(ctx, id)
	s.recordCatalogOp(ctx, models.AuditEventTypeProviderOp, models.AuditResourceTypeProvider, strconv.FormatInt(id, 10), models.AuditActionDelete, res)
	if !res.Success {
		return res.Err()
	}
	return nil
}

func (s *CatalogService) recordCatalogOp(ctx context.Context, eventType, resourceType, resourceID, action string, res backend.Result) {
	s.audit.Record(ctx, Entry{
		EventType:     eventType,
		Operator:      auth.OperatorFromContext(ctx),
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		Action:        action,
		Success:       res.Success,
		FailureReason: failureReason(res),
	})
}

func validatePlan(plan models.MembershipPlan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return fmt.Errorf("%w: plan name is required", models.ErrBadRequest)
	}
	if plan.INRPrice < 0 || plan.USDPrice < 0 {
		return fmt.Errorf("%w: plan prices cannot be negative", models.ErrBadRequest)
	}
	if plan.Days <= 0 {
		return fmt.Errorf("%w: plan duration must be positive", models.ErrBadRequest)
	}
	return nil
}

func validateProviderConfig(cfg models.ProviderConfig) error {
	if strings.TrimSpace(cfg.AppID) == "" {
		return fmt.Errorf("%w: app id is required", models.ErrBadRequest)
	}
	if cfg.AppCertificate == nil || strings.TrimSpace(*cfg.AppCertificate) == "" {
		return fmt.Errorf("%w: app certificate is required", models.ErrBadRequest)
	}
	return nil
}
