package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harmonymatch/admin-gateway/internal/models"
	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// Max banner upload size. The backend rejects anything larger anyway; this
// just caps what the gateway buffers.
const maxBannerUploadBytes = 10 << 20

// Catalog is the service surface for plans, banners, provider configs, and
// payment history.
type Catalog interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)

	ListPlans(ctx context.Context) ([]models.MembershipPlan, error)
	GetPlan(ctx context.Context, id int64) (*models.MembershipPlan, error)
	CreatePlan(ctx context.Context, plan models.MembershipPlan) error
	UpdatePlan(ctx context.Context, id int64, plan models.MembershipPlan) error
	DeletePlan(ctx context.Context, id int64) error

	ListBanners(ctx context.Context, category models.BannerCategory) ([]models.Banner, error)
	CreateBanner(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) error
	UpdateBanner(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) error
	DeleteBanner(ctx context.Context, category models.BannerCategory, id int64) error

	ListProviderConfigs(ctx context.Context) ([]models.ProviderConfig, error)
	GetProviderConfig(ctx context.Context, id int64) (*models.ProviderConfig, error)
	CreateProviderConfig(ctx context.Context, cfg models.ProviderConfig) error
	UpdateProviderConfig(ctx context.Context, id int64, cfg models.ProviderConfig) error
	DeleteProviderConfig(ctx context.Context, id int64) error
}

// CatalogHandler serves the platform-configuration endpoints.
type CatalogHandler struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListPayments handles GET /payments
func (h *CatalogHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.catalog.ListPayments(r.Context())
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load payments")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, payments)
}

// ListPlans handles GET /plans
func (h *CatalogHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.catalog.ListPlans(r.Context())
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load membership plans")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, plans)
}

// GetPlan handles GET /plans/{id}
func (h *CatalogHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid plan id")
		return
	}

	plan, err := h.catalog.GetPlan(r.Context(), id)
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load membership plan")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, plan)
}

// CreatePlan handles POST /plans
func (h *CatalogHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.MembershipPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := h.catalog.CreatePlan(r.Context(), plan); err != nil {
		pkghttp.WriteFromError(w, err, err.Error())
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// UpdatePlan handles PUT /plans/{id}
func (h *CatalogHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid plan id")
		return
	}

	var plan models.MembershipPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := h.catalog.UpdatePlan(r.Context(), id, plan); err != nil {
		pkghttp.WriteFromError(w, err, err.Error())
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeletePlan handles DELETE /plans/{id}
func (h *CatalogHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid plan id")
		return
	}

	if err := h.catalog.DeletePlan(r.Context(), id); err != nil {
		pkghttp.WriteFromError(w, err, "failed to delete membership plan")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func bannerCategory(w http.ResponseWriter, r *http.Request) (models.BannerCategory, bool) {
	category, err := models.ParseBannerCategory(chi.URLParam(r, "category"))
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return "", false
	}
	return category, true
}

// ListBanners handles GET /banners/{category}
func (h *CatalogHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	category, ok := bannerCategory(w, r)
	if !ok {
		return
	}

	banners, err := h.catalog.ListBanners(r.Context(), category)
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load banners")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, banners)
}

// CreateBanner handles POST /banners/{category} (multipart)
func (h *CatalogHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	category, ok := bannerCategory(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxBannerUploadBytes); err != nil {
		pkghttp.WriteBadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		pkghttp.WriteBadRequest(w, "banner image is required")
		return
	}
	defer file.Close()

	name := r.FormValue("banner_name")
	if err := h.catalog.CreateBanner(r.Context(), category, name, header.Filename, file); err != nil {
		pkghttp.WriteFromError(w, err, err.Error())
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// UpdateBanner handles PUT /banners/{category}/{id} (multipart, file optional)
func (h *CatalogHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	category, ok := bannerCategory(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid banner id")
		return
	}

	if err := r.ParseMultipartForm(maxBannerUploadBytes); err != nil {
		pkghttp.WriteBadRequest(w, "invalid multipart form")
		return
	}

	var reader io.Reader
	fileName := ""
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
		fileName = header.Filename
	}

	name := r.FormValue("banner_name")
	if err := h.catalog.UpdateBanner(r.Context(), category, id, name, fileName, reader); err != nil {
		pkghttp.WriteFromError(w, err, err.Error())
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteBanner handles DELETE /banners/{category}/{id}
func (h *CatalogHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	category, ok := bannerCategory(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid banner id")
		return
	}

	if err := h.catalog.DeleteBanner(r.Context(), category, id); err != nil {
		pkghttp.WriteFromError(w, err, "failed to delete banner")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListProviderConfigs handles GET /provider-configs
func (h *CatalogHandler) ListProviderConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.catalog.ListProviderConfigs(r.Context())
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load provider configs")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, configs)
}

// GetProviderConfig handles GET /provider-configs/{id}
func (h *CatalogHandler) GetProviderConfig(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid config id")
		return
	}

	cfg, err := h.catalog.GetProviderConfig(r.Context(), id)
	if err != nil {
		pkghttp.WriteFromError(w, err, "failed to load provider config")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, cfg)
}

// CreateProviderConfig handles POST /provider-configs
func (h *CatalogHandler) CreateProviderConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.ProviderConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := h.catalog.CreateProviderConfig(r.Context(), cfg); err != nil {
		pkghttp.WriteFromError(w, err, err.Error())
		return
	}
	pkghttp.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// UpdateProviderConfig handles PUT /provider-configs/{id}
func (h *CatalogHandler) UpdateProviderConfig(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid config id")
		return
	}

	var cfg models.ProviderConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := h.catalog.UpdateProviderConfig(r.Context(), id, cfg); err != nil {
		pkghttp.WriteFromError(w, err, err.Error())
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteProviderConfig handles DELETE /provider-configs/{id}
func (h *CatalogHandler) DeleteProviderConfig(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, "invalid config id")
		return
	}

	if err := h.catalog.DeleteProviderConfig(r.Context(), id); err != nil {
		pkghttp.WriteFromError(w, err, "failed to delete provider config")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
