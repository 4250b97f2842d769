package handlers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

func TestListPlans(t *testing.T) {
	mock := &MockCatalog{
		ListPlansFunc: func(ctx context.Context) ([]models.MembershipPlan, error) {
			return []models.MembershipPlan{{ID: 1, Name: "monthly_pack"}}, nil
		},
	}
	handler := NewCatalogHandler(mock, slog.Default())

	req := NewTestRequest(t, "GET", "/plans", nil)
	w := httptest.NewRecorder()
	handler.ListPlans(w, req)

	var plans []models.MembershipPlan
	AssertJSONResponse(t, w, http.StatusOK, &plans)
	assert.Len(t, plans, 1)
	assert.Equal(t, "monthly_pack", plans[0].Name)
}

func TestUpdatePlan_BadID(t *testing.T) {
	handler := NewCatalogHandler(&MockCatalog{}, slog.Default())

	req := NewTestRequest(t, "PUT", "/plans/abc", models.MembershipPlan{Name: "x"})
	req = WithChiRouteContext(req, map[string]string{"id": "abc"})
	w := httptest.NewRecorder()
	handler.UpdatePlan(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestCreatePlan_ValidationError(t *testing.T) {
	mock := &MockCatalog{
		CreatePlanFunc: func(ctx context.Context, plan models.MembershipPlan) error {
			return models.ErrBadRequest
		},
	}
	handler := NewCatalogHandler(mock, slog.Default())

	req := NewTestRequest(t, "POST", "/plans", models.MembershipPlan{})
	w := httptest.NewRecorder()
	handler.CreatePlan(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestListBanners_InvalidCategory(t *testing.T) {
	handler := NewCatalogHandler(&MockCatalog{}, slog.Default())

	req := NewTestRequest(t, "GET", "/banners/banner9", nil)
	req = WithChiRouteContext(req, map[string]string{"category": "banner9"})
	w := httptest.NewRecorder()
	handler.ListBanners(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func multipartBody(t *testing.T, name, fileName, content string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if name != "" {
		if err := mw.WriteField("banner_name", name); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write([]byte(content))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestCreateBanner_Success(t *testing.T) {
	var gotName, gotFile string
	var gotContent []byte
	mock := &MockCatalog{
		CreateBannerFunc: func(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) error {
			assert.Equal(t, models.BannerPrimary, category)
			gotName = name
			gotFile = fileName
			gotContent, _ = io.ReadAll(file)
			return nil
		},
	}
	handler := NewCatalogHandler(mock, slog.Default())

	body, contentType := multipartBody(t, "Diwali Offer", "diwali.png", "fake-png-bytes")
	req := httptest.NewRequest("POST", "/banners/banner1", body)
	req.Header.Set("Content-Type", contentType)
	req = WithChiRouteContext(req, map[string]string{"category": "banner1"})
	w := httptest.NewRecorder()
	handler.CreateBanner(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Diwali Offer", gotName)
	assert.Equal(t, "diwali.png", gotFile)
	assert.Equal(t, "fake-png-bytes", string(gotContent))
}

func TestCreateBanner_MissingFile(t *testing.T) {
	handler := NewCatalogHandler(&MockCatalog{}, slog.Default())

	body, contentType := multipartBody(t, "No Image", "", "")
	req := httptest.NewRequest("POST", "/banners/banner1", body)
	req.Header.Set("Content-Type", contentType)
	req = WithChiRouteContext(req, map[string]string{"category": "banner1"})
	w := httptest.NewRecorder()
	handler.CreateBanner(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestUpdateBanner_FileOptional(t *testing.T) {
	var gotFileName string
	gotReaderNil := false
	mock := &MockCatalog{
		UpdateBannerFunc: func(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) error {
			gotFileName = fileName
			gotReaderNil = file == nil
			return nil
		},
	}
	handler := NewCatalogHandler(mock, slog.Default())

	body, contentType := multipartBody(t, "Renamed Only", "", "")
	req := httptest.NewRequest("PUT", "/banners/banner2/4", body)
	req.Header.Set("Content-Type", contentType)
	req = WithChiRouteContext(req, map[string]string{"category": "banner2", "id": "4"})
	w := httptest.NewRecorder()
	handler.UpdateBanner(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gotFileName)
	assert.True(t, gotReaderNil, "no file part should pass a nil reader")
}

func TestGetProviderConfig_NotFound(t *testing.T) {
	handler := NewCatalogHandler(&MockCatalog{}, slog.Default())

	req := NewTestRequest(t, "GET", "/provider-configs/7", nil)
	req = WithChiRouteContext(req, map[string]string{"id": "7"})
	w := httptest.NewRecorder()
	handler.GetProviderConfig(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestListPayments(t *testing.T) {
	mock := &MockCatalog{
		ListPaymentsFunc: func(ctx context.Context) ([]models.Payment, error) {
			return []models.Payment{{ID: "pay-1"}}, nil
		},
	}
	handler := NewCatalogHandler(mock, slog.Default())

	req := NewTestRequest(t, "GET", "/payments", nil)
	w := httptest.NewRecorder()
	handler.ListPayments(w, req)

	var payments []models.Payment
	AssertJSONResponse(t, w, http.StatusOK, &payments)
	assert.Len(t, payments, 1)
}
