package backend

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// Promotional banner CRUD. Two independent resources (banner1/banner2);
// create and update take multipart form data with an optional image file
// which the gateway streams through to the backend unmodified. File
// storage stays on the backend's side.

func bannerPath(category models.BannerCategory) string {
	return "/" + string(category)
}

func (c *Client) ListBanners(ctx context.Context, category models.BannerCategory) ([]models.Banner, Result) {
	res := c.Get(ctx, bannerPath(category)+"/", nil)
	if !res.Success {
		return nil, res
	}

	var banners []models.Banner
	if err := res.Decode(&banners); err != nil {
		res.Success = false
		res.Message = "unexpected banner payload"
		return nil, res
	}
	return banners, res
}

func (c *Client) CreateBanner(ctx context.Context, category models.BannerCategory, name, fileName string, file io.Reader) Result {
	fields := map[string]string{"banner_name": name}
	return c.SendMultipart(ctx, http.MethodPost, bannerPath(category)+"/", fields, fileName, file)
}

func (c *Client) UpdateBanner(ctx context.Context, category models.BannerCategory, id int64, name, fileName string, file io.Reader) Result {
	fields := map[string]string{"banner_name": name}
	endpoint := bannerPath(category) + "/" + strconv.FormatInt(id, 10)
	return c.SendMultipart(ctx, http.MethodPut, endpoint, fields, fileName, file)
}

func (c *Client) DeleteBanner(ctx context.Context, category models.BannerCategory, id int64) Result {
	return c.Delete(ctx, bannerPath(category)+"/"+strconv.FormatInt(id, 10), nil)
}
