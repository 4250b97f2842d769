package models

import "fmt"

// BannerCategory selects one of the two promotional banner slots.
type BannerCategory string

const (
	BannerPrimary   BannerCategory = "banner1"
	BannerSecondary BannerCategory = "banner2"
)

// ParseBannerCategory validates a category path segment.
func ParseBannerCategory(s string) (BannerCategory, error) {
	switch BannerCategory(s) {
	case BannerPrimary, BannerSecondary:
		return BannerCategory(s), nil
	}
	return "", fmt.Errorf("%w: unknown banner category %q", ErrBadRequest, s)
}

// Banner is a promotional banner record.
type Banner struct {
	ID   int64   `json:"id"`
	Name string  `json:"banner_name"`
	URL  *string `json:"banner_url,omitempty"`
}
