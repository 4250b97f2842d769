package console

import (
	"strings"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// FilterInput is what operators' clients may send. It accepts both the
// current filter names and the legacy ones still used by older dashboard
// builds; Normalize collapses them into the one canonical FilterCriteria so
// the duplication never travels further than this boundary. When both names
// are present the current name wins.
type FilterInput struct {
	Search               string `json:"search,omitempty"`
	Status               string `json:"status,omitempty"`
	Gender               string `json:"gender,omitempty"`
	Plan                 string `json:"plans,omitempty"`
	Country              string `json:"country,omitempty"`
	Online               *bool  `json:"online,omitempty"`
	Photo1Approved       *bool  `json:"photo1,omitempty"`
	Photo2Approved       *bool  `json:"photo2,omitempty"`
	BioApproved          *bool  `json:"bioApproved,omitempty"`
	ExpectationsApproved *bool  `json:"expectationsApproved,omitempty"`

	// Legacy names
	LegacySearch string `json:"searchQuery,omitempty"`
	LegacyPlan   string `json:"memtype,omitempty"`
	LegacyPhoto1 *bool  `json:"photo1Approve,omitempty"`
	LegacyPhoto2 *bool  `json:"photo2Approve,omitempty"`
}

// Normalize resolves the current/legacy name pairs into canonical criteria.
func (in FilterInput) Normalize() models.FilterCriteria {
	criteria := models.FilterCriteria{
		Search:               strings.TrimSpace(in.Search),
		Status:               in.Status,
		Gender:               in.Gender,
		Plan:                 in.Plan,
		Country:              in.Country,
		Online:               in.Online,
		Photo1Approved:       in.Photo1Approved,
		Photo2Approved:       in.Photo2Approved,
		BioApproved:          in.BioApproved,
		ExpectationsApproved: in.ExpectationsApproved,
	}

	if criteria.Search == "" {
		criteria.Search = strings.TrimSpace(in.LegacySearch)
	}
	if criteria.Plan == "" {
		criteria.Plan = in.LegacyPlan
	}
	if criteria.Photo1Approved == nil {
		criteria.Photo1Approved = in.LegacyPhoto1
	}
	if criteria.Photo2Approved == nil {
		criteria.Photo2Approved = in.LegacyPhoto2
	}

	return criteria
}
