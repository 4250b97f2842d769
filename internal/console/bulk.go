package console

import (
	"fmt"

	"github.com/harmonymatch/admin-gateway/internal/backend"
	"github.com/harmonymatch/admin-gateway/internal/models"
)

// Bulk action kinds.
const (
	BulkApprove    = "approve"
	BulkDisapprove = "disapprove"
	BulkStatus     = "status"
)

// Bulk approval targets.
const (
	BulkFieldPhoto1       = "photo1"
	BulkFieldPhoto2       = "photo2"
	BulkFieldBio          = "bio"
	BulkFieldExpectations = "expectations"
)

var validBulkStatuses = map[string]bool{
	models.StatusActive:    true,
	models.StatusPaid:      true,
	models.StatusExclusive: true,
	models.StatusPending:   true,
	models.StatusBanned:    true,
	models.StatusDeleted:   true,
}

// BulkAction is the operator's intent for the selected rows: approve or
// disapprove one moderation field, or move everyone to a status.
type BulkAction struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// Delta translates the intent into the single payload the backend's bulk
// endpoint expects.
func (a BulkAction) Delta() (backend.BulkDelta, error) {
	switch a.Type {
	case BulkApprove, BulkDisapprove:
		approved := a.Type == BulkApprove
		var delta backend.BulkDelta
		switch a.Field {
		case BulkFieldPhoto1:
			delta.Photo1Approved = &approved
		case BulkFieldPhoto2:
			delta.Photo2Approved = &approved
		case BulkFieldBio:
			delta.BioApproved = &approved
		case BulkFieldExpectations:
			delta.ExpectationsApproved = &approved
		default:
			return backend.BulkDelta{}, fmt.Errorf("%w: unknown bulk field %q", models.ErrBadRequest, a.Field)
		}
		return delta, nil

	case BulkStatus:
		if !validBulkStatuses[a.Value] {
			return backend.BulkDelta{}, fmt.Errorf("%w: unknown status %q", models.ErrBadRequest, a.Value)
		}
		status := a.Value
		return backend.BulkDelta{Status: &status}, nil

	default:
		return backend.BulkDelta{}, fmt.Errorf("%w: unknown bulk action %q", models.ErrBadRequest, a.Type)
	}
}
