package backend

import (
	"context"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// ListPayments returns the full payment history. The backend does not
// paginate this endpoint; any narrowing happens in the browser.
func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, Result) {
	res := c.Get(ctx, "/payments", nil)
	if !res.Success {
		return nil, res
	}

	var payments []models.Payment
	if err := res.Decode(&payments); err != nil {
		var wrapped struct {
			Data []models.Payment `json:"data"`
		}
		if err2 := res.Decode(&wrapped); err2 != nil {
			res.Success = false
			res.Message = "unexpected payments payload"
			return nil, res
		}
		payments = wrapped.Data
	}
	return payments, res
}
