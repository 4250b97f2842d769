package backend

import (
	"context"
	"strconv"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// Membership plan CRUD. The backend exposes a plain REST resource here.

func (c *Client) ListMembershipPlans(ctx context.Context) ([]models.MembershipPlan, Result) {
	res := c.Get(ctx, "/memberships", nil)
	if !res.Success {
		return nil, res
	}

	var plans []models.MembershipPlan
	if err := res.Decode(&plans); err != nil {
		res.Success = false
		res.Message = "unexpected membership payload"
		return nil, res
	}
	return plans, res
}

func (c *Client) GetMembershipPlan(ctx context.Context, id int64) (*models.MembershipPlan, Result) {
	res := c.Get(ctx, "/memberships/"+strconv.FormatInt(id, 10), nil)
	if !res.Success {
		return nil, res
	}

	var plan models.MembershipPlan
	if err := res.Decode(&plan); err != nil {
		res.Success = false
		res.Message = "unexpected membership payload"
		return nil, res
	}
	return &plan, res
}

func (c *Client) CreateMembershipPlan(ctx context.Context, plan models.MembershipPlan) Result {
	return c.PostJSON(ctx, "/memberships", plan)
}

func (c *Client) UpdateMembershipPlan(ctx context.Context, id int64, plan models.MembershipPlan) Result {
	return c.PutJSON(ctx, "/memberships/"+strconv.FormatInt(id, 10), plan)
}

func (c *Client) DeleteMembershipPlan(ctx context.Context, id int64) Result {
	return c.Delete(ctx, "/memberships/"+strconv.FormatInt(id, 10), nil)
}
