package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// ListUsers fetches one page of users plus the aggregate counts for the
// whole filtered set. Counts the backend omits default to zero; total falls
// back to the page length and total pages to ceil(total/limit).
func (c *Client) ListUsers(ctx context.Context, page, limit int, criteria models.FilterCriteria) (*models.UserPage, Result) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	if s := strings.TrimSpace(criteria.Search); s != "" {
		params.Set("search", s)
	}
	if criteria.Status != "" {
		params.Set("status", criteria.Status)
	}
	if criteria.Gender != "" {
		params.Set("gender", criteria.Gender)
	}
	if criteria.Plan != "" {
		params.Set("plans", criteria.Plan)
	}
	if criteria.Country != "" {
		params.Set("country", criteria.Country)
	}
	setBoolParam(params, "online", criteria.Online)
	setBoolParam(params, "photo1", criteria.Photo1Approved)
	setBoolParam(params, "photo2", criteria.Photo2Approved)
	setBoolParam(params, "bioApproved", criteria.BioApproved)
	setBoolParam(params, "expectationsApproved", criteria.ExpectationsApproved)

	res := c.Get(ctx, "/users", params)
	if !res.Success {
		return nil, res
	}

	page2, err := parseUserPage(res.Data, limit)
	if err != nil {
		res.Success = false
		res.Message = "unexpected user list payload"
		return nil, res
	}
	return page2, res
}

func setBoolParam(params url.Values, key string, v *bool) {
	if v != nil {
		params.Set(key, strconv.FormatBool(*v))
	}
}

// userListEnvelope matches the two shapes the backend may respond with: a
// bare array of users, or {data: [...]|{users: [...]}, meta: {...}}.
type userListEnvelope struct {
	Data json.RawMessage        `json:"data"`
	Meta map[string]json.Number `json:"meta"`
}

func parseUserPage(body []byte, limit int) (*models.UserPage, error) {
	var users []models.User

	// Bare array first
	if err := json.Unmarshal(body, &users); err == nil {
		page := &models.UserPage{Users: users}
		fillStatFallbacks(&page.Stats, len(users), limit)
		return page, nil
	}

	var envelope userListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &users); err != nil {
			var inner struct {
				Users []models.User `json:"users"`
			}
			if err := json.Unmarshal(envelope.Data, &inner); err != nil {
				return nil, err
			}
			users = inner.Users
		}
	}

	page := &models.UserPage{Users: users}
	page.Stats = statsFromMeta(envelope.Meta)
	fillStatFallbacks(&page.Stats, len(users), limit)
	return page, nil
}

// Meta keys as the backend names them.
func statsFromMeta(meta map[string]json.Number) models.UserStats {
	return models.UserStats{
		Total:               metaInt(meta, "total"),
		TotalPages:          metaInt(meta, "pages"),
		Active:              metaInt(meta, "active_users"),
		Pending:             metaInt(meta, "pending_users"),
		Banned:              metaInt(meta, "banned_users"),
		Paid:                metaInt(meta, "paid_users"),
		Exclusive:           metaInt(meta, "exclusive_users"),
		Photo1Pending:       metaInt(meta, "photo1_pending_users"),
		Photo2Pending:       metaInt(meta, "photo2_pending_users"),
		BioPending:          metaInt(meta, "bio_approval_pending_users"),
		ExpectationsPending: metaInt(meta, "partnerExpectations_approval_pending_users"),
	}
}

func metaInt(meta map[string]json.Number, key string) int {
	if meta == nil {
		return 0
	}
	if n, ok := meta[key]; ok {
		if v, err := n.Int64(); err == nil {
			return int(v)
		}
	}
	return 0
}

func fillStatFallbacks(stats *models.UserStats, pageLen, limit int) {
	if stats.Total == 0 && pageLen > 0 {
		stats.Total = pageLen
	}
	if stats.TotalPages == 0 {
		stats.TotalPages = totalPages(stats.Total, limit)
	}
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, Result) {
	res := c.Get(ctx, "/users/"+url.PathEscape(userID), nil)
	if !res.Success {
		return nil, res
	}

	var user models.User
	if err := res.Decode(&user); err != nil {
		// Some endpoints wrap the record in {data: {...}}
		var wrapped struct {
			Data models.User `json:"data"`
		}
		if err2 := res.Decode(&wrapped); err2 != nil {
			res.Success = false
			res.Message = "unexpected user payload"
			return nil, res
		}
		user = wrapped.Data
	}
	return &user, res
}

// UpdateUser applies a partial field delta to one user. The endpoint takes
// form-encoded text, hence the string-valued delta.
func (c *Client) UpdateUser(ctx context.Context, userID string, delta models.UserDelta) Result {
	form := url.Values{}
	for field, value := range delta {
		form.Set(field, value)
	}
	return c.PutForm(ctx, "/users_key/"+url.PathEscape(userID), form)
}

// DeleteUser removes a user. The backend takes the id as a query parameter.
func (c *Client) DeleteUser(ctx context.Context, userID string) Result {
	params := url.Values{}
	params.Set("userId", userID)
	return c.Delete(ctx, "/deleteUser", params)
}

// bulkUpdatePayload carries the selection and the delta in one request.
type bulkUpdatePayload struct {
	UserIDs              []string `json:"user_ids"`
	Status               *string  `json:"status,omitempty"`
	Photo1Approved       *bool    `json:"photo1Approve,omitempty"`
	Photo2Approved       *bool    `json:"photo2Approve,omitempty"`
	BioApproved          *bool    `json:"bioApproved,omitempty"`
	ExpectationsApproved *bool    `json:"expectationsApproved,omitempty"`
}

// BulkDelta is the single field change applied to every selected user.
// Exactly one of Status or one approval pointer should be set.
type BulkDelta struct {
	Status               *string
	Photo1Approved       *bool
	Photo2Approved       *bool
	BioApproved          *bool
	ExpectationsApproved *bool
}

// IsZero reports whether the delta carries no change.
func (d BulkDelta) IsZero() bool {
	return d.Status == nil && d.Photo1Approved == nil && d.Photo2Approved == nil &&
		d.BioApproved == nil && d.ExpectationsApproved == nil
}

// BulkUpdateUsers applies one field delta to every id in one PUT. One
// request, not N: the backend owns any partial-failure semantics.
// The id in the path is ignored by the backend when user_ids is present.
func (c *Client) BulkUpdateUsers(ctx context.Context, userIDs []string, delta BulkDelta) Result {
	pathID := "bulk"
	if len(userIDs) > 0 {
		pathID = userIDs[0]
	}

	payload := bulkUpdatePayload{
		UserIDs:              userIDs,
		Status:               delta.Status,
		Photo1Approved:       delta.Photo1Approved,
		Photo2Approved:       delta.Photo2Approved,
		BioApproved:          delta.BioApproved,
		ExpectationsApproved: delta.ExpectationsApproved,
	}
	return c.PutJSON(ctx, "/users/"+url.PathEscape(pathID), payload)
}

// ChangeUserPassword sets a member's password; the backend takes both
// values as query parameters on a bodyless POST.
func (c *Client) ChangeUserPassword(ctx context.Context, userID, password string) Result {
	params := url.Values{}
	params.Set("userId", userID)
	params.Set("password", password)
	return c.PostQuery(ctx, "/change-password", params)
}
