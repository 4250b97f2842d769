package backend

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestListUsers_BuildsCanonicalQuery(t *testing.T) {
	var gotQuery url.Values
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":{"users":[]},"meta":{"total":0}}`))
	}))

	criteria := models.FilterCriteria{
		Search:         "  priya ",
		Status:         models.StatusPending,
		Plan:           models.MembershipWeekly,
		Photo1Approved: boolPtr(false),
	}

	_, res := client.ListUsers(authedContext(), 3, 20, criteria)

	assert.True(t, res.Success)
	assert.Equal(t, "3", gotQuery.Get("page"))
	assert.Equal(t, "20", gotQuery.Get("limit"))
	assert.Equal(t, "priya", gotQuery.Get("search"), "search is trimmed")
	assert.Equal(t, "Pending", gotQuery.Get("status"))
	assert.Equal(t, "weekly_pack", gotQuery.Get("plans"))
	assert.Equal(t, "false", gotQuery.Get("photo1"))
	assert.False(t, gotQuery.Has("photo2"), "unset filters stay out of the query")
	assert.False(t, gotQuery.Has("memtype"), "legacy names never reach the wire")
}

func TestListUsers_ParsesMetaCounts(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": {"users": [{"id":"u1","name":"A"},{"id":"u2","name":"B"}]},
			"meta": {
				"total": 95, "pages": 10,
				"active_users": 40, "pending_users": 12, "banned_users": 3,
				"paid_users": 20, "exclusive_users": 5,
				"photo1_pending_users": 7, "photo2_pending_users": 6,
				"bio_approval_pending_users": 4,
				"partnerExpectations_approval_pending_users": 2
			}
		}`))
	}))

	page, res := client.ListUsers(authedContext(), 1, 10, models.FilterCriteria{})

	assert.True(t, res.Success)
	assert.Len(t, page.Users, 2)
	assert.Equal(t, 95, page.Stats.Total)
	assert.Equal(t, 10, page.Stats.TotalPages)
	assert.Equal(t, 40, page.Stats.Active)
	assert.Equal(t, 12, page.Stats.Pending)
	assert.Equal(t, 3, page.Stats.Banned)
	assert.Equal(t, 20, page.Stats.Paid)
	assert.Equal(t, 5, page.Stats.Exclusive)
	assert.Equal(t, 7, page.Stats.Photo1Pending)
	assert.Equal(t, 6, page.Stats.Photo2Pending)
	assert.Equal(t, 4, page.Stats.BioPending)
	assert.Equal(t, 2, page.Stats.ExpectationsPending)
}

func TestListUsers_OmittedCountsDefault(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"users":[{"id":"u1"},{"id":"u2"},{"id":"u3"}]},"meta":{}}`))
	}))

	page, res := client.ListUsers(authedContext(), 1, 10, models.FilterCriteria{})

	assert.True(t, res.Success)
	assert.Equal(t, 3, page.Stats.Total, "total falls back to the page length")
	assert.Equal(t, 1, page.Stats.TotalPages, "pages falls back to ceil(total/limit)")
	assert.Equal(t, 0, page.Stats.Active)
	assert.Equal(t, 0, page.Stats.Photo1Pending)
}

func TestListUsers_BareArrayResponse(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"u1"},{"id":"u2"}]`))
	}))

	page, res := client.ListUsers(authedContext(), 1, 10, models.FilterCriteria{})

	assert.True(t, res.Success)
	assert.Len(t, page.Users, 2)
	assert.Equal(t, 2, page.Stats.Total)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 10, totalPages(95, 10))
	assert.Equal(t, 1, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(5, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 1, totalPages(10, 0), "degenerate limit never divides by zero")
}

func TestUpdateUser_FormEncodedDelta(t *testing.T) {
	var gotPath, gotContentType string
	var gotForm url.Values
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		assert.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Write([]byte(`{"success":true}`))
	}))

	delta := models.UserDelta{}
	delta.SetBool(models.FieldPhoto1Approved, true)
	delta[models.FieldStatus] = models.StatusActive

	res := client.UpdateUser(authedContext(), "u42", delta)

	assert.True(t, res.Success)
	assert.Equal(t, "/users_key/u42", gotPath)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "true", gotForm.Get("photo1Approve"), "booleans travel as literal strings")
	assert.Equal(t, "Active", gotForm.Get("status"))
}

func TestBulkUpdateUsers_SinglePUTWithAllIDs(t *testing.T) {
	var gotPath string
	var gotPayload bulkUpdatePayload
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPut, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"success":true,"message":"updated"}`))
	}))

	ids := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}
	res := client.BulkUpdateUsers(authedContext(), ids, BulkDelta{Photo1Approved: boolPtr(true)})

	assert.True(t, res.Success)
	assert.Equal(t, "/users/u1", gotPath, "first selected id rides in the path")
	assert.Equal(t, ids, gotPayload.UserIDs)
	assert.NotNil(t, gotPayload.Photo1Approved)
	assert.True(t, *gotPayload.Photo1Approved)
	assert.Nil(t, gotPayload.Status)
	assert.Nil(t, gotPayload.Photo2Approved)
}

func TestDeleteUser_QueryParameter(t *testing.T) {
	var gotURL *url.URL
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL
		w.Write([]byte(`{"success":true}`))
	}))

	res := client.DeleteUser(authedContext(), "u9")

	assert.True(t, res.Success)
	assert.Equal(t, "/deleteUser", gotURL.Path)
	assert.Equal(t, "u9", gotURL.Query().Get("userId"))
}

func TestChangeUserPassword_QueryParams(t *testing.T) {
	var gotURL *url.URL
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotURL = r.URL
		w.Write([]byte(`{"success":true}`))
	}))

	res := client.ChangeUserPassword(authedContext(), "u7", "newpass123")

	assert.True(t, res.Success)
	assert.Equal(t, "/change-password", gotURL.Path)
	assert.Equal(t, "u7", gotURL.Query().Get("userId"))
	assert.Equal(t, "newpass123", gotURL.Query().Get("password"))
}
