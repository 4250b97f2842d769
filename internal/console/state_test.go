package console

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

func pageOf(total, totalPages int, ids ...string) *models.UserPage {
	page := &models.UserPage{
		Stats: models.UserStats{Total: total, TotalPages: totalPages},
	}
	for _, id := range ids {
		page.Users = append(page.Users, models.User{ID: id})
	}
	return page
}

func fetchedState(t *testing.T, page *models.UserPage) *State {
	t.Helper()
	s := NewState()
	seq := s.IssueFetch()
	assert.True(t, s.ApplyPage(page, seq))
	return s
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.Empty(t, s.Selected)
}

func TestApplyPage_InstallsStats(t *testing.T) {
	s := fetchedState(t, pageOf(95, 10, "u1", "u2"))

	assert.Equal(t, 95, s.Stats.Total)
	assert.Equal(t, 10, s.Stats.TotalPages)
	assert.Len(t, s.Users, 2)
	assert.False(t, s.FetchedAt.IsZero())
}

func TestApplyPage_StaleResponseDiscarded(t *testing.T) {
	s := NewState()
	slowSeq := s.IssueFetch()
	freshSeq := s.IssueFetch()

	assert.True(t, s.ApplyPage(pageOf(50, 5, "fresh"), freshSeq))
	assert.False(t, s.ApplyPage(pageOf(99, 10, "stale"), slowSeq), "older fetch must not clobber a newer one")

	assert.Equal(t, "fresh", s.Users[0].ID)
	assert.Equal(t, 5, s.Stats.TotalPages)
}

func TestApplyPage_ClampsPageWhenResultShrank(t *testing.T) {
	s := fetchedState(t, pageOf(95, 10))
	assert.True(t, s.SetPage(8))

	seq := s.IssueFetch()
	assert.True(t, s.ApplyPage(pageOf(30, 3), seq))
	assert.Equal(t, 3, s.Page)
}

func TestSetPage_OutOfRangeIsNoOp(t *testing.T) {
	s := fetchedState(t, pageOf(95, 10))

	assert.False(t, s.SetPage(11))
	assert.Equal(t, 1, s.Page)
	assert.False(t, s.SetPage(0))
	assert.Equal(t, 1, s.Page)

	assert.True(t, s.SetPage(10))
	assert.Equal(t, 10, s.Page)
}

func TestNextPrev_ClampAtBounds(t *testing.T) {
	s := fetchedState(t, pageOf(30, 3))

	assert.False(t, s.PrevPage())
	assert.Equal(t, 1, s.Page)

	assert.True(t, s.NextPage())
	assert.True(t, s.NextPage())
	assert.Equal(t, 3, s.Page)
	assert.False(t, s.NextPage())
	assert.Equal(t, 3, s.Page)
}

func TestSetFilters_RewindsAndClearsSelection(t *testing.T) {
	s := fetchedState(t, pageOf(95, 10, "u1", "u2"))
	s.SetPage(4)
	s.SetSelected("u1", true)

	s.SetFilters(models.FilterCriteria{Status: models.StatusPending})

	assert.Equal(t, 1, s.Page)
	assert.Empty(t, s.Selected)
	assert.Equal(t, models.StatusPending, s.Filters.Status)
}

func TestSetPageSize_RewindsOnChange(t *testing.T) {
	s := fetchedState(t, pageOf(95, 10))
	s.SetPage(4)

	assert.True(t, s.SetPageSize(50))
	assert.Equal(t, 50, s.PageSize)
	assert.Equal(t, 1, s.Page)

	assert.False(t, s.SetPageSize(17))
	assert.Equal(t, 50, s.PageSize)
}

func TestSelection_Idempotent(t *testing.T) {
	s := NewState()

	s.SetSelected("u1", true)
	s.SetSelected("u1", true)
	assert.Equal(t, []string{"u1"}, s.Selected)

	s.SetSelected("u2", false)
	assert.Equal(t, []string{"u1"}, s.Selected)

	s.SetSelected("u1", false)
	s.SetSelected("u1", false)
	assert.Empty(t, s.Selected)
}

func TestToggleSelected_FlipsMembership(t *testing.T) {
	s := NewState()

	assert.True(t, s.ToggleSelected("u1"))
	assert.True(t, s.IsSelected("u1"))
	assert.False(t, s.ToggleSelected("u1"))
	assert.False(t, s.IsSelected("u1"))
}

func TestSelectAllVisible_ReplacesSelection(t *testing.T) {
	s := fetchedState(t, pageOf(7, 1, "u1", "u2", "u3", "u4", "u5", "u6", "u7"))
	s.SetSelected("stale-id", true)

	s.SelectAllVisible()

	assert.Equal(t, []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}, s.Selected)
	assert.False(t, s.IsSelected("stale-id"))
}

func TestSelectedIDs_ReturnsCopy(t *testing.T) {
	s := NewState()
	s.SetSelected("u1", true)

	ids := s.SelectedIDs()
	ids[0] = "mutated"

	assert.Equal(t, []string{"u1"}, s.Selected)
}

func TestPageChangeClearsSelection(t *testing.T) {
	s := fetchedState(t, pageOf(30, 3, "u1"))
	s.SetSelected("u1", true)

	assert.True(t, s.NextPage())
	assert.Empty(t, s.Selected)
}

func TestMergeUser_UpdatesCachedRow(t *testing.T) {
	s := fetchedState(t, pageOf(2, 1, "u1", "u2"))

	delta := models.UserDelta{}
	delta.SetBool(models.FieldPhoto1Approved, true)
	delta[models.FieldStatus] = models.StatusActive
	s.MergeUser("u2", delta)

	assert.Equal(t, models.StatusActive, s.Users[1].Status)
	assert.True(t, s.Users[1].Photo1Approved)
	assert.NotEqual(t, models.StatusActive, s.Users[0].Status)
}

func TestRemoveUser_DropsRowAndSelection(t *testing.T) {
	s := fetchedState(t, pageOf(3, 1, "u1", "u2", "u3"))
	s.SetSelected("u2", true)

	s.RemoveUser("u2")

	assert.Len(t, s.Users, 2)
	assert.False(t, s.IsSelected("u2"))
}

func TestState_JSONRoundTrip(t *testing.T) {
	s := fetchedState(t, pageOf(95, 10, "u1"))
	s.SetSelected("u1", true)
	s.Filters.Status = models.StatusPending

	raw, err := json.Marshal(s)
	assert.NoError(t, err)

	var restored State
	assert.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, s.Page, restored.Page)
	assert.Equal(t, s.Selected, restored.Selected)
	assert.Equal(t, s.Seq, restored.Seq)
	assert.Equal(t, s.Stats.TotalPages, restored.Stats.TotalPages)
}
