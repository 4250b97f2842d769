package console

import (
	"time"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

const DefaultPageSize = 10

// State is one operator's console session: the active filters, the page
// cursor, the selection set, and the most recently applied user page. It is
// plain data so session stores can round-trip it through JSON.
//
// Seq and AppliedSeq implement last-request-wins for the fetch cycle. Every
// fetch takes a fresh sequence number from IssueFetch; when the response
// lands, ApplyPage only accepts it if no newer fetch has been issued in the
// meantime. A slow page-3 response can never clobber the page-5 results the
// operator has already moved on to.
type State struct {
	Filters  models.FilterCriteria `json:"filters"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`

	Users []models.User    `json:"users"`
	Stats models.UserStats `json:"stats"`

	Selected []string `json:"selected"`

	Seq        uint64    `json:"seq"`
	AppliedSeq uint64    `json:"applied_seq"`
	FetchedAt  time.Time `json:"fetched_at"`
}

func NewState() *State {
	return &State{
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// SetFilters replaces the active criteria, rewinds to the first page, and
// drops the selection, since the rows it referred to are about to change.
func (s *State) SetFilters(criteria models.FilterCriteria) {
	s.Filters = criteria
	s.Page = 1
	s.ClearSelection()
}

// SetPageSize switches the page size and rewinds to the first page. Sizes
// outside the supported set are rejected.
func (s *State) SetPageSize(size int) bool {
	if !ValidPageSize(size) {
		return false
	}
	if size == s.PageSize {
		return true
	}
	s.PageSize = size
	s.Page = 1
	s.ClearSelection()
	return true
}

// SetPage jumps to the given page. Requests outside [1, TotalPages] are a
// no-op and report false. When no page has been fetched yet TotalPages is
// zero and any forward jump is allowed; the fetch settles the real bound.
func (s *State) SetPage(page int) bool {
	if page < 1 {
		return false
	}
	if s.Stats.TotalPages > 0 && page > s.Stats.TotalPages {
		return false
	}
	if page != s.Page {
		s.Page = page
		s.ClearSelection()
	}
	return true
}

func (s *State) NextPage() bool { return s.SetPage(s.Page + 1) }
func (s *State) PrevPage() bool { return s.SetPage(s.Page - 1) }

// Window renders the page-number strip for the current cursor.
func (s *State) Window() []PageItem {
	total := s.Stats.TotalPages
	if total < 1 {
		total = 1
	}
	return PageWindow(s.Page, total)
}

// IssueFetch reserves the next fetch sequence number. The caller passes it
// back to ApplyPage with the response.
func (s *State) IssueFetch() uint64 {
	s.Seq++
	return s.Seq
}

// ApplyPage installs a fetched page if it is still the freshest one. A
// response whose sequence number is older than the newest issued fetch, or
// older than one already applied, is discarded and false is returned.
func (s *State) ApplyPage(page *models.UserPage, seq uint64) bool {
	if seq < s.Seq || seq <= s.AppliedSeq {
		return false
	}
	s.AppliedSeq = seq
	s.Users = page.Users
	s.Stats = page.Stats
	s.FetchedAt = time.Now().UTC()

	if s.Stats.TotalPages > 0 && s.Page > s.Stats.TotalPages {
		s.Page = s.Stats.TotalPages
	}
	return true
}

// MergeUser folds an already-accepted row update into the cached page so the
// console reflects it without a refetch. Unknown ids are ignored.
func (s *State) MergeUser(userID string, delta models.UserDelta) {
	for i := range s.Users {
		if s.Users[i].ID == userID {
			delta.ApplyTo(&s.Users[i])
			return
		}
	}
}

// RemoveUser drops a deleted row from the cached page and the selection.
func (s *State) RemoveUser(userID string) {
	for i := range s.Users {
		if s.Users[i].ID == userID {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			break
		}
	}
	s.SetSelected(userID, false)
}
