package models

// FilterCriteria is the canonical user-list filter set. All fields are
// optional and combined with AND server-side. Pointer booleans distinguish
// "don't care" from an explicit true/false.
type FilterCriteria struct {
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
}

// IsZero reports whether no filter is active.
func (f FilterCriteria) IsZero() bool {
	return f.Search == "" && f.Status == "" && f.Gender == "" && f.Plan == "" &&
		f.Country == "" && f.Online == nil && f.Photo1Approved == nil &&
		f.Photo2Approved == nil && f.BioApproved == nil && f.ExpectationsApproved == nil
}
