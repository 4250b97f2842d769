package models

// Account status values used by the matrimony backend.
const (
	StatusActive    = "Active"
	StatusPaid      = "Paid"
	StatusExclusive = "Exclusive"
	StatusPending   = "Pending"
	StatusBanned    = "Banned"
	StatusDeleted   = "Deleted"
)

// Membership plan identifiers as the backend enumerates them.
const (
	MembershipFree      = "Free"
	MembershipBasicChat = "basic_chat_pack"
	MembershipStandard  = "standard_pack"
	MembershipWeekly    = "weekly_pack"
	MembershipTwelveDay = "12-day_pack"
	MembershipMonthly   = "monthly_pack"
	MembershipExclusive = "exclusive_member"
)

// User is a member profile as returned by the backend admin API.
// JSON tags follow the backend wire names, several of which predate the
// current naming convention.
type User struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Mobile               string `json:"mobile"`
	MobileCode           string `json:"mobilecode"`
	Gender               string `json:"gender"`
	Country              string `json:"country"`
	City                 string `json:"city_name"`
	Age                  int    `json:"age"`
	DateOfBirth          string `json:"dob"`
	Bio                  string `json:"bio"`
	PartnerExpectations  string `json:"partnerExpectations"`
	Photo1               string `json:"photo1"`
	Photo2               string `json:"photo2"`
	Photo1Approved       bool   `json:"photo1Approve"`
	Photo2Approved       bool   `json:"photo2Approve"`
	BioApproved          bool   `json:"bio_approval"`
	ExpectationsApproved bool   `json:"partnerExpectations_approval"`
	Membership           string `json:"memtype"`
	MembershipExpiry     string `json:"membershipExpiryDate"`
	Status               string `json:"status"`
	Online               bool   `json:"onlineUsers"`
	LastSeen             string `json:"lastSeen"`
	ChatMessages         int    `json:"chat_msg"`
	VideoMinutes         int    `json:"video_min"`
	VoiceMinutes         int    `json:"voice_min"`
	ChatAllowed          bool   `json:"chatAllowed"`
	VideoCallAllowed     bool   `json:"videoCallAllowed"`
	AudioCallAllowed     bool   `json:"audioCallAllowed"`
}

// UserStats are the server-computed aggregate counts returned alongside a
// filtered page. They cover the entire filtered result set, not the page,
// and are authoritative over any client-side recomputation.
type UserStats struct {
	Total               int `json:"total"`
	TotalPages          int `json:"total_pages"`
	Active              int `json:"active"`
	Pending             int `json:"pending"`
	Banned              int `json:"banned"`
	Paid                int `json:"paid"`
	Exclusive           int `json:"exclusive"`
	Photo1Pending       int `json:"photo1_pending"`
	Photo2Pending       int `json:"photo2_pending"`
	BioPending          int `json:"bio_pending"`
	ExpectationsPending int `json:"expectations_pending"`
}

// UserPage is one fetched page of users plus the aggregate stats.
type UserPage struct {
	Users []User    `json:"users"`
	Stats UserStats `json:"stats"`
}
