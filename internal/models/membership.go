package models

// MembershipPlan is a purchasable subscription tier with its communication
// allowances.
type MembershipPlan struct {
	ID           int64   `json:"id"`
	Name         string  `json:"membership_name"`
	INRPrice     float64 `json:"inr_price"`
	USDPrice     float64 `json:"usd_price"`
	VideoMinutes int     `json:"video_mins"`
	VoiceMinutes int     `json:"voice_mins"`
	ChatMessages int     `json:"chat_no"`
	Days         int     `json:"days"`
	Status       string  `json:"status"`
	IsActive     bool    `json:"is_active"`
}
