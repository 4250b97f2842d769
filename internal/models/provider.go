package models

// ProviderConfig is a video/voice (RTC) provider configuration.
type ProviderConfig struct {
	ID             int64   `json:"id"`
	AppID          string  `json:"app_id"`
	AppCertificate *string `json:"app_certificate,omitempty"`
	AppName        *string `json:"app_name,omitempty"`
	Environment    *string `json:"environment,omitempty"`
	Status         bool    `json:"status"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}
