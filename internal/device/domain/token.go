package domain

import "time"

// Push-delivery providers the portal registers tokens for.
const (
	ProviderFCM  = "fcm"
	ProviderExpo = "expo"
)

// Token is one registered push device token. Upserted by token value:
// re-registering refreshes UpdatedAt instead of duplicating the record.
type Token struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id,omitempty"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
