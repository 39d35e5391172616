package domain

import "time"

// Image is one gallery entry. Src is either a data URI or a hosted URL.
// Seed marks entries that shipped with the portal; they sort before
// user uploads.
type Image struct {
	ID        string    `json:"id"`
	Src       string    `json:"src"`
	Alt       string    `json:"alt"`
	Caption   string    `json:"caption"`
	Hint      string    `json:"hint,omitempty"`
	Seed      bool      `json:"seed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
