package domain

import "time"

// Profile is a portal user record, keyed by lowercased email.
type Profile struct {
	ID        string    `json:"id"` // lowercased email
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	JoinedAt  time.Time `json:"joined_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
