package domain

import "time"

// EntryStats is the single login counter, persisted as one JSON object.
type EntryStats struct {
	Count     int64     `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}
