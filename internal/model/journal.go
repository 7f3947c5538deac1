package model

import "time"

// JournalEntry is a free-form journal entry. At most one exists per
// (user, calendar date); writes go through an upsert keyed on that pair.
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Entry     string    `json:"entry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
