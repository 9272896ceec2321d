package models

import "time"

// JournalEntry is one trip/moment recorded by a user. Entries are created
// once by the submission workflow and never mutated afterwards.
type JournalEntry struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Mishaps     string    `json:"mishaps,omitempty"`
	MediaURLs   []string  `json:"mediaUrls"`
	CreatedAt   time.Time `json:"createdAt"`
}
