package models

// CreateJournalRequest carries the multipart form fields for a new journal
// entry. Photos arrive as multipart file parts alongside these fields.
type CreateJournalRequest struct {
	Title       string `form:"title"`
	Location    string `form:"location"`
	Date        string `form:"date"` // YYYY-MM-DD
	Description string `form:"description"`
	Mishaps     string `form:"mishaps"`
}
