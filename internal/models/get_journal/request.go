package models

type GetJournalRequest struct {
	JournalID string `json:"journalId"`
}
