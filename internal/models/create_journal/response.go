package models

import (
	journalmodels "io.globetrek.app/internal/models/journal"
)

type CreateJournalResponse struct {
	Journal journalmodels.JournalEntry `json:"journal"`
	Message string                     `json:"message"`
}
