package models

import (
	journalmodels "io.globetrek.app/internal/models/journal"
)

type GetJournalResponse struct {
	Journal journalmodels.JournalEntry `json:"journal"`
}
