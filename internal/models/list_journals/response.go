package models

import (
	journalmodels "io.globetrek.app/internal/models/journal"
)

type ListJournalsResponse struct {
	Journals []journalmodels.JournalEntry `json:"journals"`
	Count    int                          `json:"count"`
}
