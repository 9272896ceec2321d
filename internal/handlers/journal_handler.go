package handlers

import (
	"context"

	"go.uber.org/zap"

	journalmodels "io.globetrek.app/internal/models/journal"
	"io.globetrek.app/internal/stats"
	"io.globetrek.app/internal/workflow"
)

// JournalReader is the read and stats-cache surface of the journal store
// used by the query handlers. *journal.Store satisfies it.
type JournalReader interface {
	GetByID(ctx context.Context, id, ownerUID string) (*journalmodels.JournalEntry, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]journalmodels.JournalEntry, error)
	CachedStats(ctx context.Context, ownerUID string) (*stats.TravelStats, bool)
	CacheStats(ctx context.Context, ownerUID string, travelStats stats.TravelStats)
}

type JournalHandler struct {
	submitter *workflow.Submitter
	journals  JournalReader
	logger    *zap.SugaredLogger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(submitter *workflow.Submitter, journals JournalReader, logger *zap.SugaredLogger) *JournalHandler {
	return &JournalHandler{
		submitter: submitter,
		journals:  journals,
		logger:    logger,
	}
}
