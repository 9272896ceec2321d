package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	journalmodels "io.globetrek.app/internal/models/journal"
	listmodels "io.globetrek.app/internal/models/list_journals"
)

// ListJournals handles fetching all journal entries for the authenticated
// user, newest trip first. Feeds both the list view and the map view.
func (h *JournalHandler) ListJournals(c *gin.Context) {
	// Get UID from context (set by auth middleware)
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userUID, ok := uid.(string)
	if !ok || userUID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	ctx := context.Background()

	entries, err := h.journals.ListByOwner(ctx, userUID)
	if err != nil {
		h.logError(c, err, "failed to list journal entries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journal entries"})
		return
	}

	if entries == nil {
		entries = []journalmodels.JournalEntry{}
	}

	c.JSON(http.StatusOK, listmodels.ListJournalsResponse{
		Journals: entries,
		Count:    len(entries),
	})
}
