package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"io.globetrek.app/internal/journal"
	getmodels "io.globetrek.app/internal/models/get_journal"
)

// GetJournal handles fetching a single journal entry by ID
func (h *JournalHandler) GetJournal(c *gin.Context) {
	var req getmodels.GetJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

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

	if req.JournalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Journal ID is required"})
		return
	}

	ctx := context.Background()

	entry, err := h.journals.GetByID(ctx, req.JournalID, userUID)
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		case errors.Is(err, journal.ErrForbidden):
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		default:
			h.logError(c, err, "failed to fetch journal entry", "journal_id", req.JournalID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journal entry"})
		}
		return
	}

	c.JSON(http.StatusOK, getmodels.GetJournalResponse{Journal: *entry})
}
