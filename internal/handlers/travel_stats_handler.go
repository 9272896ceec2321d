package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	statsmodels "io.globetrek.app/internal/models/travel_stats"
	"io.globetrek.app/internal/stats"
)

// GetTravelStats handles the dashboard stats request: distinct countries
// and cities visited, total journal entries, and total photos. Results are
// cached per user and invalidated whenever a new entry is created.
func (h *JournalHandler) GetTravelStats(c *gin.Context) {
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

	// Serve from cache when possible
	if cached, ok := h.journals.CachedStats(ctx, userUID); ok {
		c.JSON(http.StatusOK, statsmodels.TravelStatsResponse{Stats: *cached})
		return
	}

	entries, err := h.journals.ListByOwner(ctx, userUID)
	if err != nil {
		h.logError(c, err, "failed to load entries for travel stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute travel stats"})
		return
	}

	travelStats := stats.Aggregate(entries)
	h.journals.CacheStats(ctx, userUID, travelStats)

	c.JSON(http.StatusOK, statsmodels.TravelStatsResponse{Stats: travelStats})
}
