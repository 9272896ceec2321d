package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	firebaseutil "io.globetrek.app/internal/firebase"
	deletemodels "io.globetrek.app/internal/models/delete_account"
)

// DeleteAccount removes the authenticated user's Firebase account, their
// users row, and all of their journal entries. Uploaded media files are
// left in the media store.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req deletemodels.DeleteAccountRequest
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

	if req.UID != "" && req.UID != userUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user's account"})
		return
	}

	ctx := context.Background()

	// Drop journal entries and their caches first
	if err := h.journals.DeleteByOwner(ctx, userUID); err != nil {
		h.logError(c, err, "failed to delete journal entries", "user_uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account data"})
		return
	}

	// Remove the users row; journal rows are already gone so the cascade
	// has nothing left to do
	if _, err := h.postgres.Exec(ctx, `DELETE FROM users WHERE uid = $1`, userUID); err != nil {
		h.logError(c, err, "failed to delete user row", "user_uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account data"})
		return
	}

	// Remove cached profile
	h.redis.Del(ctx, "user:"+userUID)

	// Finally remove the Firebase user
	authClient, err := firebaseutil.GetAuthClient(h.firebaseApp)
	if err != nil {
		h.logError(c, err, "failed to initialize auth client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize auth client"})
		return
	}
	if err := authClient.DeleteUser(ctx, userUID); err != nil {
		h.logError(c, err, "failed to delete firebase user", "user_uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account data removed but sign-in deletion failed"})
		return
	}

	c.JSON(http.StatusOK, deletemodels.DeleteAccountResponse{
		Success: true,
		Message: "Account deleted successfully",
	})
}
