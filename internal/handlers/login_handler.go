package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	firebaseutil "io.globetrek.app/internal/firebase"
	loginmodels "io.globetrek.app/internal/models/login"
)

// Login verifies a Firebase ID token obtained by the client SDK and
// returns the user's profile, creating the users row on first login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginmodels.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	ctx := context.Background()
	authClient, err := firebaseutil.GetAuthClient(h.firebaseApp)
	if err != nil {
		h.logError(c, err, "failed to initialize auth client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize auth client"})
		return
	}

	idToken, err := authClient.VerifyIDToken(ctx, req.Token)
	if err != nil {
		// Keep the message generic; Firebase error text is not for users
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var resp loginmodels.LoginResponse
	query := `SELECT uid, COALESCE(display_name, ''), email, COALESCE(photo_url, '') FROM users WHERE uid = $1`
	err = h.postgres.QueryRow(ctx, query, idToken.UID).Scan(&resp.UID, &resp.DisplayName, &resp.Email, &resp.PhotoURL)
	if errors.Is(err, pgx.ErrNoRows) {
		// First login on this server: pull the profile from Firebase
		userRecord, err := authClient.GetUser(ctx, idToken.UID)
		if err != nil {
			h.logError(c, err, "failed to fetch firebase user", "user_uid", idToken.UID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user profile"})
			return
		}

		now := time.Now()
		insertQuery := `
			INSERT INTO users (uid, display_name, email, photo_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (uid) DO NOTHING
		`
		if _, err := h.postgres.Exec(ctx, insertQuery, userRecord.UID, userRecord.DisplayName, userRecord.Email, userRecord.PhotoURL, now, now); err != nil {
			h.logError(c, err, "failed to store user", "user_uid", userRecord.UID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user profile"})
			return
		}

		resp = loginmodels.LoginResponse{
			UID:         userRecord.UID,
			DisplayName: userRecord.DisplayName,
			Email:       userRecord.Email,
			PhotoURL:    userRecord.PhotoURL,
		}
	} else if err != nil {
		h.logError(c, err, "failed to fetch user", "user_uid", idToken.UID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user profile"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
