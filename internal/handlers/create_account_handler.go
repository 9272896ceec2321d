package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	firebaseutil "io.globetrek.app/internal/firebase"
	usermodels "io.globetrek.app/internal/models/account"
	createmodels "io.globetrek.app/internal/models/create_account"
)

// CreateAccount handles user account creation via Firebase
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req createmodels.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Validate required fields
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	ctx := context.Background()
	authClient, err := firebaseutil.GetAuthClient(h.firebaseApp)
	if err != nil {
		h.logError(c, err, "failed to initialize auth client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize auth client"})
		return
	}

	// Create user parameters
	params := (&auth.UserToCreate{}).
		Email(req.Email).
		EmailVerified(false).
		Password(req.Password).
		Disabled(false)

	// Set display name if provided
	if req.DisplayName != "" {
		params = params.DisplayName(req.DisplayName)
	}

	// Create user in Firebase
	userRecord, err := authClient.CreateUser(ctx, params)
	if err != nil {
		// Never echo Firebase's own error text for signup failures
		if auth.IsEmailAlreadyExists(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		h.logError(c, err, "firebase user creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user account"})
		return
	}

	// Create custom token for immediate login
	customToken, err := authClient.CustomToken(ctx, userRecord.UID)
	if err != nil {
		h.logError(c, err, "custom token generation failed", "user_uid", userRecord.UID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account created but failed to generate login token"})
		return
	}

	now := time.Now()
	user := &usermodels.User{
		UID:         userRecord.UID,
		DisplayName: userRecord.DisplayName,
		Email:       userRecord.Email,
		PhotoURL:    userRecord.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Store user in PostgreSQL
	insertQuery := `
		INSERT INTO users (uid, display_name, email, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid) DO NOTHING
	`
	if _, err := h.postgres.Exec(ctx, insertQuery, user.UID, user.DisplayName, user.Email, user.PhotoURL, now, now); err != nil {
		h.logError(c, err, "failed to store user", "user_uid", user.UID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user account"})
		return
	}

	// Cache the profile; best effort
	if userJSON, err := json.Marshal(user); err == nil {
		h.redis.Set(ctx, "user:"+user.UID, userJSON, 24*time.Hour)
	}

	response := createmodels.CreateAccountResponse{
		UID:         user.UID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Token:       customToken,
	}

	c.JSON(http.StatusCreated, response)
}
