package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	firebaseutil "io.globetrek.app/internal/firebase"
)

const sessionCacheTTL = 15 * time.Minute

type cachedSession struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// AuthMiddleware verifies the Firebase ID token from the Authorization
// header and sets uid and email in the request context. Verified tokens
// are cached in Redis for a short window to keep hot paths off Firebase.
func AuthMiddleware(firebaseApp *firebase.App, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check if header starts with "Bearer "
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with 'Bearer '"})
			c.Abort()
			return
		}

		// Extract token
		token := strings.TrimPrefix(authHeader, bearerPrefix)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
			c.Abort()
			return
		}

		ctx := context.Background()

		// Step 1: Try the Redis session cache
		var session cachedSession
		cacheKey := "session_token:" + token
		if sessionJSON, err := redisClient.Get(ctx, cacheKey).Result(); err == nil {
			if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
				session = cachedSession{}
			}
		}

		// Step 2: Fall back to Firebase token verification
		if session.UID == "" {
			authClient, err := firebaseutil.GetAuthClient(firebaseApp)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize auth client"})
				c.Abort()
				return
			}

			idToken, err := authClient.VerifyIDToken(ctx, token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}

			session.UID = idToken.UID
			if email, ok := idToken.Claims["email"].(string); ok {
				session.Email = email
			}

			// Cache the verified session; failures here are harmless
			if sessionJSON, err := json.Marshal(session); err == nil {
				redisClient.Set(ctx, cacheKey, sessionJSON, sessionCacheTTL)
			}
		}

		// Set user identity in context for use in handlers
		c.Set("uid", session.UID)
		c.Set("email", session.Email)
		c.Next()
	}
}
