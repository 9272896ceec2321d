package middleware

import (
	"bytes"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDMiddleware ensures every request has a request_id available in headers and context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// requestFields gathers the log fields shared by every middleware log line.
func requestFields(c *gin.Context) []interface{} {
	return []interface{}{
		"request_id", c.GetString("request_id"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
	}
}

// responseCapture tees the response body so error responses can be logged.
// Every endpoint returns small JSON payloads, so buffering is cheap.
type responseCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *responseCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestLoggingMiddleware emits one completion line per request, levelled
// by response status. Client and server errors include the response body,
// which on these JSON endpoints carries the user-facing error message.
func RequestLoggingMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		capture := &responseCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		status := c.Writer.Status()
		fields := append(requestFields(c),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"user_uid", c.GetString("uid"),
			"user_agent", c.Request.UserAgent(),
		)

		switch {
		case status >= 500:
			logger.Errorw("request failed", append(fields, "response", capture.body.String())...)
		case status >= 400:
			logger.Warnw("request rejected", append(fields, "response", capture.body.String())...)
		default:
			logger.Infow("request served", fields...)
		}
	}
}

// RecoveryMiddleware converts panics to 500 responses and logs the stack
func RecoveryMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered", append(requestFields(c),
					"panic", r,
					"stack", string(debug.Stack()),
				)...)
				c.AbortWithStatusJSON(500, gin.H{"error": "Internal server error", "request_id": c.GetString("request_id")})
			}
		}()
		c.Next()
	}
}
