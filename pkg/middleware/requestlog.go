package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/logger"
)

const requestIDKey = "request_id"

// RequestID tags every request with X-Request-ID, reusing the caller's value when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}

// RequestIDFrom returns the id set by RequestID, or "".
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AccessLog writes one line per request through the package logger.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		line := "%s %s %d %s rid=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), RequestIDFrom(c)}
		switch {
		case status >= 500:
			logger.Errorf(line, args...)
		case status >= 400:
			logger.Warnf(line, args...)
		default:
			logger.Infof(line, args...)
		}
	}
}
