package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows every origin, method and header with credentials. Browsers
// reject "*" together with credentials, so the caller's Origin is echoed.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		if origin := c.GetHeader("Origin"); origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			methods := c.GetHeader("Access-Control-Request-Method")
			if methods == "" {
				methods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
			}
			h.Set("Access-Control-Allow-Methods", methods)
			if headers := c.GetHeader("Access-Control-Request-Headers"); headers != "" {
				h.Set("Access-Control-Allow-Headers", headers)
			} else {
				h.Set("Access-Control-Allow-Headers", "*")
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
