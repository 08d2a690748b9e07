package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/diagnostics"
)

// RunningMessage is the liveness text served on GET /.
const RunningMessage = "Paws & Hearts Backend Running"

// StatusHandler serves liveness and the store connectivity report.
type StatusHandler struct {
	db            diagnostics.Inspector
	urlConfigured bool
}

// NewStatusHandler builds a StatusHandler. db is nil when no store handle exists.
func NewStatusHandler(db diagnostics.Inspector, urlConfigured bool) *StatusHandler {
	return &StatusHandler{db: db, urlConfigured: urlConfigured}
}

func (h *StatusHandler) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/test", h.Test)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
}

// Root reports that the backend is running.
func (h *StatusHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": RunningMessage})
}

// Test returns the connectivity report; it always answers 200.
func (h *StatusHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, diagnostics.Probe(c.Request.Context(), h.db, h.urlConfigured))
}
