package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/donation/service"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/logger"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/metrics"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/middleware"
)

type listQuery struct {
	Limit int64 `form:"limit,default=10" binding:"min=0"`
}

// RegisterDonationRoutes mounts the donation API on r.
func RegisterDonationRoutes(r gin.IRouter, svc *service.Service) {
	r.POST("/api/donations", func(c *gin.Context) {
		var req donation.Donation
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, donation.NewValidationError("body", err))
			return
		}
		id, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	r.GET("/api/donations", func(c *gin.Context) {
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondValidation(c, donation.NewValidationError("query", err))
			return
		}
		list, err := svc.List(c.Request.Context(), q.Limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})
}

// respondValidation answers a binding failure. Binding runs the validator
// before the service sees the request, so the failure is counted here.
func respondValidation(c *gin.Context, ve *donation.ValidationError) {
	metrics.ValidationFailures.Inc()
	writeValidation(c, ve)
}

func writeValidation(c *gin.Context, ve *donation.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": ve.Fields})
}

func respondError(c *gin.Context, err error) {
	// already counted by the service
	var ve *donation.ValidationError
	if errors.As(err, &ve) {
		writeValidation(c, ve)
		return
	}
	logger.Errorf("%s %s failed rid=%s: %v", c.Request.Method, c.Request.URL.Path, middleware.RequestIDFrom(c), err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
