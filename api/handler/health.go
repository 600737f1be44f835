package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health returns the handler for GET /api/v1/health.
func Health(startTime time.Time, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": version,
		})
	}
}
