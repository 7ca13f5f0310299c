package handlers

import (
	"net/http"
	"time"

	"boardinghouse-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/dashboard
func DashboardStats(c *gin.Context) {
	svc := services.DashboardService{}
	stats, err := svc.Stats(time.Now())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
