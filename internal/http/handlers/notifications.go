package handlers

import (
	"net/http"
	"strconv"

	"boardinghouse-backend/internal/http/middleware"
	"boardinghouse-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/notifications
func ListNotifications(c *gin.Context) {
	repo := repositories.NotificationRepository{}
	out, err := repo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out})
}

// PUT /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid notification id", nil)
		return
	}

	repo := repositories.NotificationRepository{}
	if err := repo.MarkRead(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// PUT /api/notifications/read-all
func MarkAllNotificationsRead(c *gin.Context) {
	repo := repositories.NotificationRepository{}
	if err := repo.MarkAllRead(middleware.GetUserID(c)); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

// DELETE /api/notifications/:id
func DeleteNotification(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid notification id", nil)
		return
	}

	repo := repositories.NotificationRepository{}
	if err := repo.Delete(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}
