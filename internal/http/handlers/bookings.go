package handlers

import (
	"net/http"
	"strconv"

	"boardinghouse-backend/internal/http/middleware"
	"boardinghouse-backend/internal/repositories"
	"boardinghouse-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var body services.BookingRequestInput
	if !BindJSONOrError(c, &body) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	id, err := svc.CreateRequest(middleware.GetUserID(c), body)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "booking request submitted, waiting for approval",
	})
}

// GET /api/bookings
func ListMyBookings(c *gin.Context) {
	repo := repositories.BookingRepository{}
	out, err := repo.ListByRequestor(middleware.GetUserID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid booking id", nil)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.CancelRequest(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}
