package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/http/middleware"
	"boardinghouse-backend/internal/repositories"
	"boardinghouse-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/tenants
func ListTenants(c *gin.Context) {
	repo := repositories.TenantRepository{}
	out, err := repo.ListWithRooms()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load tenants", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenants": out})
}

// GET /api/admin/bookings?status=Pending
func ListBookingsForAdmin(c *gin.Context) {
	status := domain.BookingStatus(c.DefaultQuery("status", string(domain.BookingPending)))
	if !status.Valid() {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown booking status", nil)
		return
	}

	repo := repositories.BookingRepository{}
	out, err := repo.ListByStatus(status)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load booking requests", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// PUT /api/admin/bookings/:id/decision
func DecideBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid booking id", nil)
		return
	}

	var body struct {
		Approval string `json:"approval"`
		Message  string `json:"message"`
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
	}
	if !BindJSONOrError(c, &body) {
		return
	}

	approve := false
	switch strings.ToLower(strings.TrimSpace(body.Approval)) {
	case "approve", "approved":
		approve = true
	case "decline", "declined":
		approve = false
	default:
		respondError(c, http.StatusBadRequest, "validation_error", "approval must be Approve or Decline", nil)
		return
	}

	svc := tenancyService(c)
	if err := svc.DecideBooking(id, middleware.GetUserID(c), services.BookingDecision{
		Approve:  approve,
		Message:  body.Message,
		CheckIn:  body.CheckIn,
		CheckOut: body.CheckOut,
	}); err != nil {
		RespondDomainError(c, err)
		return
	}

	if approve {
		c.JSON(http.StatusOK, gin.H{"message": "booking approved"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking declined"})
}

// POST /api/admin/tenants/:id/remove
func RemoveTenant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid tenant id", nil)
		return
	}

	svc := tenancyService(c)
	if err := svc.RemoveTenant(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tenant removed"})
}

// POST /api/admin/tenants/:id/reminder
func SendReminder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid tenant id", nil)
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if !BindJSONOrError(c, &body) {
		return
	}

	svc := tenancyService(c)
	if err := svc.SendReminder(id, body.Message); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reminder sent"})
}

func tenancyService(c *gin.Context) services.TenancyService {
	return services.TenancyService{RequestID: middleware.GetRequestID(c)}
}
