package handlers

import (
	"net/http"
	"strconv"
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
	"boardinghouse-backend/internal/http/middleware"
	"boardinghouse-backend/internal/repositories"
	"boardinghouse-backend/internal/services"
	"boardinghouse-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createIntentRequest struct {
	Amount    *float64 `json:"amount"`
	BookingID string   `json:"bookingId"`
}

// POST /api/create-payment-intent
// Validates the amount before any gateway traffic, converts it to minor
// units and hands back the client secret.
func CreatePaymentIntent(c *gin.Context) {
	var req createIntentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.Amount == nil || *req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	intent, err := intentCreator.CreateIntent(utils.MinorUnits(*req.Amount), env.Currency, req.BookingID)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "payment", "create_intent", "gateway error: "+err.Error())
		if domain.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "payment", "create_intent", "intent issued for booking "+req.BookingID)
	c.JSON(http.StatusOK, gin.H{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

// GET /api/payments/config
func PaymentsConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"publishableKey": env.StripePublishableKey,
		"currency":       env.Currency,
	})
}

// GET  /api/payment-success/:id?payment_intent=..&redirect_status=..
// POST /api/bookings/:id/confirm-payment
// Both feed the reconciliation sequence; the GET form is the processor's
// redirect return channel, the POST form the direct-completion one.
func ConfirmPayment(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid booking id", nil)
		return
	}

	intentID := c.Query("payment_intent")
	redirectStatus := c.Query("redirect_status")
	if c.Request.Method == http.MethodPost {
		var body struct {
			PaymentIntentID string `json:"payment_intent"`
			RedirectStatus  string `json:"redirect_status"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			if body.PaymentIntentID != "" {
				intentID = body.PaymentIntentID
			}
			if body.RedirectStatus != "" {
				redirectStatus = body.RedirectStatus
			}
		}
	}

	svc := services.ReconcileService{
		Currency:  env.Currency,
		RequestID: middleware.GetRequestID(c),
	}
	result, err := svc.ConfirmPayment(services.ReconcileInput{
		BookingID:       bookingID,
		UserID:          middleware.GetUserID(c),
		PaymentIntentID: intentID,
		RedirectStatus:  redirectStatus,
	})
	if err != nil {
		if domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsUnauthorized(err) {
			RespondDomainError(c, err)
			return
		}
		// fatal persistence failure after the charge may already have
		// happened: never tell the user to retry blindly
		respondError(c, http.StatusInternalServerError, "reconciliation_failed",
			"Payment confirmation failed. Your payment may have been successful; please check your bookings or contact support.",
			gin.H{"actions": []string{"view_bookings", "contact_support"}})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /api/admin/payments
func ListPayments(c *gin.Context) {
	repo := repositories.PaymentRepository{}
	out, err := repo.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}

// PUT /api/admin/payments/:id/status
func UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payment id", nil)
		return
	}

	var body struct {
		Status string `json:"payment_status"`
	}
	if !BindJSONOrError(c, &body) {
		return
	}
	status := domain.PaymentStatus(body.Status)
	if !status.Valid() {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown payment status", nil)
		return
	}

	repo := repositories.PaymentRepository{}
	if err := repo.UpdateStatus(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment status updated"})
}

// POST /api/admin/payments — manual entry for cash/bank payments.
func CreateManualPayment(c *gin.Context) {
	var body struct {
		TenantID    int64    `json:"tenant_id"`
		RoomID      int64    `json:"room_id"`
		Amount      *float64 `json:"amount"`
		Method      string   `json:"payment_method"`
		Status      string   `json:"payment_status"`
		PaymentDate string   `json:"payment_date"`
		Notes       string   `json:"notes"`
	}
	if !BindJSONOrError(c, &body) {
		return
	}
	if body.TenantID <= 0 || body.RoomID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "tenant_id and room_id are required", nil)
		return
	}
	if body.Amount == nil || *body.Amount <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "amount must be positive", nil)
		return
	}
	status := domain.PaymentStatus(body.Status)
	if body.Status == "" {
		status = domain.PaymentPaid
	}
	if !status.Valid() {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown payment status", nil)
		return
	}
	if body.PaymentDate == "" {
		body.PaymentDate = utils.FormatDate(time.Now())
	}

	paidAt := time.Now()
	repo := repositories.PaymentRepository{}
	id, err := repo.Insert(models.Payment{
		TenantID:    body.TenantID,
		RoomID:      body.RoomID,
		RecordedBy:  middleware.GetUserID(c),
		PaymentDate: body.PaymentDate,
		Amount:      *body.Amount,
		Status:      status,
		ReferenceNo: "manual_" + uuid.NewString(),
		Method:      body.Method,
		Currency:    env.Currency,
		PaidAt:      &paidAt,
		Notes:       body.Notes,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save payment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/admin/payments/:id/receipt
func PaymentReceipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payment id", nil)
		return
	}

	svc := services.ReceiptService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
