package services

import (
	"encoding/json"
	"fmt"
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
	"boardinghouse-backend/internal/repositories"
	"boardinghouse-backend/internal/utils"

	"github.com/google/uuid"
)

// Criticality splits the reconciliation sequence into two trust tiers:
// Fatal steps answer "was I charged and recorded", BestEffort steps keep the
// denormalized status fields consistent. A fatal failure aborts the sequence;
// a best-effort failure is recorded and the sequence continues.
type Criticality int

const (
	Fatal Criticality = iota
	BestEffort
)

func (c Criticality) String() string {
	if c == Fatal {
		return "fatal"
	}
	return "best-effort"
}

type reconcileStep struct {
	name        string
	criticality Criticality
	run         func() (stop bool, err error)
}

type ReconcileInput struct {
	BookingID       int64
	UserID          int64
	PaymentIntentID string
	RedirectStatus  string
}

type ReconcileWarning struct {
	Step  string `json:"step"`
	Error string `json:"error"`
}

type ReconcileResult struct {
	AlreadyProcessed bool                   `json:"already_processed"`
	Booking          models.BookingRequest  `json:"booking"`
	Room             models.Room            `json:"room"`
	TenantID         int64                  `json:"tenant_id"`
	PaymentID        int64                  `json:"payment_id,omitempty"`
	Warnings         []ReconcileWarning     `json:"warnings,omitempty"`
}

// ReconcileService turns one successful payment-intent outcome into a
// consistent set of booking / tenancy / ledger / room / notification updates.
type ReconcileService struct {
	Bookings      repositories.BookingRepository
	Tenants       repositories.TenantRepository
	Payments      repositories.PaymentRepository
	Transactions  repositories.TransactionRepository
	Notifications repositories.NotificationRepository
	Rooms         repositories.RoomRepository
	Profiles      repositories.ProfileRepository

	Currency  string
	RequestID string
	Now       func() time.Time
}

func (s ReconcileService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ReconcileService) currency() string {
	if s.Currency != "" {
		return s.Currency
	}
	return "PHP"
}

// ConfirmPayment runs the reconciliation sequence. Safe to re-invoke for the
// same payment intent: the second run finds the existing payment row and
// reports success without repeating any side effect.
func (s ReconcileService) ConfirmPayment(in ReconcileInput) (ReconcileResult, error) {
	if in.BookingID <= 0 {
		return ReconcileResult{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	if in.UserID <= 0 {
		return ReconcileResult{}, domain.UnauthorizedError{Msg: "sign in required"}
	}
	if in.RedirectStatus == "failed" {
		return ReconcileResult{}, domain.ValidationError{Field: "redirect_status", Msg: "payment was not completed"}
	}

	var (
		result   ReconcileResult
		booking  models.BookingRequest
		room     models.Room
		tenantID int64
		now      = s.now()
	)

	steps := []reconcileStep{
		{
			name:        "load booking",
			criticality: Fatal,
			run: func() (bool, error) {
				var err error
				booking, room, err = s.Bookings.GetOwnedWithRoom(in.BookingID, in.UserID)
				if err != nil {
					return false, err
				}
				result.Booking = booking
				result.Room = room
				return false, nil
			},
		},
		{
			name:        "idempotency check",
			criticality: Fatal,
			run: func() (bool, error) {
				paymentID, found, err := s.Payments.GetIDByIntentID(in.PaymentIntentID)
				if err != nil {
					return false, err
				}
				if found {
					result.AlreadyProcessed = true
					result.PaymentID = paymentID
					return true, nil
				}
				return false, nil
			},
		},
		{
			name:        "resolve tenant",
			criticality: Fatal,
			run: func() (bool, error) {
				tenant, found, err := s.Tenants.GetActiveByProfileRoom(in.UserID, booking.RoomID)
				if err != nil {
					return false, err
				}
				if found {
					tenantID = tenant.ID
					result.TenantID = tenantID
					return false, nil
				}

				name := ""
				if p, perr := s.Profiles.GetByID(in.UserID); perr == nil {
					name = p.FullName
				}
				tenantID, err = s.Tenants.Create(models.Tenant{
					RoomID:     booking.RoomID,
					ProfileID:  in.UserID,
					TenantName: name,
					MoveInDate: utils.FormatDate(now),
					Status:     domain.TenantActive,
				})
				if err != nil {
					return false, domain.InternalError{Msg: "tenant creation failed", Err: err}
				}
				result.TenantID = tenantID
				return false, nil
			},
		},
		{
			name:        "record payment",
			criticality: Fatal,
			run: func() (bool, error) {
				reference := in.PaymentIntentID
				if reference == "" {
					reference = "ref_" + uuid.NewString()
				}
				paidAt := now
				paymentID, inserted, err := s.Payments.InsertIdempotent(models.Payment{
					TenantID:              tenantID,
					RoomID:                booking.RoomID,
					RecordedBy:            in.UserID,
					PaymentDate:           utils.FormatDate(now),
					Amount:                room.PriceMonthly,
					Status:                domain.PaymentPaid,
					ReferenceNo:           reference,
					StripePaymentIntentID: in.PaymentIntentID,
					Method:                "stripe",
					Currency:              s.currency(),
					PaidAt:                &paidAt,
					Notes:                 fmt.Sprintf("Stripe payment for Room %s - Booking Request #%d", room.RoomNumber, booking.ID),
				})
				if err != nil {
					return false, domain.InternalError{Msg: "payment save failed", Err: err}
				}
				if !inserted {
					// lost the conditional-insert race to a concurrent
					// confirmation; treat exactly like the idempotency check
					result.AlreadyProcessed = true
					return true, nil
				}
				result.PaymentID = paymentID
				return false, nil
			},
		},
		{
			name:        "record gateway transaction",
			criticality: BestEffort,
			run: func() (bool, error) {
				if in.PaymentIntentID == "" {
					return false, nil
				}
				snapshot, _ := json.Marshal(map[string]any{
					"payment_intent": in.PaymentIntentID,
					"processed_at":   now.Format(time.RFC3339),
					"booking_id":     booking.ID,
				})
				return false, s.Transactions.Insert(models.PaymentTransaction{
					BookingID:             booking.ID,
					TransactionID:         "txn_" + uuid.NewString(),
					Method:                "stripe",
					Amount:                room.PriceMonthly,
					Currency:              s.currency(),
					Status:                "succeeded",
					StripePaymentIntentID: in.PaymentIntentID,
					StripeChargeID:        in.PaymentIntentID,
					GatewayResponse:       snapshot,
				})
			},
		},
		{
			name:        "approve booking",
			criticality: BestEffort,
			run: func() (bool, error) {
				if booking.Status == domain.BookingApproved {
					return false, nil
				}
				if !booking.Status.CanTransitionTo(domain.BookingApproved) {
					return false, fmt.Errorf("booking status %s cannot move to %s", booking.Status, domain.BookingApproved)
				}
				return false, s.Bookings.UpdateStatus(booking.ID, domain.BookingApproved)
			},
		},
		{
			name:        "occupy room",
			criticality: BestEffort,
			run: func() (bool, error) {
				return false, s.Rooms.UpdateStatus(booking.RoomID, domain.RoomOccupied)
			},
		},
		{
			name:        "notify payer",
			criticality: BestEffort,
			run: func() (bool, error) {
				return false, s.Notifications.Insert(models.Notification{
					UserID:   in.UserID,
					FromUser: "System",
					Message: fmt.Sprintf("Your payment for Room %s has been confirmed. Amount: %s. Your booking is now approved!",
						room.RoomNumber, utils.FormatPeso(room.PriceMonthly)),
					Type:   domain.NotifTypePayment,
					IsRead: false,
				})
			},
		},
	}

	for _, step := range steps {
		stop, err := step.run()
		if err != nil {
			if step.criticality == Fatal {
				utils.LogEvent(s.RequestID, "reconcile", step.name, "fatal: "+err.Error())
				return result, err
			}
			utils.LogEvent(s.RequestID, "reconcile", step.name, "warning: "+err.Error())
			result.Warnings = append(result.Warnings, ReconcileWarning{Step: step.name, Error: err.Error()})
		}
		if stop {
			break
		}
	}

	return result, nil
}
