package services

import (
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
	"boardinghouse-backend/internal/repositories"
)

type DashboardService struct {
	Rooms    repositories.RoomRepository
	Tenants  repositories.TenantRepository
	Bookings repositories.BookingRepository
	Payments repositories.PaymentRepository
}

type DashboardStats struct {
	TotalRooms       int                      `json:"total_rooms"`
	AvailableRooms   int                      `json:"available_rooms"`
	OccupiedRooms    int                      `json:"occupied_rooms"`
	ReservedRooms    int                      `json:"reserved_rooms"`
	ActiveTenants    int                      `json:"active_tenants"`
	TotalIncome      float64                  `json:"total_income"`
	MonthlyIncome    float64                  `json:"monthly_income"`
	PendingApprovals int                      `json:"pending_approvals"`
	PendingPayments  int                      `json:"pending_payments"`
	RecentPayments   []models.PaymentWithRefs `json:"recent_payments"`
}

func (s DashboardService) Stats(now time.Time) (DashboardStats, error) {
	var out DashboardStats

	byStatus, err := s.Rooms.CountByStatus()
	if err != nil {
		return out, err
	}
	out.AvailableRooms = byStatus[domain.RoomAvailable]
	out.OccupiedRooms = byStatus[domain.RoomOccupied]
	out.ReservedRooms = byStatus[domain.RoomReserved]
	out.TotalRooms = out.AvailableRooms + out.OccupiedRooms + out.ReservedRooms

	if out.ActiveTenants, err = s.Tenants.CountActive(); err != nil {
		return out, err
	}
	if out.TotalIncome, out.MonthlyIncome, err = s.Payments.IncomeTotals(now.Year(), now.Month()); err != nil {
		return out, err
	}
	if out.PendingApprovals, err = s.Bookings.CountPending(); err != nil {
		return out, err
	}
	if out.PendingPayments, err = s.Payments.CountPending(); err != nil {
		return out, err
	}
	if out.RecentPayments, err = s.Payments.ListRecent(5); err != nil {
		return out, err
	}
	return out, nil
}
