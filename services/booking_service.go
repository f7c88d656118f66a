// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hotelhub-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns the booking lifecycle: create, cancel, status
// transitions and hard delete, plus the queries the dashboards need.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

const maxGuestsPerBooking = 10

type CreateBookingInput struct {
	RoomID          uint
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	SpecialRequests string
}

type BookingFilter struct {
	Status string
	RoomID uint
	From   *time.Time
	To     *time.Time
}

type DashboardStats struct {
	TotalBookings    int64            `json:"totalBookings"`
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
	TotalRooms       int64            `json:"totalRooms"`
	AvailableRooms   int64            `json:"availableRooms"`
	Revenue          float64          `json:"revenue"`
}

func newReferenceCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK-" + raw[:10]
}

// truncateToDay drops the time-of-day component; stays are booked in whole nights.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func nightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// dateRangeContainsToday: checkIn <= today < checkOut.
func dateRangeContainsToday(checkIn, checkOut time.Time) bool {
	today := truncateToDay(time.Now())
	return !checkIn.After(today) && checkOut.After(today)
}

// lockForUpdate locks a row on engines that support FOR UPDATE. The
// post-insert overlap recount in CreateBooking keeps the double-booking guard
// correct on engines that do not (sqlite in tests).
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateBooking validates the request, verifies availability and persists the
// booking. The availability check and the insert run in one transaction with
// the room row locked, closing the check-then-act race between concurrent
// requests for the same room: exactly one of them commits.
func (s *BookingService) CreateBooking(p Principal, in CreateBookingInput) (*models.Booking, error) {
	checkIn := truncateToDay(in.CheckIn)
	checkOut := truncateToDay(in.CheckOut)

	if !checkOut.After(checkIn) {
		return nil, Validationf("check-out date must be after check-in date")
	}
	if in.Guests < 1 || in.Guests > maxGuestsPerBooking {
		return nil, Validationf("guests must be between 1 and %d", maxGuestsPerBooking)
	}

	var bookingID uint

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockForUpdate(tx).First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("db error loading room %d: %w", in.RoomID, err)
		}

		// Coarse room-level flag, independent of the date-range logic.
		if !room.IsAvailable {
			return ErrRoomUnavailable
		}

		ok, err := isRoomAvailable(tx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return fmt.Errorf("availability check failed: %w", err)
		}
		if !ok {
			return ErrDatesConflict
		}

		nights := nightsBetween(checkIn, checkOut)
		booking := models.Booking{
			ReferenceCode:   newReferenceCode(),
			RoomID:          room.ID,
			UserID:          p.ID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			Nights:          nights,
			Guests:          in.Guests,
			TotalPrice:      float64(nights) * room.PricePerNight,
			Status:          models.BookingStatusConfirmed,
			SpecialRequests: in.SpecialRequests,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		// Recount excluding our own row: a concurrent creator that slipped past
		// the first check is caught here and this transaction rolls back.
		conflicts, err := findOverlapping(tx, room.ID, checkIn, checkOut, booking.ID)
		if err != nil {
			return fmt.Errorf("availability recheck failed: %w", err)
		}
		if len(conflicts) > 0 {
			return ErrDatesConflict
		}

		// Only the currently occupying booking affects the coarse flag;
		// future-dated bookings leave it untouched.
		if dateRangeContainsToday(checkIn, checkOut) {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", room.ID).
				Update("is_available", false).Error; err != nil {
				return fmt.Errorf("failed to update room availability: %w", err)
			}
		}

		bookingID = booking.ID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.reload(bookingID)
}

func (s *BookingService) reload(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").Preload("User").First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

// GetBooking loads one booking with room and user attached. Owner or staff only.
func (s *BookingService) GetBooking(p Principal, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").Preload("User").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	if !p.CanAccessBooking(&booking) {
		return nil, ErrForbidden
	}
	return &booking, nil
}

// ListBookings is the staff view, filterable by status, room and an
// overlapping date window.
func (s *BookingService) ListBookings(p Principal, f BookingFilter) ([]models.Booking, error) {
	if !p.CanModerateBookings() {
		return nil, ErrForbidden
	}

	q := s.DB.Preload("Room").Preload("User").Order("created_at DESC")
	if f.Status != "" {
		if !models.IsValidBookingStatus(f.Status) {
			return nil, Validationf("status must be one of: pending, confirmed, cancelled, completed")
		}
		q = q.Where("status = ?", f.Status)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.From != nil && f.To != nil {
		q = q.Where("check_in_date <= ? AND check_out_date >= ?", *f.To, *f.From)
	} else if f.From != nil {
		q = q.Where("check_in_date >= ?", *f.From)
	} else if f.To != nil {
		q = q.Where("check_out_date <= ?", *f.To)
	}

	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// ListUserBookings returns the principal's own bookings, newest first.
func (s *BookingService) ListUserBookings(p Principal) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Room").
		Where("user_id = ?", p.ID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// CancelBooking moves a booking to cancelled. Owner or staff only; terminal
// bookings are rejected, never silently re-cancelled. The room's coarse flag
// is reset unconditionally; later bookings are not re-validated against the
// reset (known simplification).
func (s *BookingService) CancelBooking(p Principal, bookingID uint) (*models.Booking, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if !p.CanAccessBooking(&booking) {
			return ErrForbidden
		}
		if booking.Status == models.BookingStatusCancelled {
			return ErrAlreadyCancelled
		}
		if booking.Status == models.BookingStatusCompleted {
			return ErrBookingTerminal
		}

		if err := tx.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		if err := tx.Model(&models.Room{}).
			Where("id = ?", booking.RoomID).
			Update("is_available", true).Error; err != nil {
			return fmt.Errorf("failed to update room availability: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.reload(bookingID)
}

// allowedTransitions: pending -> confirmed -> completed, with cancellation
// from either active state. Terminal states have no exits.
var allowedTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateBookingStatus is the staff-facing transition endpoint.
func (s *BookingService) UpdateBookingStatus(p Principal, bookingID uint, newStatus string) (*models.Booking, error) {
	if !p.CanModerateBookings() {
		return nil, ErrForbidden
	}
	if !models.IsValidBookingStatus(newStatus) {
		return nil, Validationf("status must be one of: pending, confirmed, cancelled, completed")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if models.IsTerminalBookingStatus(booking.Status) {
			return ErrBookingTerminal
		}
		if !transitionAllowed(booking.Status, newStatus) {
			return ErrInvalidTransition
		}

		if err := tx.Model(&booking).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		switch {
		case models.IsTerminalBookingStatus(newStatus):
			// Leaving an active state frees the room.
			if err := tx.Model(&models.Room{}).
				Where("id = ?", booking.RoomID).
				Update("is_available", true).Error; err != nil {
				return fmt.Errorf("failed to update room availability: %w", err)
			}
		case newStatus == models.BookingStatusConfirmed:
			if dateRangeContainsToday(booking.CheckInDate, booking.CheckOutDate) {
				if err := tx.Model(&models.Room{}).
					Where("id = ?", booking.RoomID).
					Update("is_available", false).Error; err != nil {
					return fmt.Errorf("failed to update room availability: %w", err)
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.reload(bookingID)
}

// DeleteBooking hard-deletes a booking. Admin only. The room's coarse flag is
// reset regardless of the booking's prior state.
func (s *BookingService) DeleteBooking(p Principal, bookingID uint) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if err := tx.Unscoped().Delete(&booking).Error; err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}
		if err := tx.Model(&models.Room{}).
			Where("id = ?", booking.RoomID).
			Update("is_available", true).Error; err != nil {
			return fmt.Errorf("failed to update room availability: %w", err)
		}
		return nil
	})
}

// Stats feeds the admin dashboard: booking counts per status, room totals and
// revenue over non-cancelled bookings.
func (s *BookingService) Stats(p Principal) (*DashboardStats, error) {
	if !p.CanModerateBookings() {
		return nil, ErrForbidden
	}

	stats := &DashboardStats{BookingsByStatus: map[string]int64{}}

	if err := s.DB.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := s.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	for _, sc := range counts {
		stats.BookingsByStatus[sc.Status] = sc.Count
	}

	if err := s.DB.Model(&models.Room{}).Count(&stats.TotalRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	if err := s.DB.Model(&models.Room{}).
		Where("is_available = ?", true).
		Count(&stats.AvailableRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count available rooms: %w", err)
	}

	if err := s.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("status <> ?", models.BookingStatusCancelled).
		Scan(&stats.Revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return stats, nil
}
