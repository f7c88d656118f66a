package services

import (
	"time"

	"hotelhub-backend/models"

	"gorm.io/gorm"
)

// AvailabilityService answers "is this room free for these dates". Stay
// intervals are half-open [checkIn, checkOut): a booking ending exactly when
// another begins does not conflict.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// findOverlapping returns the active bookings for roomID whose interval
// overlaps [checkIn, checkOut), optionally excluding one booking (used when
// re-checking an existing booking during an update). Takes the db handle as a
// parameter so it can run inside a caller's transaction.
func findOverlapping(db *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) ([]models.Booking, error) {
	q := db.
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveBookingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)

	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var conflicts []models.Booking
	if err := q.Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

func isRoomAvailable(db *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	conflicts, err := findOverlapping(db, roomID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// IsRoomAvailable reports whether no active booking for the room overlaps the
// queried interval. Callers must reject zero-length stays before calling.
func (s *AvailabilityService) IsRoomAvailable(roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	return isRoomAvailable(s.DB, roomID, checkIn, checkOut, excludeBookingID)
}

// FindOverlapping exposes the conflicting bookings themselves, used by the
// staff dashboard to explain why a date range is rejected.
func (s *AvailabilityService) FindOverlapping(roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) ([]models.Booking, error) {
	return findOverlapping(s.DB, roomID, checkIn, checkOut, excludeBookingID)
}
