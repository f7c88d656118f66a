package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// ActiveBookingStatuses are the statuses the overlap check considers:
// everything that still occupies (or will occupy) the room.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

func IsTerminalBookingStatus(s string) bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	// Room and owning user are fixed at creation time.
	RoomID uint `gorm:"index;column:room_id" json:"room_id"`
	UserID uint `gorm:"index;column:user_id" json:"user_id"`

	// Half-open stay interval [CheckInDate, CheckOutDate).
	CheckInDate  time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"checkOutDate"`

	Nights          int     `gorm:"column:nights" json:"nights"`
	Guests          int     `gorm:"column:guests" json:"guests"`
	TotalPrice      float64 `gorm:"column:total_price" json:"totalPrice"`
	Status          string  `gorm:"column:status;size:32;default:confirmed" json:"status"`
	SpecialRequests string  `gorm:"column:special_requests;type:text" json:"specialRequests,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
