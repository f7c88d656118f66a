package services

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is the business error every service returns. Code is a stable
// machine-readable identifier, Message the human-readable reason.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrRoomNotFound         = &Error{KindNotFound, "room_not_found", "room not found"}
	ErrBookingNotFound      = &Error{KindNotFound, "booking_not_found", "booking not found"}
	ErrUserNotFound         = &Error{KindNotFound, "user_not_found", "user not found"}
	ErrGuestProfileNotFound = &Error{KindNotFound, "guest_profile_not_found", "guest profile not found"}

	ErrForbidden          = &Error{KindForbidden, "forbidden", "not authorized to perform this action"}
	ErrInvalidCredentials = &Error{KindUnauthorized, "invalid_credentials", "invalid email or password"}
	ErrInvalidToken       = &Error{KindUnauthorized, "invalid_token", "invalid or expired token"}

	ErrEmailTaken          = &Error{KindConflict, "email_taken", "a user with this email already exists"}
	ErrRoomUnavailable     = &Error{KindConflict, "room_unavailable", "room is not available for booking"}
	ErrDatesConflict       = &Error{KindConflict, "dates_conflict", "room is already booked for the selected dates"}
	ErrDuplicateRoomNumber = &Error{KindConflict, "duplicate_room_number", "a room with this number already exists"}
	ErrRoomHasBookings     = &Error{KindConflict, "room_has_bookings", "room has active bookings and cannot be deleted"}
	ErrAlreadyCancelled    = &Error{KindConflict, "already_cancelled", "booking is already cancelled"}
	ErrBookingTerminal     = &Error{KindConflict, "booking_terminal", "booking is in a terminal state"}
	ErrInvalidTransition   = &Error{KindConflict, "invalid_transition", "status transition is not allowed"}
)

// Validationf builds a validation error naming the violated constraint.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: "validation", Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps a service error to the status the adapter layer should send.
func HTTPStatus(err error) int {
	var se *Error
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
