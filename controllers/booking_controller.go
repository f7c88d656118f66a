// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hotelhub-backend/services"
	"hotelhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

type createBookingPayload struct {
	RoomID          uint   `json:"roomId" binding:"required"`
	CheckInDate     string `json:"checkInDate" binding:"required"`
	CheckOutDate    string `json:"checkOutDate" binding:"required"`
	Guests          int    `json:"guests" binding:"required"`
	SpecialRequests string `json:"specialRequests"`
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

// parseDate accepts both plain dates and RFC3339 timestamps, the two formats
// the browser client sends.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "roomId, checkInDate, checkOutDate and guests are required")
		return
	}

	checkIn, ok := parseDate(payload.CheckInDate)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkInDate format, expected YYYY-MM-DD")
		return
	}
	checkOut, ok := parseDate(payload.CheckOutDate)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOutDate format, expected YYYY-MM-DD")
		return
	}

	booking, err := ctrl.Bookings.CreateBooking(p, services.CreateBookingInput{
		RoomID:          payload.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          payload.Guests,
		SpecialRequests: payload.SpecialRequests,
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.Bookings.GetBooking(p, id)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListBookings is the staff view with optional status / roomId / date filters.
func (ctrl *BookingController) ListBookings(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	filter := services.BookingFilter{Status: c.Query("status")}
	if raw := c.Query("roomId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid roomId filter")
			return
		}
		filter.RoomID = uint(id)
	}
	if raw := c.Query("fromDate"); raw != "" {
		t, ok := parseDate(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid fromDate format, expected YYYY-MM-DD")
			return
		}
		filter.From = &t
	}
	if raw := c.Query("toDate"); raw != "" {
		t, ok := parseDate(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid toDate format, expected YYYY-MM-DD")
			return
		}
		filter.To = &t
	}

	bookings, err := ctrl.Bookings.ListBookings(p, filter)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) MyBookings(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	bookings, err := ctrl.Bookings.ListUserBookings(p)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.Bookings.CancelBooking(p, id)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	booking, err := ctrl.Bookings.UpdateBookingStatus(p, id, payload.Status)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.Bookings.DeleteBooking(p, id); err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking deleted"})
}

func (ctrl *BookingController) Stats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	stats, err := ctrl.Bookings.Stats(p)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
