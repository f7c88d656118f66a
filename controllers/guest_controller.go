package controllers

import (
	"net/http"

	"hotelhub-backend/services"
	"hotelhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

type guestProfilePayload struct {
	FullName       string         `json:"fullName"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	IdentityType   string         `json:"identityType"`
	IdentityNumber string         `json:"identityNumber"`
	Preferences    datatypes.JSON `json:"preferences"`
	VIP            *bool          `json:"vip"`
}

func (p guestProfilePayload) toInput() services.GuestProfileInput {
	return services.GuestProfileInput{
		FullName:       p.FullName,
		Phone:          p.Phone,
		Address:        p.Address,
		IdentityType:   p.IdentityType,
		IdentityNumber: p.IdentityNumber,
		Preferences:    p.Preferences,
		VIP:            p.VIP,
	}
}

func (ctrl *GuestController) GetProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	profile, err := ctrl.Guests.GetProfile(p)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctrl *GuestController) UpsertProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var payload guestProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := ctrl.Guests.UpsertProfile(p, payload.toInput())
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctrl *GuestController) ListGuests(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	profiles, err := ctrl.Guests.List(p)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (ctrl *GuestController) GetGuest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	profile, err := ctrl.Guests.GetByID(p, id)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload guestProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := ctrl.Guests.AdminUpdate(p, id, payload.toInput())
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
