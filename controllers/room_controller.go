package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hotelhub-backend/middleware"
	"hotelhub-backend/models"
	"hotelhub-backend/services"
	"hotelhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

type createRoomPayload struct {
	RoomNumber    string   `json:"roomNumber" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	Capacity      int      `json:"capacity" binding:"required"`
	PricePerNight float64  `json:"pricePerNight"`
	Floor         int      `json:"floor"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	Status        string   `json:"status"`
}

type availabilityPayload struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}

func principal(c *gin.Context) (services.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authorization token required")
	}
	return p, ok
}

// GetRooms is public; ?available=true narrows to rooms whose coarse flag is on.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	onlyAvailable := c.Query("available") == "true"
	rooms, err := ctrl.Rooms.List(onlyAvailable)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.Rooms.GetByID(id)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var payload createRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	amenities, _ := json.Marshal(payload.Amenities)
	room := models.Room{
		RoomNumber:    payload.RoomNumber,
		Type:          payload.Type,
		Capacity:      payload.Capacity,
		PricePerNight: payload.PricePerNight,
		Floor:         payload.Floor,
		Description:   payload.Description,
		Amenities:     datatypes.JSON(amenities),
		Status:        payload.Status,
	}

	if err := ctrl.Rooms.Create(p, &room); err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room, err := ctrl.Rooms.Update(p, id, patch)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) UpdateAvailability(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload availabilityPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsAvailable == nil {
		utils.JSONError(c, http.StatusBadRequest, "isAvailable must be a boolean value")
		return
	}

	room, err := ctrl.Rooms.SetAvailability(p, id, *payload.IsAvailable)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.Rooms.Delete(p, id); err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}

const maxRoomImages = 10

// UploadImages accepts a multipart form ("images", up to 10 files) and appends
// the stored paths to the room's image list.
func (ctrl *RoomController) UploadImages(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "multipart form with images required")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "no images in upload")
		return
	}
	if len(files) > maxRoomImages {
		utils.JSONError(c, http.StatusBadRequest, "too many images in one upload")
		return
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		path, sErr := services.SaveRoomImage(src, fh.Filename)
		src.Close()
		if sErr != nil {
			utils.JSONServiceError(c, sErr)
			return
		}
		paths = append(paths, path)
	}

	room, err := ctrl.Rooms.AddImages(p, id, paths)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
