package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoomStatusReady       = "Ready"
	RoomStatusOccupied    = "Occupied"
	RoomStatusCleaning    = "Cleaning"
	RoomStatusMaintenance = "Maintenance"
)

var roomTypes = []string{"Single", "Double", "Twin", "Suite", "Deluxe", "Standard"}

func IsValidRoomType(t string) bool {
	for _, rt := range roomTypes {
		if rt == t {
			return true
		}
	}
	return false
}

func IsValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusReady, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance:
		return true
	}
	return false
}

type Room struct {
	gorm.Model

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	Type          string  `json:"type" gorm:"size:32"`
	Capacity      int     `json:"capacity"`
	PricePerNight float64 `json:"pricePerNight" gorm:"column:price_per_night"`
	Floor         int     `json:"floor"`
	Description   string  `json:"description" gorm:"type:text"`

	// JSON columns: amenities is a string set, images an ordered list of paths.
	Amenities datatypes.JSON `json:"amenities" gorm:"column:amenities"`
	Images    datatypes.JSON `json:"images" gorm:"column:images"`

	Status string `json:"status" gorm:"size:32;default:Ready"`

	// Coarse flag: "is someone checked in right now". Date-range availability
	// is answered by the overlap check, not by this flag.
	IsAvailable bool `json:"isAvailable" gorm:"column:is_available;default:true"`
}
