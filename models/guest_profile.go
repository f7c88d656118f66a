package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GuestProfile holds the guest sheet a user fills in once: contact details,
// identity document and stay preferences. One profile per user.
type GuestProfile struct {
	gorm.Model

	UserID uint `gorm:"uniqueIndex;column:user_id" json:"user_id"`

	FullName string `json:"fullName"`
	Phone    string `gorm:"size:32" json:"phone"`
	Address  string `gorm:"type:text" json:"address"`

	IdentityType   string `gorm:"size:32" json:"identityType"` // passport, id-card, driver-license
	IdentityNumber string `gorm:"size:64" json:"identityNumber"`

	Preferences datatypes.JSON `json:"preferences,omitempty"`
	VIP         bool           `gorm:"column:vip;default:false" json:"vip"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
