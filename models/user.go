package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:150" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // store hashed password, never return in JSON
	Role      string         `gorm:"size:32;default:user" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
