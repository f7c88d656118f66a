package services

import (
	"errors"
	"fmt"
	"strings"

	"hotelhub-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GuestService manages guest profiles: each user keeps one, staff can browse
// and correct all of them.
type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

type GuestProfileInput struct {
	FullName       string
	Phone          string
	Address        string
	IdentityType   string
	IdentityNumber string
	Preferences    datatypes.JSON
	VIP            *bool
}

// GetProfile returns the acting user's own profile.
func (s *GuestService) GetProfile(p Principal) (*models.GuestProfile, error) {
	var profile models.GuestProfile
	if err := s.DB.Where("user_id = ?", p.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestProfileNotFound
		}
		return nil, fmt.Errorf("db error loading guest profile: %w", err)
	}
	return &profile, nil
}

// UpsertProfile creates or updates the acting user's profile. Empty fields in
// the input leave the stored values untouched. The VIP flag is staff-only and
// ignored here.
func (s *GuestService) UpsertProfile(p Principal, in GuestProfileInput) (*models.GuestProfile, error) {
	var profile models.GuestProfile
	err := s.DB.Where("user_id = ?", p.ID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db error loading guest profile: %w", err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		name := strings.TrimSpace(in.FullName)
		if name == "" {
			var user models.User
			if uErr := s.DB.First(&user, p.ID).Error; uErr == nil {
				name = user.Name
			}
		}
		profile = models.GuestProfile{UserID: p.ID, FullName: name}
	}

	applyProfileInput(&profile, in, false)

	if err := s.DB.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save guest profile: %w", err)
	}
	return &profile, nil
}

func applyProfileInput(profile *models.GuestProfile, in GuestProfileInput, allowVIP bool) {
	if v := strings.TrimSpace(in.FullName); v != "" {
		profile.FullName = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		profile.Phone = v
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		profile.Address = v
	}
	if v := strings.TrimSpace(in.IdentityType); v != "" {
		profile.IdentityType = v
	}
	if v := strings.TrimSpace(in.IdentityNumber); v != "" {
		profile.IdentityNumber = v
	}
	if len(in.Preferences) > 0 {
		profile.Preferences = in.Preferences
	}
	if allowVIP && in.VIP != nil {
		profile.VIP = *in.VIP
	}
}

// List returns all guest profiles with their users. Staff only.
func (s *GuestService) List(p Principal) ([]models.GuestProfile, error) {
	if !p.CanModerateBookings() {
		return nil, ErrForbidden
	}
	var profiles []models.GuestProfile
	if err := s.DB.Preload("User").Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve guest profiles: %w", err)
	}
	return profiles, nil
}

func (s *GuestService) GetByID(p Principal, id uint) (*models.GuestProfile, error) {
	if !p.CanModerateBookings() {
		return nil, ErrForbidden
	}
	var profile models.GuestProfile
	if err := s.DB.Preload("User").First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestProfileNotFound
		}
		return nil, fmt.Errorf("db error loading guest profile %d: %w", id, err)
	}
	return &profile, nil
}

// AdminUpdate lets staff correct any profile, including the VIP flag.
func (s *GuestService) AdminUpdate(p Principal, id uint, in GuestProfileInput) (*models.GuestProfile, error) {
	if !p.CanModerateBookings() {
		return nil, ErrForbidden
	}
	var profile models.GuestProfile
	if err := s.DB.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestProfileNotFound
		}
		return nil, fmt.Errorf("db error loading guest profile %d: %w", id, err)
	}

	applyProfileInput(&profile, in, true)

	if err := s.DB.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update guest profile: %w", err)
	}
	return &profile, nil
}
