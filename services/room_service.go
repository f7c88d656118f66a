package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hotelhub-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomService owns room inventory: CRUD, the availability/status setters the
// booking lifecycle calls, and image management.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// isDuplicateErr detects a unique-index violation on MySQL (errno 1062) and on
// sqlite, which the tests run against.
func isDuplicateErr(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func validateRoom(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return Validationf("room number is required")
	}
	if !models.IsValidRoomType(room.Type) {
		return Validationf("type must be one of: Single, Double, Twin, Suite, Deluxe, Standard")
	}
	if room.Capacity < 1 {
		return Validationf("capacity must be at least 1")
	}
	if room.PricePerNight < 0 {
		return Validationf("price per night must not be negative")
	}
	if room.Status != "" && !models.IsValidRoomStatus(room.Status) {
		return Validationf("status must be one of: Ready, Occupied, Cleaning, Maintenance")
	}
	return nil
}

func (s *RoomService) Create(p Principal, room *models.Room) error {
	if !p.CanManageRooms() {
		return ErrForbidden
	}
	if err := validateRoom(room); err != nil {
		return err
	}
	if room.Status == "" {
		room.Status = models.RoomStatusReady
	}
	room.IsAvailable = true

	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateRoomNumber
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// List returns rooms, optionally only the ones whose coarse flag is on.
func (s *RoomService) List(onlyAvailable bool) ([]models.Room, error) {
	q := s.DB.Order("room_number ASC")
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("db error loading room %d: %w", id, err)
	}
	return &room, nil
}

// protectedRoomFields must never arrive through a patch payload.
var protectedRoomFields = []string{"id", "ID", "created_at", "updated_at", "deleted_at"}

// Update applies a partial patch. Room number changes re-check uniqueness.
func (s *RoomService) Update(p Principal, id uint, patch map[string]interface{}) (*models.Room, error) {
	if !p.CanManageRooms() {
		return nil, ErrForbidden
	}
	for _, f := range protectedRoomFields {
		delete(patch, f)
	}
	if len(patch) == 0 {
		return nil, Validationf("no updatable fields in payload")
	}

	if t, ok := patch["type"].(string); ok && !models.IsValidRoomType(t) {
		return nil, Validationf("type must be one of: Single, Double, Twin, Suite, Deluxe, Standard")
	}
	if st, ok := patch["status"].(string); ok && !models.IsValidRoomStatus(st) {
		return nil, Validationf("status must be one of: Ready, Occupied, Cleaning, Maintenance")
	}

	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(room).Updates(patch).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return s.GetByID(id)
}

// SetAvailability flips the coarse flag directly (admin override).
func (s *RoomService) SetAvailability(p Principal, id uint, available bool) (*models.Room, error) {
	if !p.CanManageRooms() {
		return nil, ErrForbidden
	}
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(room).Update("is_available", available).Error; err != nil {
		return nil, fmt.Errorf("failed to update room availability: %w", err)
	}
	return s.GetByID(id)
}

func (s *RoomService) SetStatus(p Principal, id uint, status string) (*models.Room, error) {
	if !p.CanManageRooms() {
		return nil, ErrForbidden
	}
	if !models.IsValidRoomStatus(status) {
		return nil, Validationf("status must be one of: Ready, Occupied, Cleaning, Maintenance")
	}
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(room).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a room. Rejected while any active booking references it, so
// inventory cannot disappear under a confirmed stay. Image files are cleaned
// up after a successful delete.
func (s *RoomService) Delete(p Principal, id uint) error {
	if !p.CanManageRooms() {
		return ErrForbidden
	}

	room, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var active int64
	if err := s.DB.Model(&models.Booking{}).
		Where("room_id = ?", id).
		Where("status IN ?", models.ActiveBookingStatuses).
		Count(&active).Error; err != nil {
		return fmt.Errorf("failed to count room bookings: %w", err)
	}
	if active > 0 {
		return ErrRoomHasBookings
	}

	if err := s.DB.Delete(room).Error; err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	removeImageFiles(room.Images)
	return nil
}

// removeImageFiles deletes uploaded files referenced by the room, best-effort.
// Only paths inside the uploads tree are touched.
func removeImageFiles(raw datatypes.JSON) {
	if len(raw) == 0 {
		return
	}
	var paths []string
	if err := json.Unmarshal(raw, &paths); err != nil {
		return
	}
	for _, p := range paths {
		if !strings.HasPrefix(p, "/uploads/rooms/") {
			continue
		}
		_ = os.Remove(filepath.Join(".", filepath.FromSlash(p)))
	}
}

// AddImages appends stored image paths to the room's ordered image list.
func (s *RoomService) AddImages(p Principal, id uint, paths []string) (*models.Room, error) {
	if !p.CanManageRooms() {
		return nil, ErrForbidden
	}
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	var images []string
	if len(room.Images) > 0 {
		if err := json.Unmarshal(room.Images, &images); err != nil {
			images = nil
		}
	}
	images = append(images, paths...)

	raw, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image list: %w", err)
	}
	if err := s.DB.Model(room).Update("images", datatypes.JSON(raw)).Error; err != nil {
		return nil, fmt.Errorf("failed to update room images: %w", err)
	}
	return s.GetByID(id)
}
