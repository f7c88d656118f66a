package services

import (
	"fmt"
	"testing"
	"time"

	"hotelhub-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database. The pool is pinned to one
// connection: every extra connection to ":memory:" would see its own empty
// database, and the single writer also serializes the concurrency tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestProfile{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var testUserSeq int

func createTestUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	testUserSeq++
	user := models.User{
		Name:     fmt.Sprintf("Test User %d", testUserSeq),
		Email:    fmt.Sprintf("user%d@example.com", testUserSeq),
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestRoom(t *testing.T, db *gorm.DB, number string, price float64) models.Room {
	t.Helper()
	room := models.Room{
		RoomNumber:    number,
		Type:          "Double",
		Capacity:      2,
		PricePerNight: price,
		Floor:         1,
		Status:        models.RoomStatusReady,
		IsAvailable:   true,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("create test room: %v", err)
	}
	return room
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func asPrincipal(u models.User) Principal {
	return Principal{ID: u.ID, Role: u.Role}
}
