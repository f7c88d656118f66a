package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotelhub-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotelhub_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase is idempotent: a default admin so the dashboard is reachable on
// a fresh install, and a handful of starter rooms when the inventory is empty.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Name:     "Admin User",
				Email:    envOrDefault("ADMIN_EMAIL", "admin@hotelhub.local"),
				Password: string(hash),
				Role:     models.RoleAdmin,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		amenities := func(items ...string) datatypes.JSON {
			raw, _ := json.Marshal(items)
			return datatypes.JSON(raw)
		}
		rooms := []models.Room{
			{RoomNumber: "101", Type: "Single", Capacity: 1, PricePerNight: 80, Floor: 1, Status: models.RoomStatusReady, IsAvailable: true, Amenities: amenities("wifi", "tv")},
			{RoomNumber: "102", Type: "Double", Capacity: 2, PricePerNight: 120, Floor: 1, Status: models.RoomStatusReady, IsAvailable: true, Amenities: amenities("wifi", "tv", "minibar")},
			{RoomNumber: "201", Type: "Twin", Capacity: 2, PricePerNight: 110, Floor: 2, Status: models.RoomStatusReady, IsAvailable: true, Amenities: amenities("wifi", "tv")},
			{RoomNumber: "301", Type: "Suite", Capacity: 4, PricePerNight: 260, Floor: 3, Status: models.RoomStatusReady, IsAvailable: true, Amenities: amenities("wifi", "tv", "minibar", "balcony")},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Starter rooms seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.GuestProfile{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
