package services

import (
	"errors"
	"fmt"
	"strings"

	"hotelhub-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a user with a bcrypt-hashed password. Role defaults to
// "user"; staff/admin roles are assigned by an existing admin afterwards.
func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return nil, Validationf("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, Validationf("a valid email is required")
	}
	if len(in.Password) < 6 {
		return nil, Validationf("password must be at least 6 characters")
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return nil, Validationf("role must be one of: user, admin, staff")
	}

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies credentials and returns the user on success. The same
// error is returned for a missing user and a wrong password.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("db error loading user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("db error loading user %d: %w", id, err)
	}
	return &user, nil
}
