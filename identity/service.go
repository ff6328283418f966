package identity

import (
	"errors"
	"fmt"
	"strings"

	"ontheway-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrValidation signals a missing required field.
	ErrValidation = errors.New("identity: missing required field")
	// ErrEmailTaken signals a registration or profile update against an
	// email another account already holds.
	ErrEmailTaken = errors.New("identity: email already in use")
	// ErrUserNotFound signals an email that resolves to no account.
	ErrUserNotFound = errors.New("identity: user not found")
	// ErrInvalidCredentials signals a wrong login password.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	// ErrWrongPassword signals a failed current-password check on change.
	ErrWrongPassword = errors.New("identity: current password is incorrect")
)

// Service handles registration, login and profile maintenance. Accounts
// are never hard-deleted.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type RegisterParams struct {
	Uname      string
	Email      string
	Password   string
	ProfilePic string
	Phone      string
}

// Register creates a new non-admin account with a bcrypt password hash.
func (s *Service) Register(p RegisterParams) (*models.User, error) {
	if p.Uname == "" || p.Email == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: uname, email and password are required", ErrValidation)
	}

	var existing models.User
	err := s.db.Where("email = ?", p.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("identity: register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("identity: hash password: %w", err)
	}

	user := models.User{
		Uname:        p.Uname,
		Email:        p.Email,
		PasswordHash: string(hash),
		ProfilePic:   p.ProfilePic,
		Phone:        p.Phone,
		AdminFlag:    models.AdminNo,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique index closes the check-then-insert race.
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("identity: register: %w", err)
	}
	return &user, nil
}

// Login verifies credentials and returns the account. A missing account
// and a wrong password are reported as distinct errors; the HTTP layer
// keeps that distinction in the status code only.
func (s *Service) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("identity: login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ProfileUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	CurrentEmail string
	Uname        *string
	Email        *string
	Phone        *string
	Pic          *string
}

// UpdateProfile applies a partial update keyed by the account's current
// email. Changing the email revalidates uniqueness.
func (s *Service) UpdateProfile(u ProfileUpdate) (*models.User, error) {
	if strings.TrimSpace(u.CurrentEmail) == "" {
		return nil, fmt.Errorf("%w: current email is required", ErrValidation)
	}

	var user models.User
	if err := s.db.Where("email = ?", u.CurrentEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("identity: update profile: %w", err)
	}

	if u.Email != nil && *u.Email != u.CurrentEmail {
		var existing models.User
		err := s.db.Where("email = ?", *u.Email).First(&existing).Error
		if err == nil {
			return nil, ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("identity: update profile: %w", err)
		}
		user.Email = *u.Email
	}
	if u.Uname != nil {
		user.Uname = *u.Uname
	}
	if u.Phone != nil {
		user.Phone = *u.Phone
	}
	if u.Pic != nil {
		user.ProfilePic = *u.Pic
	}

	if err := s.db.Save(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("identity: update profile: %w", err)
	}
	return &user, nil
}

// ChangePassword rotates the password after verifying the current one.
func (s *Service) ChangePassword(email, currentPassword, newPassword string) error {
	if email == "" || currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: email, current password and new password are required", ErrValidation)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("identity: change password: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("identity: hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("identity: change password: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
