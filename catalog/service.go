package catalog

import (
	"errors"
	"fmt"
	"strings"

	"ontheway-api/models"

	"gorm.io/gorm"
)

// DefaultRating is assigned to delegates created or updated without an
// explicit rating.
const DefaultRating = 4.5

// Service exposes the place and delegate operations. Every mutation is
// gated on the actor being an administrator; reads are open.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Authorize resolves the actor by email and admits only administrators.
// The admin flag always comes from the users table, never from the caller.
func (s *Service) Authorize(actorEmail string) error {
	if actorEmail == "" {
		return fmt.Errorf("%w: actor email is required", ErrValidation)
	}
	var user models.User
	if err := s.db.Where("email = ?", actorEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return wrap("authorize", err)
	}
	if user.AdminFlag != models.AdminYes {
		return ErrNotAdmin
	}
	return nil
}

// ListPlaces returns all active places, name ascending.
func (s *Service) ListPlaces() ([]models.Place, error) {
	var places []models.Place
	if err := s.db.Where("is_active = ?", true).Order("name asc").Find(&places).Error; err != nil {
		return nil, wrap("list places", err)
	}
	return places, nil
}

// CreatePlace persists a new active place with a unique trimmed name.
func (s *Service) CreatePlace(actor, name, city string) (*models.Place, error) {
	if err := s.Authorize(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: place name is required", ErrValidation)
	}

	var existing models.Place
	err := s.db.Where("name = ? AND is_active = ?", name, true).First(&existing).Error
	if err == nil {
		return nil, ErrPlaceExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrap("create place", err)
	}

	place := models.Place{Name: name, City: city, IsActive: true}
	if err := s.db.Create(&place).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPlaceExists
		}
		return nil, wrap("create place", err)
	}
	return &place, nil
}

// RenamePlace updates a place's name and city. When the name changes, every
// delegate referencing the old name is repointed in the same transaction, so
// observers never see a half-applied rename.
func (s *Service) RenamePlace(actor string, placeID uint, name, city string) (*models.Place, error) {
	if err := s.Authorize(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: place name is required", ErrValidation)
	}

	var place models.Place
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&place, placeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaceNotFound
			}
			return err
		}
		// Deactivated places are gone as far as the catalog is concerned.
		if !place.IsActive {
			return ErrPlaceNotFound
		}

		var existing models.Place
		err := tx.Where("name = ? AND is_active = ? AND id <> ?", name, true, placeID).
			First(&existing).Error
		if err == nil {
			return ErrPlaceExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		oldName := place.Name
		place.Name = name
		place.City = city
		if err := tx.Save(&place).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrPlaceExists
			}
			return err
		}

		if oldName != name {
			if err := tx.Model(&models.Delegate{}).
				Where("place = ?", oldName).
				Update("place", name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrap("rename place", err)
	}
	return &place, nil
}

// DeletePlace deactivates a place and removes all delegates bound to it.
// The name is resolved before deactivation since the cascade keys on it.
func (s *Service) DeletePlace(actor string, placeID uint) (*models.Place, error) {
	if err := s.Authorize(actor); err != nil {
		return nil, err
	}

	var place models.Place
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&place, placeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaceNotFound
			}
			return err
		}
		if !place.IsActive {
			return ErrPlaceNotFound
		}

		name := place.Name
		place.IsActive = false
		if err := tx.Save(&place).Error; err != nil {
			return err
		}
		return tx.Where("place = ?", name).Delete(&models.Delegate{}).Error
	})
	if err != nil {
		return nil, wrap("delete place", err)
	}
	return &place, nil
}

// ListDelegates returns every delegate, name ascending. Admin panel view.
func (s *Service) ListDelegates() ([]models.Delegate, error) {
	var delegates []models.Delegate
	if err := s.db.Order("name asc").Find(&delegates).Error; err != nil {
		return nil, wrap("list delegates", err)
	}
	return delegates, nil
}

// ListDelegatesForPlace returns the delegates for one place, cheapest fee
// first with names breaking ties. The first element of the result is what
// the client presents as the recommended option. An unknown place name
// yields an empty list, not an error.
func (s *Service) ListDelegatesForPlace(placeName string) ([]models.Delegate, error) {
	var delegates []models.Delegate
	if err := s.db.Where("place = ?", placeName).
		Order("fee asc, name asc").
		Find(&delegates).Error; err != nil {
		return nil, wrap("list delegates for place", err)
	}
	return delegates, nil
}

// DelegateParams carries the writable delegate fields. A zero Rating means
// "use the default".
type DelegateParams struct {
	Name   string
	Phone  string
	Fee    float64
	Rating float64
	Avatar string
	Place  string
}

// CreateDelegate persists a new delegate after validating its fields and
// that the referenced place exists and is active.
func (s *Service) CreateDelegate(actor string, p DelegateParams) (*models.Delegate, error) {
	if err := s.Authorize(actor); err != nil {
		return nil, err
	}
	if p.Name == "" || p.Phone == "" || p.Place == "" {
		return nil, fmt.Errorf("%w: name, phone, fee and place are required", ErrValidation)
	}
	if p.Fee < 0 {
		return nil, fmt.Errorf("%w: fee must be non-negative", ErrValidation)
	}
	if err := s.placeMustExist(p.Place); err != nil {
		return nil, err
	}

	delegate := models.Delegate{
		Name:   p.Name,
		Phone:  p.Phone,
		Fee:    p.Fee,
		Rating: p.Rating,
		Avatar: p.Avatar,
		Place:  p.Place,
	}
	if delegate.Rating == 0 {
		delegate.Rating = DefaultRating
	}
	if err := s.db.Create(&delegate).Error; err != nil {
		return nil, wrap("create delegate", err)
	}
	return &delegate, nil
}

// UpdateDelegate rewrites a delegate's fields. Repointing to a different
// place revalidates the reference; no cascade is involved since only this
// one record changes.
func (s *Service) UpdateDelegate(actor string, delegateID uint, p DelegateParams) (*models.Delegate, error) {
	if err := s.Authorize(actor); err != nil {
		return nil, err
	}
	if p.Name == "" || p.Phone == "" {
		return nil, fmt.Errorf("%w: name, phone and fee are required", ErrValidation)
	}
	if p.Fee < 0 {
		return nil, fmt.Errorf("%w: fee must be non-negative", ErrValidation)
	}

	var delegate models.Delegate
	if err := s.db.First(&delegate, delegateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDelegateNotFound
		}
		return nil, wrap("update delegate", err)
	}

	if p.Place != "" && p.Place != delegate.Place {
		if err := s.placeMustExist(p.Place); err != nil {
			return nil, err
		}
		delegate.Place = p.Place
	}

	delegate.Name = p.Name
	delegate.Phone = p.Phone
	delegate.Fee = p.Fee
	delegate.Avatar = p.Avatar
	delegate.Rating = p.Rating
	if delegate.Rating == 0 {
		delegate.Rating = DefaultRating
	}

	if err := s.db.Save(&delegate).Error; err != nil {
		return nil, wrap("update delegate", err)
	}
	return &delegate, nil
}

// DeleteDelegate removes one delegate.
func (s *Service) DeleteDelegate(actor string, delegateID uint) (*models.Delegate, error) {
	if err := s.Authorize(actor); err != nil {
		return nil, err
	}
	var delegate models.Delegate
	if err := s.db.First(&delegate, delegateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDelegateNotFound
		}
		return nil, wrap("delete delegate", err)
	}
	if err := s.db.Delete(&delegate).Error; err != nil {
		return nil, wrap("delete delegate", err)
	}
	return &delegate, nil
}

func (s *Service) placeMustExist(name string) error {
	var place models.Place
	if err := s.db.Where("name = ? AND is_active = ?", name, true).First(&place).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaceNotFound
		}
		return wrap("resolve place", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
