// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kudosTable is deleted from directly when a user goes away; the kudo package
// depends on this one, not the other way round.
const kudosTable = "kudos"

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	CountByEmail(ctx context.Context, email string) (int64, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListOthers(ctx context.Context, excludeID uuid.UUID) ([]User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) error
	SwapProfilePicture(ctx context.Context, userID uuid.UUID, url string) (previous string, err error)
	Delete(ctx context.Context, userID uuid.UUID) error
	ProfilePictures(ctx context.Context) ([]string, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// NormalizeEmail is the stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts the user and its profile in one transaction.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		user.Profile.UserID = user.ID
		return tx.Create(&user.Profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *gormRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("email = ?", NormalizeEmail(email)).Count(&count).Error
	return count, err
}

// FindByEmail retrieves a user by their email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Preload("Profile").Where("email = ?", NormalizeEmail(email)).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByID retrieves a user with its profile.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Preload("Profile").First(&userModel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &userModel, nil
}

// ListOthers returns every user except excludeID, ordered by first name.
func (r *gormRepository) ListOthers(ctx context.Context, excludeID uuid.UUID) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Preload("Profile").
		Where("users.id <> ?", excludeID).
		Order("profiles.first_name ASC").
		Find(&users).Error
	return users, err
}

func (r *gormRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) error {
	res := r.db.WithContext(ctx).Model(&Profile{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"first_name": strings.TrimSpace(input.FirstName),
		"last_name":  strings.TrimSpace(input.LastName),
		"department": string(input.Department),
	})
	if res.Error != nil {
		return fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SwapProfilePicture stores url and returns the URL it replaced ("" when none).
func (r *gormRepository) SwapProfilePicture(ctx context.Context, userID uuid.UUID, url string) (string, error) {
	var previous string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile Profile
		if err := tx.First(&profile, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		previous = profile.PictureURL()
		return tx.Model(&Profile{}).Where("user_id = ?", userID).Update("profile_picture", url).Error
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}

// Delete removes the user together with every kudo they sent or received.
func (r *gormRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+kudosTable+" WHERE author_id = ? OR recipient_id = ?", userID, userID).Error; err != nil {
			return fmt.Errorf("delete kudos: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&Profile{}).Error; err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		res := tx.Where("id = ?", userID).Delete(&User{})
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// ProfilePictures lists every avatar URL still referenced by a profile.
func (r *gormRepository) ProfilePictures(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Model(&Profile{}).
		Where("profile_picture IS NOT NULL AND profile_picture <> ''").
		Pluck("profile_picture", &urls).Error
	return urls, err
}
