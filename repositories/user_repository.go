package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Tinnitussen/DAT250/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Exists reports whether a username is taken. Registration does not
// rely on it for correctness; the unique index on username is what
// actually arbitrates concurrent inserts.
func (r *UserRepository) Exists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new user. A duplicate username surfaces as
// models.ErrDuplicateUser regardless of which of two concurrent
// registrations got there first.
func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *UserRepository) ByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ByUsername returns the full row, password included. It backs the
// login check and is case-sensitive: BINARY/NOCASE collation tweaks on
// the username column would change login semantics.
func (r *UserRepository) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Profile returns the user row without the password column.
func (r *UserRepository) Profile(username string) (*models.User, error) {
	var user models.User
	err := r.db.
		Select("id", "username", "first_name", "last_name", "education", "employment",
			"music", "movie", "nationality", "birthday", "created_at", "updated_at").
		First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile overwrites the mutable profile columns of one user.
func (r *UserRepository) UpdateProfile(id string, fields models.ProfileFields) error {
	updates := map[string]interface{}{
		"education":   fields.Education,
		"employment":  fields.Employment,
		"music":       fields.Music,
		"movie":       fields.Movie,
		"nationality": fields.Nationality,
		"birthday":    fields.Birthday,
	}

	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}
