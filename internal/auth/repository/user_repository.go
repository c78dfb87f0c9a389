package repository

import (
	"errors"
	"time"

	authdomain "stravarace-backend/internal/auth/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// Upsert inserts the athlete or refreshes the profile fields on re-sign-in.
func (r *userRepository) Upsert(user *authdomain.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "first_name", "last_name", "email", "avatar_url", "sex", "updated_at",
		}),
	}).Create(user).Error
}

func (r *userRepository) FindByID(id int64) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ExistingIDs returns the subset of ids that have a user row.
func (r *userRepository) ExistingIDs(ids []int64) ([]int64, error) {
	var found []int64
	err := r.db.Model(&authdomain.User{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

func (r *userRepository) Delete(id int64) error {
	return r.db.Delete(&authdomain.User{}, "id = ?", id).Error
}
