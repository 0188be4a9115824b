package repository

import (
	"context"

	"traderizz/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.Profile) error
	FindByUserID(ctx context.Context, userID uint) (*entity.Profile, error)
}

// NewProfileRepository creates a new GORM-based profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

type profileRepository struct {
	db *gorm.DB
}

// Upsert inserts the profile or replaces the existing row for the same user.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

// FindByUserID retrieves the profile of a user.
func (r *profileRepository) FindByUserID(ctx context.Context, userID uint) (*entity.Profile, error) {
	var profile entity.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
