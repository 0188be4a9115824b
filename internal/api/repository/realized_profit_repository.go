package repository

import (
	"context"

	"traderizz/internal/entity"

	"gorm.io/gorm"
)

// RealizedProfitRepository defines the interface for reading the profit log.
type RealizedProfitRepository interface {
	FindByUserID(ctx context.Context, userID uint) ([]entity.RealizedProfit, error)
}

// NewRealizedProfitRepository creates a new GORM-based profit repository.
func NewRealizedProfitRepository(db *gorm.DB) RealizedProfitRepository {
	return &realizedProfitRepository{db: db}
}

type realizedProfitRepository struct {
	db *gorm.DB
}

// FindByUserID retrieves the user's realized-profit log in the order the
// profits were recorded.
func (r *realizedProfitRepository) FindByUserID(ctx context.Context, userID uint) ([]entity.RealizedProfit, error) {
	var profits []entity.RealizedProfit
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&profits).Error; err != nil {
		return nil, err
	}
	return profits, nil
}
