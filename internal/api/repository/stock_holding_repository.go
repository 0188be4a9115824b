package repository

import (
	"context"

	"traderizz/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockHoldingRepository defines the interface for holding data operations.
type StockHoldingRepository interface {
	FindByUserID(ctx context.Context, userID uint) ([]entity.StockHolding, error)
	FindByUserIDForUpdate(ctx context.Context, userID uint) ([]entity.StockHolding, error)
	Save(ctx context.Context, holding *entity.StockHolding) error
	ApplySell(ctx context.Context, holding *entity.StockHolding, closed bool, profit *entity.RealizedProfit) error
	Transaction(ctx context.Context, fn func(repo StockHoldingRepository) error) error
}

// NewStockHoldingRepository creates a new GORM-based holding repository.
func NewStockHoldingRepository(db *gorm.DB) StockHoldingRepository {
	return &stockHoldingRepository{db: db}
}

type stockHoldingRepository struct {
	db *gorm.DB
}

// FindByUserID retrieves the user's holdings ordered by first creation.
func (r *stockHoldingRepository) FindByUserID(ctx context.Context, userID uint) ([]entity.StockHolding, error) {
	var holdings []entity.StockHolding
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

// FindByUserIDForUpdate retrieves the user's holdings ordered by first
// creation and locks the rows for the duration of the surrounding
// transaction.
func (r *stockHoldingRepository) FindByUserIDForUpdate(ctx context.Context, userID uint) ([]entity.StockHolding, error) {
	var holdings []entity.StockHolding
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

// Save inserts a new holding or updates the existing row in place.
func (r *stockHoldingRepository) Save(ctx context.Context, holding *entity.StockHolding) error {
	return r.db.WithContext(ctx).Save(holding).Error
}

// ApplySell persists the outcome of a sell in one transaction: the realized
// profit row is appended and the holding is either updated or, when the
// position closed, deleted.
func (r *stockHoldingRepository) ApplySell(ctx context.Context, holding *entity.StockHolding, closed bool, profit *entity.RealizedProfit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profit).Error; err != nil {
			return err
		}
		if closed {
			return tx.Delete(&entity.StockHolding{}, holding.ID).Error
		}
		return tx.Save(holding).Error
	})
}

// Transaction runs fn against a repository bound to a single database
// transaction, so a locking read and the writes that follow it share one
// consistent view.
func (r *stockHoldingRepository) Transaction(ctx context.Context, fn func(repo StockHoldingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&stockHoldingRepository{db: tx})
	})
}
