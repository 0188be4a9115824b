package repository

import (
	"context"

	"traderizz/internal/entity"

	"gorm.io/gorm"
)

// SymbolRepository defines the interface for the symbol directory.
type SymbolRepository interface {
	FindAll(ctx context.Context) ([]entity.Symbol, error)
}

// NewSymbolRepository creates a new GORM-based symbol repository.
func NewSymbolRepository(db *gorm.DB) SymbolRepository {
	return &symbolRepository{db: db}
}

type symbolRepository struct {
	db *gorm.DB
}

// FindAll retrieves the full symbol directory ordered by ticker.
func (r *symbolRepository) FindAll(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
