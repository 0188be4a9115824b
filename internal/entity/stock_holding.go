package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockHolding is the persisted form of one blended lot: a user holds at most
// one row per symbol. Row IDs grow monotonically, so ordering by ID preserves
// the insertion order of first creation.
type StockHolding struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;uniqueIndex:idx_holdings_user_symbol" json:"user_id"`
	Symbol      string          `gorm:"not null;uniqueIndex:idx_holdings_user_symbol" json:"symbol"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	AverageCost decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"average_cost"`
	AsOfDate    string          `gorm:"not null" json:"as_of_date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StockHolding) TableName() string {
	return "stock_holdings"
}
