package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RealizedProfit is an append-only record of one sell. Date keeps the
// caller-supplied string; profits are grouped by it verbatim when charted.
type RealizedProfit struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Symbol    string          `gorm:"not null" json:"symbol"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	SellPrice decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"sell_price"`
	Date      string          `gorm:"not null" json:"date"`
	Profit    decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"profit"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (RealizedProfit) TableName() string {
	return "realized_profits"
}
