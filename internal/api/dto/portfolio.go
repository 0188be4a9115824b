package dto

import "github.com/shopspring/decimal"

// RecordBuyRequest is the DTO for adding shares to a position. Quantity and
// price arrive as the raw text the user typed; they are validated into typed
// values before any ledger call.
type RecordBuyRequest struct {
	Symbol   string `json:"symbol"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Date     string `json:"date"`
}

// RecordSellRequest is the DTO for selling shares out of a position.
type RecordSellRequest struct {
	Symbol   string `json:"symbol"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Date     string `json:"date"`
}

// HoldingResponse is one open position, ready for direct rendering.
type HoldingResponse struct {
	Symbol      string          `json:"symbol"`
	Quantity    int64           `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	AsOfDate    string          `json:"as_of_date"`
}

// SellResponse reports the outcome of a sell: the realized profit event and
// the remaining position, if any.
type SellResponse struct {
	Symbol    string           `json:"symbol"`
	Date      string           `json:"date"`
	Profit    decimal.Decimal  `json:"profit"`
	Remaining *HoldingResponse `json:"remaining,omitempty"`
}

// ProfitSeriesResponse is the chart-ready realized-profit series: dates is
// the category axis, totals the value series, index-aligned. Both are empty
// when no profit has been realized yet.
type ProfitSeriesResponse struct {
	Dates  []string          `json:"dates"`
	Totals []decimal.Decimal `json:"totals"`
}
