package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProfitSeries is a chart-ready realized-profit time series: Dates is the
// category axis, Totals the value series, index-aligned.
type ProfitSeries struct {
	Dates  []string          `json:"dates"`
	Totals []decimal.Decimal `json:"totals"`
}

// AggregateByDate groups realized-profit events by exact date-string equality
// and sums the profit per group. Dates are emitted in ascending lexicographic
// order. No date parsing or normalization happens: two events belong to the
// same group iff their date strings are identical. An empty log yields empty
// slices.
func AggregateByDate(events []RealizedProfitEvent) ProfitSeries {
	grouped := make(map[string]decimal.Decimal, len(events))
	for _, event := range events {
		grouped[event.Date] = grouped[event.Date].Add(event.Profit)
	}

	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	totals := make([]decimal.Decimal, 0, len(dates))
	for _, date := range dates {
		totals = append(totals, grouped[date])
	}

	return ProfitSeries{Dates: dates, Totals: totals}
}
