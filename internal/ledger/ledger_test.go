package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestRecordBuyCreatesLot(t *testing.T) {
	l := New()

	lot, err := l.RecordBuy("aapl", 10, d("100"), "2025-06-01")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", lot.Symbol)
	assert.Equal(t, int64(10), lot.Quantity)
	assert.True(t, lot.AverageCost.Equal(d("100")), "got %s", lot.AverageCost)
	assert.Equal(t, "2025-06-01", lot.AsOfDate)
}

func TestRecordBuyMergesIntoWeightedAverage(t *testing.T) {
	l := New()

	_, err := l.RecordBuy("aapl", 10, d("100"), "2025-06-01")
	require.NoError(t, err)
	lot, err := l.RecordBuy("AAPL", 10, d("200"), "2025-06-02")
	require.NoError(t, err)

	holdings := l.Holdings()
	require.Len(t, holdings, 1, "buys of the same symbol must merge into one lot")
	assert.Equal(t, int64(20), lot.Quantity)
	assert.True(t, lot.AverageCost.Equal(d("150")), "got %s", lot.AverageCost)
	assert.Equal(t, "2025-06-02", lot.AsOfDate)
}

func TestRecordBuyWeightedAverageOverManyBuys(t *testing.T) {
	l := New()

	buys := []struct {
		qty   int64
		price string
	}{
		{3, "10.00"},
		{7, "12.50"},
		{5, "9.99"},
		{1, "20.01"},
	}

	// The average re-rounds at every merge, so it drifts from what a single
	// rounding over the raw totals would give. Fold the merge formula over
	// the fixture to get the expected value.
	var totalQty int64
	want := decimal.Zero
	for _, buy := range buys {
		_, err := l.RecordBuy("msft", buy.qty, d(buy.price), "2025-06-01")
		require.NoError(t, err)
		cost := want.Mul(decimal.NewFromInt(totalQty)).Add(d(buy.price).Mul(decimal.NewFromInt(buy.qty)))
		totalQty += buy.qty
		want = cost.Div(decimal.NewFromInt(totalQty)).Round(2)
	}

	lot, ok := l.Position("MSFT")
	require.True(t, ok)
	assert.Equal(t, totalQty, lot.Quantity)
	assert.True(t, lot.AverageCost.Equal(want), "want %s got %s", want, lot.AverageCost)
	// 10.00 → 11.75 → 11.16 → 11.71; one final rounding would give 11.72.
	assert.True(t, lot.AverageCost.Equal(d("11.71")), "got %s", lot.AverageCost)
}

func TestRecordBuyAverageRoundedToCents(t *testing.T) {
	l := New()

	_, err := l.RecordBuy("tsla", 3, d("10"), "2025-06-01")
	require.NoError(t, err)
	lot, err := l.RecordBuy("tsla", 3, d("10.01"), "2025-06-01")
	require.NoError(t, err)

	// (30 + 30.03) / 6 = 10.005 → 10.01 at 2 decimal places.
	assert.True(t, lot.AverageCost.Equal(d("10.01")), "got %s", lot.AverageCost)
}

func TestRecordBuyValidation(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		quantity int64
		price    decimal.Decimal
		date     string
	}{
		{"empty symbol", "", 10, d("100"), "2025-06-01"},
		{"whitespace symbol", "   ", 10, d("100"), "2025-06-01"},
		{"zero quantity", "AAPL", 0, d("100"), "2025-06-01"},
		{"negative quantity", "AAPL", -5, d("100"), "2025-06-01"},
		{"zero price", "AAPL", 10, decimal.Zero, "2025-06-01"},
		{"negative price", "AAPL", 10, d("-1"), "2025-06-01"},
		{"empty date", "AAPL", 10, d("100"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			_, err := l.RecordBuy(tt.symbol, tt.quantity, tt.price, tt.date)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Empty(t, l.Holdings(), "failed buy must not change state")
		})
	}
}

func TestRecordSellPartialKeepsAverageCost(t *testing.T) {
	l := New()
	_, err := l.RecordBuy("aapl", 10, d("100"), "2025-06-01")
	require.NoError(t, err)
	_, err = l.RecordBuy("AAPL", 10, d("200"), "2025-06-02")
	require.NoError(t, err)

	event, err := l.RecordSell("AAPL", 5, d("250"), "2025-06-03")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-03", event.Date)
	assert.True(t, event.Profit.Equal(d("500")), "got %s", event.Profit)

	lot, ok := l.Position("AAPL")
	require.True(t, ok)
	assert.Equal(t, int64(15), lot.Quantity)
	assert.True(t, lot.AverageCost.Equal(d("150")), "partial sell must not change cost basis, got %s", lot.AverageCost)
}

func TestRecordSellFullClosesPosition(t *testing.T) {
	l := New()
	_, err := l.RecordBuy("nvda", 8, d("120"), "2025-06-01")
	require.NoError(t, err)

	event, err := l.RecordSell("nvda", 8, d("110"), "2025-06-05")
	require.NoError(t, err)

	assert.True(t, event.Profit.Equal(d("-80")), "got %s", event.Profit)
	assert.Empty(t, l.Holdings())
	_, ok := l.Position("NVDA")
	assert.False(t, ok)
}

func TestRecordSellUnknownSymbol(t *testing.T) {
	l := New()
	_, err := l.RecordBuy("aapl", 10, d("100"), "2025-06-01")
	require.NoError(t, err)

	before := l.Holdings()
	_, err = l.RecordSell("GOOG", 1, d("50"), "2025-06-02")

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "GOOG", notFoundErr.Symbol)
	assert.Equal(t, before, l.Holdings())
	assert.Empty(t, l.Events())
}

func TestRecordSellMoreThanHeld(t *testing.T) {
	l := New()
	_, err := l.RecordBuy("aapl", 10, d("100"), "2025-06-01")
	require.NoError(t, err)

	before := l.Holdings()
	_, err = l.RecordSell("AAPL", 11, d("50"), "2025-06-02")

	var insufficientErr *InsufficientQuantityError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(10), insufficientErr.Held)
	assert.Equal(t, int64(11), insufficientErr.Requested)
	assert.Equal(t, before, l.Holdings())
	assert.Empty(t, l.Events())
}

func TestRebuyAfterFullCloseIsFreshLot(t *testing.T) {
	l := New()
	_, err := l.RecordBuy("amd", 10, d("80"), "2025-06-01")
	require.NoError(t, err)
	_, err = l.RecordSell("amd", 10, d("90"), "2025-06-02")
	require.NoError(t, err)

	lot, err := l.RecordBuy("amd", 10, d("95"), "2025-06-03")
	require.NoError(t, err)

	assert.Equal(t, int64(10), lot.Quantity)
	assert.True(t, lot.AverageCost.Equal(d("95")), "no residual cost basis after a full close, got %s", lot.AverageCost)
}

func TestHoldingsOrderStable(t *testing.T) {
	l := New()
	_, err := l.RecordBuy("aapl", 10, d("100"), "2025-06-01")
	require.NoError(t, err)
	_, err = l.RecordBuy("msft", 5, d("300"), "2025-06-01")
	require.NoError(t, err)
	_, err = l.RecordBuy("nvda", 2, d("500"), "2025-06-01")
	require.NoError(t, err)

	// Merging and partially selling must not reorder.
	_, err = l.RecordBuy("aapl", 5, d("110"), "2025-06-02")
	require.NoError(t, err)
	_, err = l.RecordSell("msft", 2, d("310"), "2025-06-02")
	require.NoError(t, err)

	var symbols []string
	for _, lot := range l.Holdings() {
		symbols = append(symbols, lot.Symbol)
	}
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, symbols)

	// A full close followed by a re-buy moves the symbol to the end.
	_, err = l.RecordSell("aapl", 15, d("120"), "2025-06-03")
	require.NoError(t, err)
	_, err = l.RecordBuy("aapl", 1, d("118"), "2025-06-04")
	require.NoError(t, err)

	symbols = symbols[:0]
	for _, lot := range l.Holdings() {
		symbols = append(symbols, lot.Symbol)
	}
	assert.Equal(t, []string{"MSFT", "NVDA", "AAPL"}, symbols)
}

func TestFromStateRestoresLedger(t *testing.T) {
	lots := []Lot{
		{Symbol: "AAPL", Quantity: 15, AverageCost: d("150.00"), AsOfDate: "2025-06-02"},
		{Symbol: "MSFT", Quantity: 3, AverageCost: d("300.00"), AsOfDate: "2025-06-01"},
	}
	events := []RealizedProfitEvent{{Date: "2025-06-03", Profit: d("500")}}

	l := FromState(lots, events)

	require.Len(t, l.Holdings(), 2)
	assert.Equal(t, lots, l.Holdings())
	assert.Equal(t, events, l.Events())

	// The restored ledger behaves like one built from scratch.
	_, err := l.RecordSell("MSFT", 3, d("310"), "2025-06-04")
	require.NoError(t, err)
	require.Len(t, l.Holdings(), 1)
	assert.Equal(t, "AAPL", l.Holdings()[0].Symbol)
	require.Len(t, l.Events(), 2)
}

func TestParseQuantity(t *testing.T) {
	quantity, err := ParseQuantity("quantity", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), quantity)

	for _, raw := range []string{"", "abc", "1.5", "0", "-3"} {
		_, err := ParseQuantity("quantity", raw)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "input %q", raw)
		assert.Equal(t, "quantity", validationErr.Field)
	}
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice("price", "123.45")
	require.NoError(t, err)
	assert.True(t, price.Equal(d("123.45")))

	for _, raw := range []string{"", "abc", "0", "-0.01"} {
		_, err := ParsePrice("price", raw)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "input %q", raw)
	}
}
