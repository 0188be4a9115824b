package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateByDate(t *testing.T) {
	events := []RealizedProfitEvent{
		{Date: "2025-06-01", Profit: d("50")},
		{Date: "2025-06-01", Profit: d("-20")},
		{Date: "2025-06-02", Profit: d("10")},
	}

	series := AggregateByDate(events)

	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, series.Dates)
	require.Len(t, series.Totals, 2)
	assert.True(t, series.Totals[0].Equal(d("30")), "got %s", series.Totals[0])
	assert.True(t, series.Totals[1].Equal(d("10")), "got %s", series.Totals[1])
}

func TestAggregateByDateEmpty(t *testing.T) {
	series := AggregateByDate(nil)

	assert.NotNil(t, series.Dates)
	assert.NotNil(t, series.Totals)
	assert.Empty(t, series.Dates)
	assert.Empty(t, series.Totals)
}

func TestAggregateByDateOrderIndependent(t *testing.T) {
	forward := []RealizedProfitEvent{
		{Date: "2025-06-02", Profit: d("10")},
		{Date: "2025-06-01", Profit: d("50")},
		{Date: "2025-06-03", Profit: d("5")},
	}
	reversed := []RealizedProfitEvent{forward[2], forward[1], forward[0]}

	assert.Equal(t, AggregateByDate(forward), AggregateByDate(reversed))
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, AggregateByDate(forward).Dates)
}

func TestAggregateByDateRawStringGrouping(t *testing.T) {
	// Date strings are compared literally: differently formatted strings for
	// the same calendar day stay in separate groups.
	events := []RealizedProfitEvent{
		{Date: "2025-06-01", Profit: d("10")},
		{Date: "2025-6-1", Profit: d("20")},
	}

	series := AggregateByDate(events)
	assert.Equal(t, []string{"2025-06-01", "2025-6-1"}, series.Dates)
	assert.True(t, series.Totals[0].Equal(d("10")))
	assert.True(t, series.Totals[1].Equal(d("20")))
}

func TestLedgerEventsFeedAggregator(t *testing.T) {
	l := New()
	_, err := l.RecordBuy("aapl", 20, d("150"), "2025-06-01")
	require.NoError(t, err)
	_, err = l.RecordSell("aapl", 5, d("160"), "2025-06-02")
	require.NoError(t, err)
	_, err = l.RecordSell("aapl", 5, d("140"), "2025-06-02")
	require.NoError(t, err)
	_, err = l.RecordSell("aapl", 10, d("155"), "2025-06-03")
	require.NoError(t, err)

	series := AggregateByDate(l.Events())

	assert.Equal(t, []string{"2025-06-02", "2025-06-03"}, series.Dates)
	assert.True(t, series.Totals[0].Equal(decimal.Zero), "50 + -50, got %s", series.Totals[0])
	assert.True(t, series.Totals[1].Equal(d("50")), "got %s", series.Totals[1])
}
