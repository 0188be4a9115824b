// Package ledger implements position and realized-profit accounting for a
// trading journal. Each symbol holds at most one blended lot: every buy is
// merged into the position at its quantity-weighted average cost, and sells
// realize profit against that average. The ledger is a pure in-memory value;
// callers own the save/load boundary around it.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Lot is the single blended open position for one symbol.
type Lot struct {
	Symbol      string
	Quantity    int64
	AverageCost decimal.Decimal
	AsOfDate    string
}

// RealizedProfitEvent records the profit of one sell. Events are append-only
// and never revised.
type RealizedProfitEvent struct {
	Date   string
	Profit decimal.Decimal
}

// Ledger holds the open lots, in insertion order of first creation, plus the
// realized-profit event log.
type Ledger struct {
	lots   []*Lot
	events []RealizedProfitEvent
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// FromState rebuilds a ledger from persisted lots and events. Lot order is
// preserved as given.
func FromState(lots []Lot, events []RealizedProfitEvent) *Ledger {
	l := &Ledger{
		lots:   make([]*Lot, 0, len(lots)),
		events: append([]RealizedProfitEvent(nil), events...),
	}
	for i := range lots {
		lot := lots[i]
		l.lots = append(l.lots, &lot)
	}
	return l
}

// NormalizeSymbol trims surrounding whitespace and uppercases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// RecordBuy merges a purchase into the position for symbol, creating it if
// absent. The merged average cost is the quantity-weighted average of all
// contributing buys, rounded to 2 decimal places. AsOfDate takes the supplied
// date unconditionally; no chronological ordering is enforced.
func (l *Ledger) RecordBuy(symbol string, quantity int64, price decimal.Decimal, date string) (Lot, error) {
	symbol = NormalizeSymbol(symbol)
	if err := validateTradeInput(symbol, quantity, price, date); err != nil {
		return Lot{}, err
	}

	if lot := l.find(symbol); lot != nil {
		oldQty := decimal.NewFromInt(lot.Quantity)
		newQty := decimal.NewFromInt(lot.Quantity + quantity)
		totalCost := oldQty.Mul(lot.AverageCost).Add(decimal.NewFromInt(quantity).Mul(price))
		lot.Quantity += quantity
		lot.AverageCost = totalCost.Div(newQty).Round(2)
		lot.AsOfDate = date
		return *lot, nil
	}

	lot := &Lot{
		Symbol:      symbol,
		Quantity:    quantity,
		AverageCost: price.Round(2),
		AsOfDate:    date,
	}
	l.lots = append(l.lots, lot)
	return *lot, nil
}

// RecordSell realizes profit on quantity shares of symbol at price. Selling
// the full held quantity closes the position; a partial sell reduces the
// quantity and leaves the average cost of the remainder untouched. The
// operation is all-or-nothing: on any error no state changes.
func (l *Ledger) RecordSell(symbol string, quantity int64, price decimal.Decimal, date string) (RealizedProfitEvent, error) {
	symbol = NormalizeSymbol(symbol)
	if err := validateTradeInput(symbol, quantity, price, date); err != nil {
		return RealizedProfitEvent{}, err
	}

	lot := l.find(symbol)
	if lot == nil {
		return RealizedProfitEvent{}, &NotFoundError{Symbol: symbol}
	}
	if quantity > lot.Quantity {
		return RealizedProfitEvent{}, &InsufficientQuantityError{
			Symbol:    symbol,
			Held:      lot.Quantity,
			Requested: quantity,
		}
	}

	event := RealizedProfitEvent{
		Date:   date,
		Profit: price.Sub(lot.AverageCost).Mul(decimal.NewFromInt(quantity)),
	}
	l.events = append(l.events, event)

	if quantity == lot.Quantity {
		l.remove(symbol)
	} else {
		lot.Quantity -= quantity
	}
	return event, nil
}

// Position returns the open lot for symbol, if any.
func (l *Ledger) Position(symbol string) (Lot, bool) {
	if lot := l.find(NormalizeSymbol(symbol)); lot != nil {
		return *lot, true
	}
	return Lot{}, false
}

// Holdings returns the open lots in insertion order of first creation. The
// order is stable under merges and partial sells; a position re-opened after
// a full close appends at the end like a first-time buy.
func (l *Ledger) Holdings() []Lot {
	out := make([]Lot, 0, len(l.lots))
	for _, lot := range l.lots {
		out = append(out, *lot)
	}
	return out
}

// Events returns the realized-profit log in the order profits were realized.
func (l *Ledger) Events() []RealizedProfitEvent {
	return append([]RealizedProfitEvent(nil), l.events...)
}

func (l *Ledger) find(symbol string) *Lot {
	for _, lot := range l.lots {
		if lot.Symbol == symbol {
			return lot
		}
	}
	return nil
}

func (l *Ledger) remove(symbol string) {
	for i, lot := range l.lots {
		if lot.Symbol == symbol {
			l.lots = append(l.lots[:i], l.lots[i+1:]...)
			return
		}
	}
}

func validateTradeInput(symbol string, quantity int64, price decimal.Decimal, date string) error {
	if symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	if !price.IsPositive() {
		return &ValidationError{Field: "price", Reason: "must be a positive number"}
	}
	if date == "" {
		return &ValidationError{Field: "date", Reason: "must not be empty"}
	}
	return nil
}
