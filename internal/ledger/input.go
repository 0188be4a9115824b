package ledger

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ParseQuantity converts free-form text input into a positive share count.
// Anything that does not parse to a positive integer is a ValidationError
// named after the given field.
func ParseQuantity(field, raw string) (int64, error) {
	quantity, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be an integer"}
	}
	if quantity <= 0 {
		return 0, &ValidationError{Field: field, Reason: "must be a positive integer"}
	}
	return quantity, nil
}

// ParsePrice converts free-form text input into a positive decimal price.
func ParsePrice(field, raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Field: field, Reason: "must be a number"}
	}
	if !price.IsPositive() {
		return decimal.Decimal{}, &ValidationError{Field: field, Reason: "must be a positive number"}
	}
	return price, nil
}
