package ledger

import "fmt"

// ValidationError reports a malformed or missing input field. The operation
// that detected it has no side effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a sell referencing a symbol with no open position.
type NotFoundError struct {
	Symbol string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no open position for %s", e.Symbol)
}

// InsufficientQuantityError reports a sell quantity exceeding the held quantity.
type InsufficientQuantityError struct {
	Symbol    string
	Held      int64
	Requested int64
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("cannot sell %d shares of %s, only %d held", e.Requested, e.Symbol, e.Held)
}
