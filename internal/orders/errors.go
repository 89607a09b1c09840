package orders

import (
	"fmt"
)

// ValidationError reports malformed or missing input. Nothing was mutated.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a dangling customer, employee or product reference.
type NotFoundError struct {
	Kind string // "customer" | "employee" | "product"
	Msg  string
}

func (e *NotFoundError) Error() string { return e.Msg }

// InsufficientStockError rejects an order whose requested quantity exceeds
// the stock on hand at validation time.
type InsufficientStockError struct {
	Index     int
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Item %d: Insufficient stock. Available: %d, Requested: %d",
		e.Index, e.Available, e.Requested)
}

// StockUpdateError means the guarded stock decrement touched no row, i.e. a
// concurrent transaction depleted the product between validation and commit.
type StockUpdateError struct {
	ProductName string
}

func (e *StockUpdateError) Error() string {
	return "Failed to update stock for product: " + e.ProductName
}

// ProcessingError wraps any failure inside the commit transaction. The unit
// was rolled back before it surfaced.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return "Order processing failed: " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error { return e.Err }
