package inventory

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError reports a reservation that exceeds available stock.
// The message keeps the current and requested quantities visible for
// operators reading logs and API error bodies.
type InsufficientStockError struct {
	ProductID int64
	Product   string
	Stock     int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %s: current stock %d, requested %d",
		e.Product, e.Stock, e.Requested,
	)
}
