package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNumberGeneration means the collision-retry budget was
	// exhausted; it signals a systemic problem, not a per-request one.
	ErrOrderNumberGeneration = errors.New("failed to generate a unique order number")
)
