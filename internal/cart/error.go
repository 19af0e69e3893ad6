package cart

import "errors"

var (
	// -- Resource State --
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	// -- Checkout Validation --
	ErrCartNotOpen    = errors.New("cart is not open")
	ErrCartNoCustomer = errors.New("cart has no customer assigned")
	ErrCartEmpty      = errors.New("cart is empty")

	// -- Input --
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)
