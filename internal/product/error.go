package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUTaken        = errors.New("sku already exists")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
)
