package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"artesanos-be/internal/cart"
	"artesanos-be/internal/customer"
	"artesanos-be/internal/inventory"
	"artesanos-be/internal/order"
	"artesanos-be/internal/product"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainError translates the engine's error taxonomy into status codes:
// missing resources are 404, cart/stock conflicts are 409, bad input is 400,
// anything else is 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var stockErr *inventory.InsufficientStockError

	switch {
	case errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, customer.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, cart.ErrCartNotOpen),
		errors.Is(err, cart.ErrCartNoCustomer),
		errors.Is(err, cart.ErrCartEmpty),
		errors.As(err, &stockErr):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, product.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, customer.ErrEmailTaken),
		errors.Is(err, product.ErrSKUTaken):
		writeError(w, http.StatusConflict, err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
