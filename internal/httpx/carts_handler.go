package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"artesanos-be/internal/cart"
)

type CartsHandler struct {
	Carts cart.Repository
}

type createCartRequest struct {
	CustomerID *int64 `json:"customer_id"`
}

type cartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *CartsHandler) Register(r *chi.Mux) {
	r.Post("/carts", h.createCart)
	r.Get("/carts", h.listCarts)
	r.Get("/carts/{id}", h.getCart)
	r.Delete("/carts/{id}", h.deleteCart)
	r.Post("/carts/{id}/items", h.addItem)
	r.Put("/carts/{id}/items/{productID}", h.updateItem)
	r.Delete("/carts/{id}/items/{productID}", h.removeItem)
}

func (h *CartsHandler) createCart(w http.ResponseWriter, r *http.Request) {
	var req createCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c, err := h.Carts.CreateCart(r.Context(), req.CustomerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (h *CartsHandler) listCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.Carts.ListCarts(r.Context(), queryInt32(r, "limit", 20), queryInt32(r, "page", 1))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, carts)
}

func (h *CartsHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	view, err := h.Carts.GetCartView(r.Context(), cartID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *CartsHandler) deleteCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	if err := h.Carts.DeleteCart(r.Context(), cartID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartsHandler) addItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.Carts.AddItem(r.Context(), cartID, req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartsHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return
	}
	productID, err := urlID(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.Carts.UpdateItemQuantity(r.Context(), cartID, productID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartsHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return
	}
	productID, err := urlID(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.Carts.RemoveItem(r.Context(), cartID, productID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func urlID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
