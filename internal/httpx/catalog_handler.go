package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"artesanos-be/internal/customer"
	"artesanos-be/internal/inventory"
	"artesanos-be/internal/product"
)

// CatalogHandler exposes the read-mostly catalog surface: products, the
// movement audit trail and customers.
type CatalogHandler struct {
	Products  product.Repository
	Inventory inventory.Repository
	Stock     inventory.Service
	Customers customer.Repository
}

type receiveStockRequest struct {
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference"`
	Note      string `json:"note"`
}

type createCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Post("/products", h.createProduct)
	r.Get("/products/{id}/movements", h.listMovements)
	r.Post("/products/{id}/stock", h.receiveStock)

	r.Get("/customers", h.listCustomers)
	r.Get("/customers/{id}", h.getCustomer)
	r.Post("/customers", h.createCustomer)
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	var search *string
	if s := r.URL.Query().Get("search"); s != "" {
		search = &s
	}

	products, err := h.Products.ListProducts(r.Context(), search, queryInt32(r, "limit", 20), queryInt32(r, "page", 1))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.Products.GetProduct(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req product.CreateProductParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	p, err := h.Products.CreateProduct(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) listMovements(w http.ResponseWriter, r *http.Request) {
	productID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	movements, err := h.Inventory.ListMovements(r.Context(), productID, queryInt32(r, "limit", 50), queryInt32(r, "page", 1))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movements)
}

func (h *CatalogHandler) receiveStock(w http.ResponseWriter, r *http.Request) {
	productID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req receiveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be greater than zero")
		return
	}

	if err := h.Stock.ReceiveStock(r.Context(), productID, req.Quantity, req.Reference, req.Note); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.ListCustomers(r.Context(), queryInt32(r, "limit", 20), queryInt32(r, "page", 1))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

func (h *CatalogHandler) getCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	c, err := h.Customers.GetCustomer(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CatalogHandler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	c, err := h.Customers.CreateCustomer(r.Context(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}
