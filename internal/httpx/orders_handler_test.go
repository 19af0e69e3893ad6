package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artesanos-be/internal/cart"
	"artesanos-be/internal/inventory"
	"artesanos-be/internal/order"
)

// stubOrderService returns canned values so the handler's decoding and
// status mapping can be exercised without a database.
type stubOrderService struct {
	details *order.Details
	list    []*order.Summary
	err     error
}

func (s *stubOrderService) PlaceOrder(_ context.Context, _ int64, _ order.PlaceOrderParams) (*order.Details, error) {
	return s.details, s.err
}

func (s *stubOrderService) CancelOrder(_ context.Context, _ int64) error {
	return s.err
}

func (s *stubOrderService) GetOrderDetails(_ context.Context, _ int64) (*order.Details, error) {
	return s.details, s.err
}

func (s *stubOrderService) ListOrders(_ context.Context, _, _ int32) ([]*order.Summary, error) {
	return s.list, s.err
}

func newOrdersRouter(svc order.Service) *chi.Mux {
	r := chi.NewRouter()
	(&OrdersHandler{Orders: svc}).Register(r)
	return r
}

func TestOrdersHandler_PlaceOrder(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := &stubOrderService{details: &order.Details{ID: 42, OrderNumber: "ORD-20260831120000-123"}}
		router := newOrdersRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"cart_id":3,"tax":2.5}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "ORD-20260831120000-123")
	})

	t.Run("MissingCartID", func(t *testing.T) {
		router := newOrdersRouter(&stubOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"tax":2.5}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		router := newOrdersRouter(&stubOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("StatusMapping", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"CartNotFound", cart.ErrCartNotFound, http.StatusNotFound},
			{"CartEmpty", cart.ErrCartEmpty, http.StatusConflict},
			{"CartNotOpen", cart.ErrCartNotOpen, http.StatusConflict},
			{"NoCustomer", cart.ErrCartNoCustomer, http.StatusConflict},
			{"InsufficientStock", &inventory.InsufficientStockError{Product: "Mug", Stock: 1, Requested: 5}, http.StatusConflict},
			{"ProductGone", inventory.ErrProductNotFound, http.StatusNotFound},
			{"Internal", errors.New("boom"), http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router := newOrdersRouter(&stubOrderService{err: tt.err})

				req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"cart_id":3}`))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				assert.Equal(t, tt.want, rec.Code)
			})
		}
	})

	t.Run("InsufficientStockBodyKeepsQuantities", func(t *testing.T) {
		stockErr := &inventory.InsufficientStockError{Product: "Mug", Stock: 1, Requested: 5}
		router := newOrdersRouter(&stubOrderService{err: stockErr})

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"cart_id":3}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "current stock 1, requested 5")
	})
}

func TestOrdersHandler_CancelOrder(t *testing.T) {
	t.Run("NoContent", func(t *testing.T) {
		router := newOrdersRouter(&stubOrderService{})

		req := httptest.NewRequest(http.MethodDelete, "/orders/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		router := newOrdersRouter(&stubOrderService{err: order.ErrOrderNotFound})

		req := httptest.NewRequest(http.MethodDelete, "/orders/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		router := newOrdersRouter(&stubOrderService{})

		req := httptest.NewRequest(http.MethodDelete, "/orders/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrdersHandler_GetAndList(t *testing.T) {
	t.Run("GetOrder", func(t *testing.T) {
		svc := &stubOrderService{details: &order.Details{ID: 42, OrderNumber: "ORD-20260831120000-123"}}
		router := newOrdersRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ORD-20260831120000-123")
	})

	t.Run("ListOrders", func(t *testing.T) {
		svc := &stubOrderService{list: []*order.Summary{{ID: 42, OrderNumber: "ORD-20260831120000-123"}}}
		router := newOrdersRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/orders?limit=5&page=2", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
