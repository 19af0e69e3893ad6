package order

import "time"

const (
	StatusPending        = "pending"
	PaymentStatusPending = "pending"

	DefaultCurrency = "USD"
)

// Header carries every order field already computed by the engine; the
// repository persists it verbatim.
type Header struct {
	CustomerID    int64
	CartID        *int64
	OrderNumber   string
	Status        string
	PaymentStatus string
	Subtotal      float64
	Tax           float64
	ShippingCost  float64
	Total         float64
	Currency      string
	Notes         *string
}

// Line is one order item frozen at purchase time. UnitPrice is the catalog
// price captured during placement, never re-read afterwards.
type Line struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// DetailItem is an order line joined with its product: the frozen purchase
// price next to the current catalog price.
type DetailItem struct {
	OrderItemID  int64   `json:"order_item_id"`
	ProductID    int64   `json:"product_id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
	CurrentPrice float64 `json:"current_price"`
}

// Details is the fully joined order view: header, owning customer and items.
type Details struct {
	ID            int64        `json:"order_id"`
	OrderNumber   string       `json:"order_number"`
	CustomerID    int64        `json:"customer_id"`
	CartID        *int64       `json:"cart_id"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"payment_status"`
	Subtotal      float64      `json:"subtotal"`
	Tax           float64      `json:"tax"`
	ShippingCost  float64      `json:"shipping_cost"`
	Total         float64      `json:"total"`
	Currency      string       `json:"currency"`
	Notes         *string      `json:"notes"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Email         string       `json:"email"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Items         []DetailItem `json:"items"`
}

// Summary is the list-view projection of an order header.
type Summary struct {
	ID            int64     `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerID    int64     `json:"customer_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// CancelTarget is the locked order row read at the start of a reversal.
type CancelTarget struct {
	ID          int64
	CartID      *int64
	OrderNumber string
}

// PlaceOrderParams are the caller-supplied overrides for a placement. Zero
// values fall back to tax 0, shipping 0, USD and pending statuses.
type PlaceOrderParams struct {
	Tax           float64 `json:"tax"`
	ShippingCost  float64 `json:"shipping_cost"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Notes         *string `json:"notes"`
}
