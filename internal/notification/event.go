package notification

import "time"

const EventOrderCreated = "order-created"

// OrderCreatedEvent is the integration payload consumed by the realtime
// workers. Fields are null-safe: upstream rows may be partially populated.
type OrderCreatedEvent struct {
	EventType     string          `json:"event_type"`
	OrderID       int64           `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	Total         float64         `json:"total"`
	Subtotal      float64         `json:"subtotal"`
	Tax           float64         `json:"tax"`
	Shipping      float64         `json:"shipping"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Customer      CustomerPayload `json:"customer"`
	Items         []ItemPayload   `json:"items"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

type CustomerPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type ItemPayload struct {
	ProductID int64   `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}
