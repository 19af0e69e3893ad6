package cart

import "time"

type Status string

const (
	StatusOpen      Status = "open"
	StatusConverted Status = "converted"
	StatusAbandoned Status = "abandoned"
)

type Cart struct {
	ID         int64     `json:"cart_id"`
	CustomerID *int64    `json:"customer_id"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Line is a cart item priced at the current catalog price. LineTotal is
// round(quantity * unit_price, 2), computed at read time.
type Line struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type View struct {
	Cart  Cart   `json:"cart"`
	Lines []Line `json:"items"`
}
