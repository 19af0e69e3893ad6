package inventory

import "time"

type MovementKind string

const (
	MovementSale       MovementKind = "sale"
	MovementPurchase   MovementKind = "purchase"
	MovementAdjustment MovementKind = "adjustment"
)

// Movement is one append-only audit record of a stock change. Sale rows carry
// a negative delta, purchases and reversal adjustments a positive one.
type Movement struct {
	ID        int64        `json:"movement_id"`
	ProductID int64        `json:"product_id"`
	Delta     int          `json:"quantity_change"`
	Kind      MovementKind `json:"movement_type"`
	Reference string       `json:"reference"`
	Note      string       `json:"note"`
	CreatedAt time.Time    `json:"created_at"`
}
