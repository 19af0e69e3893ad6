package order

import (
	"context"
	"database/sql"
	"errors"

	"artesanos-be/internal/logger"
	"artesanos-be/internal/utils"

	"go.uber.org/zap"
)

// maxOrderNumberAttempts caps the collision-retry loop. Collisions are rare
// (second-resolution timestamp plus a random suffix), so exhausting the
// budget points at clock skew or id exhaustion rather than bad luck.
const maxOrderNumberAttempts = 20

type Repository interface {
	// Transactional writes driven by the order engine.
	NextOrderNumber(ctx context.Context, tx *sql.Tx) (string, error)
	CreateOrder(ctx context.Context, tx *sql.Tx, h *Header) (int64, error)
	AddLine(ctx context.Context, tx *sql.Tx, orderID int64, l Line) error
	GetOrderForCancel(ctx context.Context, tx *sql.Tx, orderID int64) (*CancelTarget, error)
	GetOrderLines(ctx context.Context, tx *sql.Tx, orderID int64) ([]Line, error)
	DeleteOrder(ctx context.Context, tx *sql.Tx, orderID int64) error

	// Reads outside the transaction.
	GetOrderDetails(ctx context.Context, orderID int64) (*Details, error)
	ListOrders(ctx context.Context, limit, page int32) ([]*Summary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) NextOrderNumber(ctx context.Context, tx *sql.Tx) (string, error) {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		candidate := utils.GenerateOrderNumber()

		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE order_number = $1)`, candidate,
		).Scan(&exists)
		if err != nil {
			return "", err
		}

		if !exists {
			return candidate, nil
		}

		logger.FromCtx(ctx).Warn("order number collision",
			zap.String("candidate", candidate),
			zap.Int("attempt", attempt+1),
		)
	}

	return "", ErrOrderNumberGeneration
}

func (r *repository) CreateOrder(ctx context.Context, tx *sql.Tx, h *Header) (int64, error) {
	var orderID int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_id, cart_id, order_number, status, payment_status,
			subtotal, tax, shipping_cost, total, currency, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING order_id
	`,
		h.CustomerID,
		h.CartID,
		h.OrderNumber,
		h.Status,
		h.PaymentStatus,
		h.Subtotal,
		h.Tax,
		h.ShippingCost,
		h.Total,
		h.Currency,
		h.Notes,
	).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	return orderID, nil
}

// AddLine persists one order line. Unit price and line total come from the
// caller as captured at reservation time; they are not recomputed here.
func (r *repository) AddLine(ctx context.Context, tx *sql.Tx, orderID int64, l Line) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5)
	`, orderID, l.ProductID, l.Quantity, l.UnitPrice, l.LineTotal)
	return err
}

// GetOrderForCancel locks the order row so a concurrent reversal or status
// update on the same order waits for this transaction to finish.
func (r *repository) GetOrderForCancel(ctx context.Context, tx *sql.Tx, orderID int64) (*CancelTarget, error) {
	var t CancelTarget
	err := tx.QueryRowContext(ctx, `
		SELECT order_id, cart_id, order_number
		FROM orders
		WHERE order_id = $1
		FOR UPDATE
	`, orderID).Scan(&t.ID, &t.CartID, &t.OrderNumber)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetOrderLines(ctx context.Context, tx *sql.Tx, orderID int64) ([]Line, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY order_item_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// DeleteOrder removes the order row; order_items cascade with it.
func (r *repository) DeleteOrder(ctx context.Context, tx *sql.Tx, orderID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID)
	return err
}

func (r *repository) GetOrderDetails(ctx context.Context, orderID int64) (*Details, error) {
	var d Details
	err := r.db.QueryRowContext(ctx, `
		SELECT o.order_id, o.order_number, o.customer_id, o.cart_id,
		       o.status, o.payment_status,
		       o.subtotal, o.tax, o.shipping_cost, o.total, o.currency, o.notes,
		       cu.first_name, cu.last_name, cu.email,
		       o.created_at, o.updated_at
		FROM orders o
		JOIN customers cu ON cu.customer_id = o.customer_id
		WHERE o.order_id = $1
	`, orderID).Scan(
		&d.ID, &d.OrderNumber, &d.CustomerID, &d.CartID,
		&d.Status, &d.PaymentStatus,
		&d.Subtotal, &d.Tax, &d.ShippingCost, &d.Total, &d.Currency, &d.Notes,
		&d.FirstName, &d.LastName, &d.Email,
		&d.CreatedAt, &d.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_item_id, oi.product_id, p.sku, p.name,
		       oi.quantity, oi.unit_price, oi.line_total,
		       p.price AS current_price
		FROM order_items oi
		JOIN products p ON p.product_id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.order_item_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it DetailItem
		if err := rows.Scan(
			&it.OrderItemID, &it.ProductID, &it.SKU, &it.Name,
			&it.Quantity, &it.UnitPrice, &it.LineTotal,
			&it.CurrentPrice,
		); err != nil {
			return nil, err
		}
		d.Items = append(d.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *repository) ListOrders(ctx context.Context, limit, page int32) ([]*Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, order_number, customer_id, status, payment_status, total, currency, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.OrderNumber, &s.CustomerID, &s.Status, &s.PaymentStatus, &s.Total, &s.Currency, &s.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &s)
	}

	return orders, rows.Err()
}
