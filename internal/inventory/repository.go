package inventory

import (
	"context"
	"database/sql"
	"errors"

	"artesanos-be/internal/logger"

	"go.uber.org/zap"
)

// Repository is the stock ledger. Every mutating method joins the caller's
// transaction and never commits or rolls back itself: the order engine owns
// the transaction boundary.
type Repository interface {
	CheckAndReserve(ctx context.Context, tx *sql.Tx, productID int64, quantity int, productName string) error
	LogMovement(ctx context.Context, tx *sql.Tx, productID int64, delta int, kind MovementKind, reference, note string) error
	Restock(ctx context.Context, tx *sql.Tx, productID int64, quantity int) error

	ListMovements(ctx context.Context, productID int64, limit, page int32) ([]*Movement, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CheckAndReserve locks the product row, verifies availability and decrements
// stock in place. The row lock is held until the enclosing transaction ends,
// which is what serializes concurrent reservations against the same product.
func (r *repository) CheckAndReserve(ctx context.Context, tx *sql.Tx, productID int64, quantity int, productName string) error {
	var stock int
	err := tx.QueryRowContext(ctx, `
		SELECT stock FROM products WHERE product_id = $1 FOR UPDATE
	`, productID).Scan(&stock)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	if stock < quantity {
		return &InsufficientStockError{
			ProductID: productID,
			Product:   productName,
			Stock:     stock,
			Requested: quantity,
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE product_id = $2
	`, quantity, productID)
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Debug("stock reserved",
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("stock_before", stock),
	)

	return nil
}

// LogMovement appends one audit row. Callers pass the signed delta: negative
// for sales, positive for purchases and reversal adjustments.
func (r *repository) LogMovement(ctx context.Context, tx *sql.Tx, productID int64, delta int, kind MovementKind, reference, note string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO inventory_movements (product_id, quantity_change, movement_type, reference, note)
		VALUES ($1, $2, $3, $4, $5)
	`, productID, delta, kind, reference, note)
	return err
}

// Restock unconditionally returns quantity to a product. Used by the
// reversal path; callers pair it with an adjustment movement.
func (r *repository) Restock(ctx context.Context, tx *sql.Tx, productID int64, quantity int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE product_id = $2
	`, quantity, productID)
	return err
}

func (r *repository) ListMovements(ctx context.Context, productID int64, limit, page int32) ([]*Movement, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx, `
		SELECT movement_id, product_id, quantity_change, movement_type, reference, note, created_at
		FROM inventory_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, movement_id DESC
		LIMIT $2 OFFSET $3
	`, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Delta, &m.Kind, &m.Reference, &m.Note, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, &m)
	}

	return movements, rows.Err()
}
