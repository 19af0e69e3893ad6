package cart

import (
	"context"
	"database/sql"
	"errors"

	"artesanos-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// Snapshot reads and status flips used by the order engine. They run on
	// the caller's transaction so reads respect the enclosing row locks.
	GetCart(ctx context.Context, tx *sql.Tx, cartID int64) (*Cart, error)
	GetCartLines(ctx context.Context, tx *sql.Tx, cartID int64) ([]Line, error)
	CloseCart(ctx context.Context, tx *sql.Tx, cartID int64) error
	ReopenCart(ctx context.Context, tx *sql.Tx, cartID int64) error

	// Cart lifecycle outside the order engine.
	CreateCart(ctx context.Context, customerID *int64) (*Cart, error)
	GetCartView(ctx context.Context, cartID int64) (*View, error)
	ListCarts(ctx context.Context, limit, page int32) ([]*Cart, error)
	AddItem(ctx context.Context, cartID, productID int64, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID int64) error
	DeleteCart(ctx context.Context, cartID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCart(ctx context.Context, tx *sql.Tx, cartID int64) (*Cart, error) {
	var c Cart
	err := tx.QueryRowContext(ctx, `
		SELECT cart_id, customer_id, status, created_at, updated_at
		FROM carts
		WHERE cart_id = $1
	`, cartID).Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetCartLines(ctx context.Context, tx *sql.Tx, cartID int64) ([]Line, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.name, p.price,
		       ROUND(ci.quantity * p.price, 2) AS line_total
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.cart_item_id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.Name, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (r *repository) CloseCart(ctx context.Context, tx *sql.Tx, cartID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE carts SET status = $1, updated_at = NOW() WHERE cart_id = $2
	`, StatusConverted, cartID)
	return err
}

func (r *repository) ReopenCart(ctx context.Context, tx *sql.Tx, cartID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE carts SET status = $1, updated_at = NOW() WHERE cart_id = $2
	`, StatusOpen, cartID)
	return err
}

func (r *repository) CreateCart(ctx context.Context, customerID *int64) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCart"),
	)

	var c Cart
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (customer_id, status)
		VALUES ($1, $2)
		RETURNING cart_id, customer_id, status, created_at, updated_at
	`, customerID, StatusOpen).Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		log.Error("failed to create cart", zap.Error(err))
		return nil, err
	}

	log.Info("cart created", zap.Int64("cart_id", c.ID))
	return &c, nil
}

func (r *repository) GetCartView(ctx context.Context, cartID int64) (*View, error) {
	var v View
	err := r.db.QueryRowContext(ctx, `
		SELECT cart_id, customer_id, status, created_at, updated_at
		FROM carts
		WHERE cart_id = $1
	`, cartID).Scan(&v.Cart.ID, &v.Cart.CustomerID, &v.Cart.Status, &v.Cart.CreatedAt, &v.Cart.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.name, p.price,
		       ROUND(ci.quantity * p.price, 2) AS line_total
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.cart_item_id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.Name, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, err
		}
		v.Lines = append(v.Lines, l)
	}

	return &v, rows.Err()
}

func (r *repository) ListCarts(ctx context.Context, limit, page int32) ([]*Cart, error) {
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
		SELECT cart_id, customer_id, status, created_at, updated_at
		FROM carts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []*Cart
	for rows.Next() {
		var c Cart
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		carts = append(carts, &c)
	}

	return carts, rows.Err()
}

// requireOpen guards item mutations: a converted or abandoned cart is frozen.
func (r *repository) requireOpen(ctx context.Context, cartID int64) error {
	var status Status
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM carts WHERE cart_id = $1`, cartID,
	).Scan(&status)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrCartNotFound
	}
	if err != nil {
		return err
	}
	if status != StatusOpen {
		return ErrCartNotOpen
	}
	return nil
}

func (r *repository) AddItem(ctx context.Context, cartID, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := r.requireOpen(ctx, cartID); err != nil {
		return err
	}

	// Existing line for the same product gets its quantity bumped.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, cartID, productID, quantity)
	return err
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartID, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := r.requireOpen(ctx, cartID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $1
		WHERE cart_id = $2 AND product_id = $3
	`, quantity, cartID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) RemoveItem(ctx context.Context, cartID, productID int64) error {
	if err := r.requireOpen(ctx, cartID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) DeleteCart(ctx context.Context, cartID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE cart_id = $1`, cartID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}
