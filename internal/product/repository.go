package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"artesanos-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetProduct(ctx context.Context, productID int64) (*Product, error)
	GetStock(ctx context.Context, productID int64) (int, error)
	ListProducts(ctx context.Context, search *string, limit, page int32) ([]*Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT product_id, sku, name, price, stock, created_at, updated_at
		FROM products
		WHERE product_id = $1
	`, productID).Scan(&p.ID, &p.SKU, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// GetStock reads the committed stock value outside any placement transaction.
func (r *repository) GetStock(ctx context.Context, productID int64) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE product_id = $1`, productID,
	).Scan(&stock)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}

	return stock, nil
}

func (r *repository) ListProducts(ctx context.Context, search *string, limit, page int32) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)
	start := time.Now()

	// ---------- pagination ----------
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

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if search != nil && *search != "" {
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%d OR sku ILIKE $%d)",
			len(args)+1, len(args)+1,
		))
		args = append(args, "%"+*search+"%")
	}

	query := `
		SELECT product_id, sku, name, price, stock, created_at, updated_at
		FROM products
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error) {
	if params.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	var p Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (sku, name, price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING product_id, sku, name, price, stock, created_at, updated_at
	`, params.SKU, params.Name, params.Price, params.Stock).
		Scan(&p.ID, &p.SKU, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSKUTaken
		}
		return nil, err
	}

	return &p, nil
}
