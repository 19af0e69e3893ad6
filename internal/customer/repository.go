package customer

import (
	"context"
	"database/sql"
	"errors"

	"artesanos-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	CreateCustomer(ctx context.Context, firstName, lastName, email string) (*Customer, error)
	ListCustomers(ctx context.Context, limit, page int32) ([]*Customer, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	var c Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT customer_id, first_name, last_name, email, created_at
		FROM customers
		WHERE customer_id = $1
	`, customerID).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) CreateCustomer(ctx context.Context, firstName, lastName, email string) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCustomer"),
		zap.String("email", email),
	)

	var c Customer
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING customer_id, first_name, last_name, email, created_at
	`, firstName, lastName, email).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		log.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	log.Info("customer created", zap.Int64("customer_id", c.ID))
	return &c, nil
}

func (r *repository) ListCustomers(ctx context.Context, limit, page int32) ([]*Customer, error) {
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
		SELECT customer_id, first_name, last_name, email, created_at
		FROM customers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}

	return customers, rows.Err()
}
