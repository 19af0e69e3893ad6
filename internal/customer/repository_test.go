package customer

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"customer_id", "first_name", "last_name", "email", "created_at"}).
			AddRow(int64(7), "Ada", "Lovelace", "ada@example.com", now)

		mock.ExpectQuery("SELECT customer_id, first_name, last_name, email").
			WithArgs(int64(7)).
			WillReturnRows(rows)

		c, err := repo.GetCustomer(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, "ada@example.com", c.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT customer_id, first_name, last_name, email").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id"}))

		_, err := repo.GetCustomer(context.Background(), 99)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestRepository_CreateCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"customer_id", "first_name", "last_name", "email", "created_at"}).
			AddRow(int64(7), "Ada", "Lovelace", "ada@example.com", now)

		mock.ExpectQuery("INSERT INTO customers").
			WithArgs("Ada", "Lovelace", "ada@example.com").
			WillReturnRows(rows)

		c, err := repo.CreateCustomer(context.Background(), "Ada", "Lovelace", "ada@example.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), c.ID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs("Ada", "Lovelace", "ada@example.com").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.CreateCustomer(context.Background(), "Ada", "Lovelace", "ada@example.com")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestRepository_ListCustomers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"customer_id", "first_name", "last_name", "email", "created_at"}).
		AddRow(int64(7), "Ada", "Lovelace", "ada@example.com", now).
		AddRow(int64(8), "Grace", "Hopper", "grace@example.com", now)

	mock.ExpectQuery("SELECT customer_id, first_name, last_name, email").
		WithArgs(int32(20), int32(0)).
		WillReturnRows(rows)

	customers, err := repo.ListCustomers(context.Background(), 0, 0)
	assert.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "grace@example.com", customers[1].Email)
}
