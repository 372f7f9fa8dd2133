package cart

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemRowColumns = []string{"id", "cart_id", "quantity", "product_id", "title", "unit_price"}

func setup(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectQuery(`INSERT INTO carts \(id\) VALUES \(\$1\) RETURNING created_at`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	c, err := repo.Create(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Empty(t, c.Items)
}

func TestRepository_Get(t *testing.T) {
	id := uuid.New()

	t.Run("WithItems", func(t *testing.T) {
		repo, mock := setup(t)

		mock.ExpectQuery(`SELECT created_at FROM carts WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectQuery(`FROM cart_items ci\s+JOIN products p`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(itemRowColumns).
				AddRow(1, id.String(), 2, 10, "Tea", "3.25").
				AddRow(2, id.String(), 1, 11, "Milk", "1.50"))

		c, err := repo.Get(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, c.Items, 2)
		assert.Equal(t, "8", c.TotalPrice().String())
	})

	t.Run("Missing", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(`SELECT created_at FROM carts`).WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), id)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})
}

func TestRepository_AddItem(t *testing.T) {
	id := uuid.New()

	t.Run("UpsertIncrementsQuantity", func(t *testing.T) {
		repo, mock := setup(t)

		mock.ExpectQuery(`(?s)INSERT INTO cart_items.*ON CONFLICT \(cart_id, product_id\).*quantity = cart_items.quantity \+ EXCLUDED.quantity`).
			WithArgs(id, uint(10), 3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}).AddRow(1, 5))

		item, err := repo.AddItem(context.Background(), id, 10, 3)
		require.NoError(t, err)
		assert.Equal(t, uint(1), item.ID)
		assert.Equal(t, 5, item.Quantity)
		assert.Equal(t, uint(10), item.Product.ID)
	})

	t.Run("CartVanished", func(t *testing.T) {
		repo, mock := setup(t)

		mock.ExpectQuery(`INSERT INTO cart_items`).WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM carts`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.AddItem(context.Background(), id, 10, 1)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("ProductVanished", func(t *testing.T) {
		repo, mock := setup(t)

		mock.ExpectQuery(`INSERT INTO cart_items`).WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM carts`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := repo.AddItem(context.Background(), id, 10, 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("QuantityOverflow", func(t *testing.T) {
		repo, mock := setup(t)

		mock.ExpectQuery(`INSERT INTO cart_items`).
			WithArgs(id, uint(10), 32000).
			WillReturnError(&pq.Error{Code: "22003"})

		_, err := repo.AddItem(context.Background(), id, 10, 32000)
		assert.ErrorIs(t, err, ErrQuantityOutOfRange)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ItemScopedToCart(t *testing.T) {
	repo, mock := setup(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE cart_items SET quantity = \$1 WHERE cart_id = \$2 AND id = \$3`).
		WithArgs(4, id, uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateItemQuantity(context.Background(), id, 7, 4), ErrCartItemNotFound)

	mock.ExpectExec(`DELETE FROM cart_items WHERE cart_id = \$1 AND id = \$2`).
		WithArgs(id, uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.DeleteItem(context.Background(), id, 7))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := setup(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM carts WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrCartNotFound)
}
