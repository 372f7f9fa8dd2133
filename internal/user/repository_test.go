package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesCustomerInSameTransaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("ann", "ann@example.com", "Ann", "Lee", "hash", false).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectExec(`INSERT INTO customers \(user_id, membership\) VALUES \(\$1, 'B'\)`).
			WithArgs(uint(12)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		u := &User{Username: "ann", Email: "ann@example.com", FirstName: "Ann", LastName: "Lee", Password: "hash"}
		require.NoError(t, repo.Create(ctx, u))
		assert.Equal(t, uint(12), u.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Create(ctx, &User{Username: "ann"}), ErrUsernameExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CustomerInsertFailsRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO users`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(`INSERT INTO customers`).WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		assert.EqualError(t, repo.Create(ctx, &User{Username: "ann"}), "boom")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("ann").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByUsername(context.Background(), "ann")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
