package address

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByCustomer(ctx context.Context, customerID uint) ([]Address, error)
	Get(ctx context.Context, customerID, id uint) (*Address, error)
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, customerID, id uint) error
	SetDefault(ctx context.Context, customerID, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `id, customer_id, street, city, is_default`

func scanAddress(row interface{ Scan(...any) error }, a *Address) error {
	return row.Scan(&a.ID, &a.CustomerID, &a.Street, &a.City, &a.IsDefault)
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uint) ([]Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE customer_id = $1
		ORDER BY is_default DESC, id
	`, customerID)
	if err != nil {
		logger.FromCtx(ctx).Error("list addresses failed",
			zap.String("layer", "repository"),
			zap.Uint("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	out := []Address{}
	for rows.Next() {
		var a Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, customerID, id uint) (*Address, error) {
	var a Address
	err := scanAddress(r.db.QueryRowContext(ctx, `
		SELECT `+addressColumns+` FROM addresses WHERE customer_id = $1 AND id = $2
	`, customerID, id), &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the address; a default address demotes the previous one in
// the same transaction.
func (r *repository) Create(ctx context.Context, a *Address) error {
	return r.withTx(ctx, "CreateAddress", func(tx *sql.Tx) error {
		if a.IsDefault {
			if err := clearDefault(ctx, tx, a.CustomerID); err != nil {
				return err
			}
		}
		return tx.QueryRowContext(ctx, `
			INSERT INTO addresses (customer_id, street, city, is_default)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, a.CustomerID, a.Street, a.City, a.IsDefault).Scan(&a.ID)
	})
}

func (r *repository) Update(ctx context.Context, a *Address) error {
	return r.withTx(ctx, "UpdateAddress", func(tx *sql.Tx) error {
		if a.IsDefault {
			if err := clearDefault(ctx, tx, a.CustomerID); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE addresses SET street = $1, city = $2, is_default = $3
			WHERE customer_id = $4 AND id = $5
		`, a.Street, a.City, a.IsDefault, a.CustomerID, a.ID)
		if err != nil {
			return err
		}
		return expectOne(res)
	})
}

func (r *repository) Delete(ctx context.Context, customerID, id uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE customer_id = $1 AND id = $2`, customerID, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *repository) SetDefault(ctx context.Context, customerID, id uint) error {
	return r.withTx(ctx, "SetDefaultAddress", func(tx *sql.Tx) error {
		if err := clearDefault(ctx, tx, customerID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE addresses SET is_default = TRUE
			WHERE customer_id = $1 AND id = $2
		`, customerID, id)
		if err != nil {
			return err
		}
		return expectOne(res)
	})
}

func clearDefault(ctx context.Context, tx *sql.Tx, customerID uint) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE addresses SET is_default = FALSE
		WHERE customer_id = $1 AND is_default = TRUE
	`, customerID)
	return err
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) withTx(ctx context.Context, method string, fn func(tx *sql.Tx) error) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error("rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return err
	}
	committed = true
	return nil
}
