package customer

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id uint) (*Customer, error)
	GetByUserID(ctx context.Context, userID uint) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const customerColumns = `id, user_id, phone, birth_date, membership`

func scanCustomer(row interface{ Scan(...any) error }, c *Customer) error {
	var birth sql.NullTime
	if err := row.Scan(&c.ID, &c.UserID, &c.Phone, &birth, &c.Membership); err != nil {
		return err
	}
	if birth.Valid {
		c.BirthDate = &Date{birth.Time}
	}
	return nil
}

func birthArg(c *Customer) any {
	if c.BirthDate == nil {
		return nil
	}
	return c.BirthDate.Time
}

func (r *repository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		logger.FromCtx(ctx).Error("list customers failed",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) (*Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE user_id = $1`, userID)
}

func (r *repository) getOne(ctx context.Context, query string, arg uint) (*Customer, error) {
	var c Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, arg), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (user_id, phone, birth_date, membership)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.UserID, c.Phone, birthArg(c), c.Membership).Scan(&c.ID)

	switch {
	case db.IsUniqueViolation(err):
		return ErrCustomerExists
	case db.IsForeignKeyViolation(err):
		return ErrUnknownUser
	}
	return err
}

func (r *repository) Update(ctx context.Context, c *Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET phone = $1, birth_date = $2, membership = $3
		WHERE id = $4
	`, c.Phone, birthArg(c), c.Membership, c.ID)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrCustomerHasOrders
		}
		return err
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
