package review

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Every query is scoped by product so a review is only reachable under
// the product it was written for.
type Repository interface {
	List(ctx context.Context, productID uint) ([]Review, error)
	Get(ctx context.Context, productID, id uint) (*Review, error)
	Create(ctx context.Context, rv *Review) error
	Update(ctx context.Context, rv *Review) error
	Delete(ctx context.Context, productID, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, productID uint) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, description, date
		FROM reviews
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("list reviews failed",
			zap.String("layer", "repository"),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Name, &rv.Description, &rv.Date); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *repository) Get(ctx context.Context, productID, id uint) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, name, description, date
		FROM reviews
		WHERE product_id = $1 AND id = $2
	`, productID, id).Scan(&rv.ID, &rv.ProductID, &rv.Name, &rv.Description, &rv.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, date
	`, rv.ProductID, rv.Name, rv.Description).Scan(&rv.ID, &rv.Date)
	if db.IsForeignKeyViolation(err) {
		return ErrProductNotFound
	}
	return err
}

func (r *repository) Update(ctx context.Context, rv *Review) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reviews SET name = $1, description = $2
		WHERE product_id = $3 AND id = $4
	`, rv.Name, rv.Description, rv.ProductID, rv.ID)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *repository) Delete(ctx context.Context, productID, id uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE product_id = $1 AND id = $2`, productID, id)
	if err != nil {
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
		return ErrReviewNotFound
	}
	return nil
}
