package collection

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Collection, error)
	GetByID(ctx context.Context, id uint) (*Collection, error)
	Create(ctx context.Context, c *Collection) error
	Update(ctx context.Context, c *Collection) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// products_count is computed, never stored.
const selectCollections = `
	SELECT c.id, c.title, c.featured_product_id, COUNT(p.id) AS products_count
	FROM collections c
	LEFT JOIN products p ON p.collection_id = c.id
`

func scanCollection(row interface{ Scan(...any) error }, c *Collection) error {
	var featured sql.NullInt64
	if err := row.Scan(&c.ID, &c.Title, &featured, &c.ProductsCount); err != nil {
		return err
	}
	if featured.Valid {
		id := uint(featured.Int64)
		c.FeaturedProductID = &id
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Collection, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCollections"),
	)

	rows, err := r.db.QueryContext(ctx, selectCollections+` GROUP BY c.id ORDER BY c.id`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	collections := []Collection{}
	for rows.Next() {
		var c Collection
		if err := scanCollection(rows, &c); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Collection, error) {
	var c Collection
	row := r.db.QueryRowContext(ctx, selectCollections+` WHERE c.id = $1 GROUP BY c.id`, id)
	if err := scanCollection(row, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Collection) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO collections (title, featured_product_id) VALUES ($1, $2) RETURNING id`,
		c.Title, c.FeaturedProductID,
	).Scan(&c.ID)
	if db.IsForeignKeyViolation(err) {
		return ErrUnknownFeatured
	}
	return err
}

func (r *repository) Update(ctx context.Context, c *Collection) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE collections SET title = $1, featured_product_id = $2 WHERE id = $3`,
		c.Title, c.FeaturedProductID, c.ID,
	)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrUnknownFeatured
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		// products.collection_id is ON DELETE RESTRICT
		if db.IsForeignKeyViolation(err) {
			return ErrCollectionHasProducts
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCollectionNotFound
	}
	return nil
}
