package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Product, int, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
	IsReferencedByOrderItem(ctx context.Context, id uint) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `p.id, p.title, p.slug, p.description, p.unit_price, p.inventory, p.last_update, p.collection_id`

var orderings = map[string]string{
	"unit_price":   "p.unit_price ASC",
	"-unit_price":  "p.unit_price DESC",
	"last_update":  "p.last_update ASC",
	"-last_update": "p.last_update DESC",
}

func scanProduct(row interface{ Scan(...any) error }, p *Product) error {
	return row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.UnitPrice,
		&p.Inventory,
		&p.LastUpdate,
		&p.CollectionID,
	)
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)
	start := time.Now()

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if opts.CollectionID != nil {
		args = append(args, *opts.CollectionID)
		where = append(where, fmt.Sprintf("p.collection_id = $%d", len(args)))
	}
	if opts.PriceGT != nil {
		args = append(args, *opts.PriceGT)
		where = append(where, fmt.Sprintf("p.unit_price > $%d", len(args)))
	}
	if opts.PriceLT != nil {
		args = append(args, *opts.PriceLT)
		where = append(where, fmt.Sprintf("p.unit_price < $%d", len(args)))
	}
	if opts.Search != "" {
		args = append(args, "%"+db.EscapeLike(opts.Search)+"%")
		where = append(where, fmt.Sprintf(`(p.title ILIKE $%d ESCAPE '\' OR p.description ILIKE $%d ESCAPE '\')`, len(args), len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- count ----------
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products p`+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- sort ----------
	orderBy := "p.id ASC"
	if o, ok := orderings[opts.Ordering]; ok {
		orderBy = o + ", p.id ASC"
	}

	query := `SELECT ` + productColumns + ` FROM products p` + whereSQL +
		` ORDER BY ` + orderBy +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]Product, 0, opts.Limit)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)
	return products, total, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var p Product
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	if err := scanProduct(row, &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Exists(ctx context.Context, id uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (title, slug, description, unit_price, inventory, collection_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, last_update
	`, p.Title, p.Slug, p.Description, p.UnitPrice, p.Inventory, p.CollectionID).
		Scan(&p.ID, &p.LastUpdate)
	if db.IsForeignKeyViolation(err) {
		return ErrUnknownCollection
	}
	return err
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET title = $1, slug = $2, description = $3, unit_price = $4,
		    inventory = $5, collection_id = $6, last_update = NOW()
		WHERE id = $7
		RETURNING last_update
	`, p.Title, p.Slug, p.Description, p.UnitPrice, p.Inventory, p.CollectionID, p.ID).
		Scan(&p.LastUpdate)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrProductNotFound
	case db.IsForeignKeyViolation(err):
		return ErrUnknownCollection
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		// order_items.product_id is ON DELETE RESTRICT
		if db.IsForeignKeyViolation(err) {
			return ErrProductInOrder
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) IsReferencedByOrderItem(ctx context.Context, id uint) (bool, error) {
	var referenced bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM order_items WHERE product_id = $1)`, id,
	).Scan(&referenced)
	return referenced, err
}
