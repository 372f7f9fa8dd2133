package cart

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context) (*Cart, error)
	Get(ctx context.Context, id uuid.UUID) (*Cart, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error)
	GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*Item, error)
	AddItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) (*Item, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, cartID uuid.UUID, itemID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `ci.id, ci.cart_id, ci.quantity, p.id, p.title, p.unit_price`

func scanItem(row interface{ Scan(...any) error }, i *Item) error {
	return row.Scan(&i.ID, &i.CartID, &i.Quantity, &i.Product.ID, &i.Product.Title, &i.Product.UnitPrice)
}

func (r *repository) Create(ctx context.Context) (*Cart, error) {
	c := &Cart{ID: uuid.New(), Items: []Item{}}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO carts (id) VALUES ($1) RETURNING created_at`, c.ID,
	).Scan(&c.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("create cart failed",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Cart, error) {
	c := &Cart{ID: id}
	err := r.db.QueryRowContext(ctx, `SELECT created_at FROM carts WHERE id = $1`, id).Scan(&c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	if c.Items, err = r.ListItems(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM carts WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Delete removes the cart; cart_items go with it via ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *repository) ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var i Item
		if err := scanItem(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*Item, error) {
	var i Item
	row := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1 AND ci.id = $2
	`, cartID, itemID)
	if err := scanItem(row, &i); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &i, nil
}

// AddItem inserts a line or, when the product is already in the cart,
// adds quantity to the existing line. The unique (cart_id, product_id)
// constraint makes this a single atomic statement.
func (r *repository) AddItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) (*Item, error) {
	i := &Item{CartID: cartID, Product: ItemProduct{ID: productID}}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity
	`, cartID, productID, quantity).Scan(&i.ID, &i.Quantity)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, r.missingParent(ctx, cartID)
		}
		if db.IsNumericOutOfRange(err) {
			return nil, ErrQuantityOutOfRange
		}
		logger.FromCtx(ctx).Error("add cart item failed",
			zap.String("layer", "repository"),
			zap.String("method", "AddItem"),
			zap.Error(err),
		)
		return nil, err
	}
	return i, nil
}

// missingParent tells which side of a foreign key violation disappeared.
func (r *repository) missingParent(ctx context.Context, cartID uuid.UUID) error {
	ok, err := r.Exists(ctx, cartID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartNotFound
	}
	return ErrProductNotFound
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND id = $3`,
		quantity, cartID, itemID,
	)
	if err != nil {
		return err
	}
	return expectItem(res)
}

func (r *repository) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	if err != nil {
		return err
	}
	return expectItem(res)
}

func expectItem(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}
