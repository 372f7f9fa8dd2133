package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CartState reports whether the cart exists and how many lines it has.
	CartState(ctx context.Context, cartID uuid.UUID) (exists bool, items int, err error)
	CreateFromCart(ctx context.Context, userID uint, cartID uuid.UUID) (*Order, error)

	List(ctx context.Context, customerID *uint) ([]Order, error)
	Get(ctx context.Context, id uint, customerID *uint) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemProductColumns = `oi.id, oi.order_id, oi.unit_price, oi.quantity,
	p.id, p.title, p.slug, p.description, p.unit_price, p.inventory, p.last_update, p.collection_id`

func scanItem(row interface{ Scan(...any) error }, i *Item) error {
	p := &i.Product
	return row.Scan(
		&i.ID, &i.OrderID, &i.UnitPrice, &i.Quantity,
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory, &p.LastUpdate, &p.CollectionID,
	)
}

func (r *repository) CartState(ctx context.Context, cartID uuid.UUID) (bool, int, error) {
	var exists bool
	var items int
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM carts WHERE id = $1),
		       (SELECT COUNT(*) FROM cart_items WHERE cart_id = $1)
	`, cartID).Scan(&exists, &items)
	return exists, items, err
}

// cartLine is a cart item joined with its product's current price.
type cartLine struct {
	Quantity int
	Product  product.Product
}

// CreateFromCart turns a cart into an order in a single transaction: lock
// the cart, create the order, snapshot every line's price into order_items,
// then delete the cart. Any failure leaves the cart untouched.
func (r *repository) CreateFromCart(ctx context.Context, userID uint, cartID uuid.UUID) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromCart"),
		zap.String("cart_id", cartID.String()),
		zap.Uint("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	// 1. Lock the cart; a concurrent checkout of the same cart waits here
	// and then finds it gone.
	var locked uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		log.Error("failed to lock cart", zap.Error(err))
		return nil, err
	}

	// 2. Customer of the authenticated user
	o := &Order{PaymentStatus: PaymentPending}
	err = tx.QueryRowContext(ctx, `SELECT id FROM customers WHERE user_id = $1`, userID).Scan(&o.CustomerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	// 3. Order header
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, payment_status)
		VALUES ($1, $2)
		RETURNING id, placed_at
	`, o.CustomerID, o.PaymentStatus).Scan(&o.ID, &o.PlacedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	// 4. Cart lines with current prices
	lines, err := cartItemsWithProduct(ctx, tx, cartID)
	if err != nil {
		log.Error("failed to read cart items", zap.Error(err))
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	// 5. Order lines, one multi-row insert
	o.Items = make([]Item, len(lines))
	values := make([]string, 0, len(lines))
	args := make([]any, 0, len(lines)*4)
	for i, l := range lines {
		o.Items[i] = Item{
			OrderID:   o.ID,
			Product:   l.Product,
			UnitPrice: l.Product.UnitPrice,
			Quantity:  l.Quantity,
		}

		n := len(args)
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, o.ID, l.Product.ID, l.Product.UnitPrice, l.Quantity)
	}

	rows, err := tx.QueryContext(ctx, `
		INSERT INTO order_items (order_id, product_id, unit_price, quantity)
		VALUES `+strings.Join(values, ", ")+`
		RETURNING id
	`, args...)
	if err != nil {
		log.Error("failed to insert order items", zap.Error(err))
		return nil, err
	}
	for i := 0; i < len(o.Items) && rows.Next(); i++ {
		if err := rows.Scan(&o.Items[i].ID); err != nil {
			rows.Close()
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// 6. Consume the cart; cart_items cascade
	res, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		log.Error("failed to delete cart", zap.Error(err))
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n != 1 {
		return nil, ErrCartNotFound
	}

	// 7. Commit
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout", zap.Error(err))
		return nil, err
	}
	committed = true

	log.Info("checkout committed",
		zap.Uint("order_id", o.ID),
		zap.Int("item_count", len(o.Items)),
	)
	return o, nil
}

func cartItemsWithProduct(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) ([]cartLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.quantity,
		       p.id, p.title, p.slug, p.description, p.unit_price, p.inventory, p.last_update, p.collection_id
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		p := &l.Product
		if err := rows.Scan(
			&l.Quantity,
			&p.ID, &p.Title, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory, &p.LastUpdate, &p.CollectionID,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *repository) List(ctx context.Context, customerID *uint) ([]Order, error) {
	query := `SELECT id, customer_id, placed_at, payment_status FROM orders`
	args := []any{}
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("list orders failed",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.PlacedAt, &o.PaymentStatus); err != nil {
			return nil, err
		}
		o.Items = []Item{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) Get(ctx context.Context, id uint, customerID *uint) (*Order, error) {
	query := `SELECT id, customer_id, placed_at, payment_status FROM orders WHERE id = $1`
	args := []any{id}
	if customerID != nil {
		query += ` AND customer_id = $2`
		args = append(args, *customerID)
	}

	o := Order{Items: []Item{}}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.CustomerID, &o.PlacedAt, &o.PaymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	orders := []Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// attachItems loads the lines of every order in one query.
func (r *repository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	index := make(map[uint]int, len(orders))
	for i, o := range orders {
		ids[i] = int64(o.ID)
		index[o.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemProductColumns+`
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := scanItem(rows, &item); err != nil {
			return err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// Delete removes an order and, by cascade, its lines.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
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
		return ErrOrderNotFound
	}
	return nil
}
