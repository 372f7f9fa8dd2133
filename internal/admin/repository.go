package admin

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront-be/internal/customer"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]ProductRow, int, error)
	AllProducts(ctx context.Context) ([]ProductRow, error)
	ClearInventory(ctx context.Context, ids []uint) (int64, error)
	ListCollections(ctx context.Context, search, ordering string) ([]CollectionRow, error)
	ListCustomers(ctx context.Context, search string, limit, offset int) ([]CustomerRow, int, error)
	UpdateMembership(ctx context.Context, customerID uint, m customer.Membership) error
	ListOrders(ctx context.Context, limit, offset int) ([]OrderRow, int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productRowSelect = `
	SELECT p.id, p.title, p.unit_price, p.inventory, c.title, p.last_update
	FROM products p
	JOIN collections c ON c.id = p.collection_id`

func productWhere(f ProductFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.CollectionID != nil {
		args = append(args, *f.CollectionID)
		where = append(where, fmt.Sprintf("p.collection_id = $%d", len(args)))
	}
	if f.LowInventory {
		args = append(args, product.LowInventoryThreshold)
		where = append(where, fmt.Sprintf("p.inventory < $%d", len(args)))
	}
	switch f.Price {
	case PriceBelow50:
		args = append(args, priceSplit)
		where = append(where, fmt.Sprintf("p.unit_price < $%d", len(args)))
	case PriceAbove50:
		args = append(args, priceSplit)
		where = append(where, fmt.Sprintf("p.unit_price > $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+db.EscapeLike(f.Search)+"%")
		where = append(where, fmt.Sprintf(`p.title ILIKE $%d ESCAPE '\'`, len(args)))
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func scanProductRows(rows *sql.Rows) ([]ProductRow, error) {
	out := []ProductRow{}
	for rows.Next() {
		var p ProductRow
		if err := rows.Scan(&p.ID, &p.Title, &p.UnitPrice, &p.Inventory, &p.CollectionTitle, &p.LastUpdate); err != nil {
			return nil, err
		}
		p.InventoryStatus = product.InventoryStatus(p.Inventory)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]ProductRow, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AdminListProducts"),
	)

	whereSQL, args := productWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products p`+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count failed", zap.Error(err))
		return nil, 0, err
	}

	query := productRowSelect + whereSQL +
		fmt.Sprintf(" ORDER BY p.title, p.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanProductRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) AllProducts(ctx context.Context) ([]ProductRow, error) {
	rows, err := r.db.QueryContext(ctx, productRowSelect+" ORDER BY p.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProductRows(rows)
}

func (r *repository) ClearInventory(ctx context.Context, ids []uint) (int64, error) {
	ids64 := make([]int64, len(ids))
	for i, id := range ids {
		ids64[i] = int64(id)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET inventory = 0, last_update = NOW()
		WHERE id = ANY($1)
	`, pq.Array(ids64))
	if err != nil {
		logger.FromCtx(ctx).Error("clear inventory failed", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

var collectionOrderings = map[string]string{
	"title":           "c.title",
	"-title":          "c.title DESC",
	"products_count":  "products_count",
	"-products_count": "products_count DESC",
}

func (r *repository) ListCollections(ctx context.Context, search, ordering string) ([]CollectionRow, error) {
	orderBy := "c.id"
	if o, ok := collectionOrderings[ordering]; ok {
		orderBy = o + ", c.id"
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.title, COUNT(p.id) AS products_count
		FROM collections c
		LEFT JOIN products p ON p.collection_id = c.id
		WHERE c.title ILIKE $1 ESCAPE '\'
		GROUP BY c.id, c.title
		ORDER BY `+orderBy, "%"+db.EscapeLike(search)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CollectionRow{}
	for rows.Next() {
		var c CollectionRow
		if err := rows.Scan(&c.ID, &c.Title, &c.ProductsCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) ListCustomers(ctx context.Context, search string, limit, offset int) ([]CustomerRow, int, error) {
	whereSQL := ""
	args := []any{}
	if search != "" {
		args = append(args, db.EscapeLike(search)+"%")
		whereSQL = ` WHERE u.first_name ILIKE $1 ESCAPE '\' OR u.last_name ILIKE $1 ESCAPE '\'`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM customers cu JOIN users u ON u.id = cu.user_id`+whereSQL,
		args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT cu.id, u.first_name, u.last_name, cu.membership, COUNT(o.id)
		FROM customers cu
		JOIN users u ON u.id = cu.user_id
		LEFT JOIN orders o ON o.customer_id = cu.id` + whereSQL + `
		GROUP BY cu.id, u.first_name, u.last_name, cu.membership
		ORDER BY u.first_name, u.last_name, cu.id` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []CustomerRow{}
	for rows.Next() {
		var c CustomerRow
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Membership, &c.OrderCount); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) UpdateMembership(ctx context.Context, customerID uint, m customer.Membership) error {
	res, err := r.db.ExecContext(ctx, `UPDATE customers SET membership = $1 WHERE id = $2`, string(m), customerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// ListOrders labels each order with its customer's full name.
func (r *repository) ListOrders(ctx context.Context, limit, offset int) ([]OrderRow, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.placed_at, u.first_name, u.last_name
		FROM orders o
		JOIN customers cu ON cu.id = o.customer_id
		JOIN users u ON u.id = cu.user_id
		ORDER BY o.id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []OrderRow{}
	for rows.Next() {
		var (
			o           OrderRow
			first, last string
		)
		if err := rows.Scan(&o.ID, &o.OrderTime, &first, &last); err != nil {
			return nil, 0, err
		}
		o.Customer = strings.TrimSpace(first + " " + last)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
