package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemProduct is the product view embedded in a cart line.
type ItemProduct struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Item struct {
	ID       uint        `json:"id"`
	CartID   uuid.UUID   `json:"-"`
	Product  ItemProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

// TotalPrice uses the product's current price, not a snapshot.
func (i Item) TotalPrice() decimal.Decimal {
	return i.Product.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"-"`
	Items     []Item    `json:"items"`
}

// TotalPrice is the sum of line totals; an empty cart totals zero.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

type AddItemInput struct {
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

type UpdateItemInput struct {
	Quantity *int `json:"quantity"`
}

type itemResponse struct {
	ID         uint            `json:"id"`
	Product    ItemProduct     `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type cartResponse struct {
	ID         uuid.UUID       `json:"id"`
	Items      []itemResponse  `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type addedItemResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func toItemResponse(i Item) itemResponse {
	return itemResponse{
		ID:         i.ID,
		Product:    i.Product,
		Quantity:   i.Quantity,
		TotalPrice: i.TotalPrice(),
	}
}

func toCartResponse(c Cart) cartResponse {
	items := make([]itemResponse, 0, len(c.Items))
	for _, i := range c.Items {
		items = append(items, toItemResponse(i))
	}
	return cartResponse{ID: c.ID, Items: items, TotalPrice: c.TotalPrice()}
}
