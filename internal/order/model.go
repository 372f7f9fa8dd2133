package order

import (
	"time"

	"storefront-be/internal/product"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "P"
	PaymentComplete PaymentStatus = "C"
	PaymentFailed   PaymentStatus = "F"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentComplete, PaymentFailed:
		return true
	}
	return false
}

func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentComplete:
		return "Complete"
	case PaymentFailed:
		return "Failed"
	}
	return string(s)
}

// Item is an order line. UnitPrice is the product price at checkout and
// never follows later catalog changes.
type Item struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"-"`
	Product   product.Product `json:"-"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type Order struct {
	ID            uint          `json:"id"`
	CustomerID    uint          `json:"customer"`
	PlacedAt      time.Time     `json:"placed_at"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Items         []Item        `json:"items"`
}

// Total is the sum of snapshot line prices.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, i := range o.Items {
		total = total.Add(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
	}
	return total
}

type CheckoutInput struct {
	CartID *string `json:"cart_id"`
}

type UpdateInput struct {
	PaymentStatus *PaymentStatus `json:"payment_status"`
}

// Created is the order_created event payload.
type Created struct {
	Order     *Order
	UserID    uint
	UserEmail string
}

type itemResponse struct {
	ID        uint             `json:"id"`
	Product   product.Response `json:"product"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int              `json:"quantity"`
}

type response struct {
	ID            uint           `json:"id"`
	CustomerID    uint           `json:"customer"`
	PlacedAt      time.Time      `json:"placed_at"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	Items         []itemResponse `json:"items"`
}

func toResponse(o Order) response {
	items := make([]itemResponse, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, itemResponse{
			ID:        i.ID,
			Product:   product.NewResponse(i.Product),
			UnitPrice: i.UnitPrice,
			Quantity:  i.Quantity,
		})
	}
	return response{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		PlacedAt:      o.PlacedAt,
		PaymentStatus: o.PaymentStatus,
		Items:         items,
	}
}
