// Package notification holds the order_created listeners: a structured
// log line, a Redis fan-out message and a SendGrid confirmation mail.
package notification

import (
	"fmt"
	"time"

	"storefront-be/internal/order"

	"github.com/shopspring/decimal"
)

// OrderMessage is the wire form of an order_created event.
type OrderMessage struct {
	OrderID    uint            `json:"order_id"`
	CustomerID uint            `json:"customer_id"`
	UserID     uint            `json:"user_id"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
	PlacedAt   time.Time       `json:"placed_at"`
}

func created(payload any) (order.Created, error) {
	switch p := payload.(type) {
	case order.Created:
		if p.Order == nil {
			return p, fmt.Errorf("order_created payload without order")
		}
		return p, nil
	case *order.Created:
		if p == nil || p.Order == nil {
			return order.Created{}, fmt.Errorf("order_created payload without order")
		}
		return *p, nil
	}
	return order.Created{}, fmt.Errorf("unexpected order_created payload %T", payload)
}

func newOrderMessage(c order.Created) OrderMessage {
	return OrderMessage{
		OrderID:    c.Order.ID,
		CustomerID: c.Order.CustomerID,
		UserID:     c.UserID,
		ItemCount:  len(c.Order.Items),
		Total:      c.Order.Total(),
		PlacedAt:   c.Order.PlacedAt,
	}
}
