package notification

import (
	"context"

	"storefront-be/internal/event"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

func LogListener() event.Listener {
	return event.Listener{
		Name: "log",
		Handle: func(ctx context.Context, payload any) error {
			c, err := created(payload)
			if err != nil {
				return err
			}
			msg := newOrderMessage(c)
			logger.FromCtx(ctx).Info("order created",
				zap.Uint("order_id", msg.OrderID),
				zap.Uint("customer_id", msg.CustomerID),
				zap.Int("item_count", msg.ItemCount),
				zap.String("total", msg.Total.StringFixed(2)),
			)
			return nil
		},
	}
}
