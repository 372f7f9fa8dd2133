package notification

import (
	"context"
	"fmt"
	"strings"

	"storefront-be/internal/event"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const senderName = "Storefront"

// mailSender is the part of *sendgrid.Client the notifier uses.
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type MailNotifier struct {
	client mailSender
	from   string
}

func NewMailNotifier(apiKey, from string) *MailNotifier {
	return &MailNotifier{client: sendgrid.NewSendClient(apiKey), from: from}
}

// Send mails an order confirmation to the buyer.
func (n *MailNotifier) Send(ctx context.Context, to string, o *order.Order) error {
	if n.from == "" {
		return fmt.Errorf("from address is empty")
	}

	subject := fmt.Sprintf("Order #%d confirmation", o.ID)
	body := confirmationBody(o)
	message := mail.NewSingleEmail(
		mail.NewEmail(senderName, n.from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	response, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	logger.FromCtx(ctx).Info("order confirmation sent",
		zap.Uint("order_id", o.ID),
		zap.Int("status", response.StatusCode),
	)
	return nil
}

func (n *MailNotifier) Listener() event.Listener {
	return event.Listener{
		Name: "mail",
		Handle: func(ctx context.Context, payload any) error {
			c, err := created(payload)
			if err != nil {
				return err
			}
			if c.UserEmail == "" {
				// nowhere to send it
				return nil
			}
			return n.Send(ctx, c.UserEmail, c.Order)
		},
	}
}

func confirmationBody(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order #%d.\n\n", o.ID)
	for _, item := range o.Items {
		fmt.Fprintf(&b, "%d x %s @ %s\n", item.Quantity, item.Product.Title, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", o.Total().StringFixed(2))
	return b.String()
}
