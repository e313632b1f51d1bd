package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/go-resty/resty/v2"
)

var errTelegramNotConfigured = errs.New("telegram bot token or chat id is not configured")

// TelegramNotifier posts an order summary to the shop's operations chat.
// Delivery is best effort: checkout never fails because of it.
type TelegramNotifier struct {
	client *resty.Client
	cfg    config.TelegramConfig
}

func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &TelegramNotifier{client: client, cfg: cfg}
}

func (n *TelegramNotifier) OrderCreated(ctx context.Context, view *queries.OrderView, payer commands.Payer) error {
	if n.cfg.BotToken == "" || n.cfg.ChatID == "" {
		return errTelegramNotConfigured
	}

	body := map[string]string{
		"chat_id":    n.cfg.ChatID,
		"text":       formatOrderMessage(view, payer),
		"parse_mode": "Markdown",
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/bot" + n.cfg.BotToken + "/sendMessage")
	if err != nil {
		return errs.Wrap(err, "failed to call telegram API")
	}
	if resp.StatusCode() != http.StatusOK {
		return errs.Newf("telegram sendMessage failed with status %d", resp.StatusCode())
	}
	return nil
}

func formatOrderMessage(view *queries.OrderView, payer commands.Payer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New order #%d*\n", view.ID)
	fmt.Fprintf(&b, "Buyer: %s %s (%s)\n", payer.Name, payer.Surname, payer.Email)
	if view.ShippingAddress != "" {
		fmt.Fprintf(&b, "Ship to: %s\n", view.ShippingAddress)
	}
	if view.Observations != "" {
		fmt.Fprintf(&b, "Notes: %s\n", view.Observations)
	}
	b.WriteString("\n")
	for _, item := range view.Items {
		fmt.Fprintf(&b, "- %s x%d @ %s = %s\n",
			item.ProductName, item.Quantity,
			item.UnitPrice.StringFixed(2), item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n*Total: %s*", view.TotalAmount.StringFixed(2))
	return b.String()
}
