package notify

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	amqp "github.com/rabbitmq/amqp091-go"
)

const orderCreatedRoutingKey = "order.created"

type orderCreatedEvent struct {
	OrderID     int64     `json:"order_id"`
	UserEmail   string    `json:"user_email"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// AMQPNotifier publishes order events for downstream consumers (fulfillment,
// analytics). Like every notifier, it is best effort from checkout's side.
type AMQPNotifier struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	clock    clock.Clock
}

func NewAMQPNotifier(cfg config.AMQPConfig, clk clock.Clock) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to connect to AMQP broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open AMQP channel")
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare order exchange")
	}

	return &AMQPNotifier{conn: conn, channel: ch, exchange: cfg.Exchange, clock: clk}, nil
}

func (n *AMQPNotifier) OrderCreated(ctx context.Context, view *queries.OrderView, payer commands.Payer) error {
	event := orderCreatedEvent{
		OrderID:     view.ID,
		UserEmail:   payer.Email,
		Status:      view.Status,
		TotalAmount: view.TotalAmount.StringFixed(2),
		ItemCount:   len(view.Items),
		CreatedAt:   view.CreatedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal order event")
	}

	err = n.channel.PublishWithContext(ctx,
		n.exchange,
		orderCreatedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    n.clock.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return errs.Wrap(err, "failed to publish order event")
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		_ = n.conn.Close()
		return err
	}
	return n.conn.Close()
}
