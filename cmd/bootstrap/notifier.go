package bootstrap

import (
	"context"
	"log/slog"

	"storefront/internal/infra/notify"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		clock.NewRealClock,
		NewNotifier,
	),
)

// NewNotifier assembles the fan-out notifier from whatever channels the
// environment configures. An empty set is valid: checkout treats
// notification as best effort either way.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) commands.Notifier {
	var notifiers []commands.Notifier

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifiers = append(notifiers, notify.NewTelegramNotifier(cfg.Telegram))
	} else {
		slog.Info("telegram notifications disabled: bot token or chat id not set")
	}

	if cfg.AMQP.URL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQP, clk)
		if err != nil {
			slog.Warn("AMQP notifications disabled", "error", err.Error())
		} else {
			notifiers = append(notifiers, amqpNotifier)
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					return amqpNotifier.Close()
				},
			})
		}
	} else {
		slog.Info("AMQP notifications disabled: broker URL not set")
	}

	return notify.NewMultiNotifier(notifiers...)
}
