package bootstrap

import (
	"storefront/internal/infra/gateway"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config) commands.PaymentGateway {
	return gateway.NewMercadoPagoGateway(cfg.MercadoPago)
}
