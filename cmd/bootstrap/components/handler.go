package components

import (
	"storefront/internal/handler"
	"storefront/internal/handler/api"
	"storefront/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewPaymentHandler,
		api.NewOrderHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	catalog *api.CatalogHandler,
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	payment *api.PaymentHandler,
	order *api.OrderHandler,
) handler.Handlers {
	return handler.Handlers{
		Catalog:  catalog,
		Cart:     cart,
		Checkout: checkout,
		Payment:  payment,
		Order:    order,
	}
}
