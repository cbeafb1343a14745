package components

import (
	"marketcart/internal/handler"
	"marketcart/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewStockHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
	),
	fx.Invoke(handler.NewRouter),
)
