package gateway

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"

	"github.com/polkiloo/bankportal/internal/config"
)

// Module exposes the gateway client and its per-service views to the fx graph.
var Module = fx.Provide(
	newClient,
	func(c Client) AuthAPI { return c },
	func(c Client) CustomerAPI { return c },
	func(c Client) AccountAPI { return c },
	func(c Client) CreditAPI { return c },
	func(c Client) PaymentAPI { return c },
	func(c Client) NotificationAPI { return c },
	func(c Client) ApprovalAPI { return c },
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GatewayAddress, p.Logger,
		WithTimeout(p.Config.GatewayTimeout),
		WithTransport(otelhttp.NewTransport(http.DefaultTransport)),
	)
}
