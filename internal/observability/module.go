package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/polkiloo/bankportal/internal/config"
)

// Module provides the tracer provider and flushes it on shutdown.
var Module = fx.Options(
	fx.Provide(
		newProvider,
		func(tp *trace.TracerProvider) oteltrace.TracerProvider { return tp },
	),
	fx.Invoke(registerLifecycle),
)

type providerParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newProvider(p providerParams) (*trace.TracerProvider, error) {
	tp, err := NewTracerProvider(p.Ctx, p.Config)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("tracing configured", slog.String("exporter", p.Config.OTelExporter))
	return tp, nil
}

func registerLifecycle(lc fx.Lifecycle, tp *trace.TracerProvider) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
}
