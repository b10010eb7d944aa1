package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	"github.com/polkiloo/bankportal/internal/app"
	"github.com/polkiloo/bankportal/internal/config"
	"github.com/polkiloo/bankportal/internal/logger"
	"github.com/polkiloo/bankportal/internal/observability"
	"github.com/polkiloo/bankportal/internal/pkg/auth"
	"github.com/polkiloo/bankportal/internal/server/http/handlers"
	"github.com/polkiloo/bankportal/internal/server/http/router"
	"github.com/polkiloo/bankportal/internal/storage"
	"github.com/polkiloo/bankportal/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		observability.Module,
		auth.Module,
		storage.Module,
		gateway.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.PortalFacade) handlers.PortalFacade { return f },
			func(s storage.Store) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
