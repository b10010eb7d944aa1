// Package storage selects the session store backend.
package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bankportal/internal/config"
	"github.com/polkiloo/bankportal/internal/domain/repository"
	"github.com/polkiloo/bankportal/internal/storage/memory"
	"github.com/polkiloo/bankportal/internal/storage/postgres"
)

// Store is a session backend with its own lifecycle.
type Store interface {
	Sessions() repository.SessionRepository
	HealthCheck(ctx context.Context) error
	Close()
}

// Module wires the session store: PostgreSQL when DATABASE_URI is set,
// process memory otherwise.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(func(s Store) repository.SessionRepository { return s.Sessions() }),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("session store", slog.String("backend", "memory"))
		return memory.New(), nil
	}
	s, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("session store", slog.String("backend", "postgres"))
	return s, nil
}

func registerLifecycle(lc fx.Lifecycle, store Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			store.Close()
			return nil
		},
	})
}
