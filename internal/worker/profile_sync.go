package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	"github.com/polkiloo/bankportal/internal/domain/model"
)

// SyncFacade exposes the subset of application functionality required by the worker.
type SyncFacade interface {
	SessionsForSync(ctx context.Context, limit int) ([]model.Session, error)
	SyncSession(ctx context.Context, session *model.Session) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// ProfileSyncer periodically re-derives the customer profile of sessions
// still waiting for KYC approval, so a customer approved by an admin is let
// through without signing in again. Expired sessions are purged every tick.
type ProfileSyncer struct {
	facade    SyncFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewProfileSyncer constructs the sync worker pool.
func NewProfileSyncer(facade SyncFacade, interval time.Duration, batchSize, workers int, logger *slog.Logger) *ProfileSyncer {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &ProfileSyncer{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
	}
}

// Start launches background processing. Calling Start on a running syncer
// is a no-op.
func (p *ProfileSyncer) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	jobs := make(chan model.Session, p.batchSize)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx, jobs)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx, jobs)
}

// Stop cancels processing and waits for all workers to finish.
func (p *ProfileSyncer) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *ProfileSyncer) dispatch(ctx context.Context, jobs chan<- model.Session) {
	defer p.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.purge(ctx)
			p.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (p *ProfileSyncer) purge(ctx context.Context) {
	n, err := p.facade.PurgeExpired(ctx)
	if err != nil {
		p.logger.Error("purge expired sessions failed", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		p.logger.Info("expired sessions purged", slog.Int64("count", n))
	}
}

func (p *ProfileSyncer) fetchAndDispatch(ctx context.Context, jobs chan<- model.Session) {
	sessions, err := p.facade.SessionsForSync(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch sessions for sync failed", slog.String("error", err.Error()))
		return
	}
	for _, session := range sessions {
		select {
		case <-ctx.Done():
			return
		case jobs <- session:
		}
	}
}

func (p *ProfileSyncer) worker(ctx context.Context, jobs <-chan model.Session) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case session, ok := <-jobs:
			if !ok {
				return
			}
			p.handleSession(ctx, session)
		}
	}
}

func (p *ProfileSyncer) handleSession(ctx context.Context, session model.Session) {
	err := p.facade.SyncSession(ctx, &session)
	if err == nil {
		return
	}
	if retryAfter, ok := gateway.IsRateLimited(err); ok {
		p.logger.Warn("gateway rate limited", slog.Duration("retry_after", retryAfter))
		select {
		case <-ctx.Done():
		case <-time.After(retryAfter):
		}
		return
	}
	p.logger.Error("profile sync failed",
		slog.String("session_id", session.ID),
		slog.Int64("user_id", session.User.ID),
		slog.String("error", err.Error()),
	)
}
