package test

import (
	"context"
	"sync"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

// SyncFacadeStub hands out queued session batches and records syncs.
type SyncFacadeStub struct {
	sync.Mutex
	Batches [][]model.Session
	SyncFn  func(context.Context, *model.Session) error
	PurgeFn func(context.Context) (int64, error)
	Synced  []string
	Purges  int
	index   int
}

// SessionsForSync returns the next queued batch.
func (s *SyncFacadeStub) SessionsForSync(ctx context.Context, limit int) ([]model.Session, error) {
	s.Lock()
	defer s.Unlock()
	if s.index >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.index]
	s.index++
	if limit > 0 && len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

// SyncSession records the session id once SyncFn (if any) succeeds.
func (s *SyncFacadeStub) SyncSession(ctx context.Context, session *model.Session) error {
	if s.SyncFn != nil {
		if err := s.SyncFn(ctx, session); err != nil {
			return err
		}
	}
	s.Lock()
	s.Synced = append(s.Synced, session.ID)
	s.Unlock()
	return nil
}

func (s *SyncFacadeStub) PurgeExpired(ctx context.Context) (int64, error) {
	s.Lock()
	s.Purges++
	s.Unlock()
	if s.PurgeFn != nil {
		return s.PurgeFn(ctx)
	}
	return 0, nil
}
