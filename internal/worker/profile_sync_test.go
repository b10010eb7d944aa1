package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	testhelpers "github.com/polkiloo/bankportal/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewProfileSyncerDefaults(t *testing.T) {
	proc := NewProfileSyncer(&testhelpers.SyncFacadeStub{}, 0, 0, 0, discardLogger())
	if proc.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", proc.batchSize)
	}
	if proc.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", proc.workers)
	}
	if proc.interval != time.Second {
		t.Fatalf("expected interval default to 1s, got %v", proc.interval)
	}
}

func TestProfileSyncerSyncsSessions(t *testing.T) {
	facade := &testhelpers.SyncFacadeStub{Batches: [][]model.Session{{{ID: "a"}, {ID: "b"}}}}
	proc := NewProfileSyncer(facade, 5*time.Millisecond, 4, 2, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Synced) == 2 && facade.Purges > 0
	})
	proc.Stop()
}

func TestProfileSyncerBacksOffWhenRateLimited(t *testing.T) {
	var attempts int32
	facade := &testhelpers.SyncFacadeStub{
		Batches: [][]model.Session{{{ID: "a"}}, {{ID: "a"}}},
		SyncFn: func(context.Context, *model.Session) error {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return &domainErrors.GatewayError{Status: http.StatusTooManyRequests, RetryAfter: 10 * time.Millisecond}
			}
			return nil
		},
	}
	proc := NewProfileSyncer(facade, 5*time.Millisecond, 1, 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Synced) == 1
	})
	proc.Stop()
	if atomic.LoadInt32(&attempts) < 2 {
		t.Fatalf("expected a retry after rate limiting, got %d attempts", attempts)
	}
}

func TestProfileSyncerSurvivesFailures(t *testing.T) {
	facade := &testhelpers.SyncFacadeStub{
		Batches: [][]model.Session{{{ID: "broken"}}, {{ID: "ok"}}},
		SyncFn: func(_ context.Context, s *model.Session) error {
			if s.ID == "broken" {
				return errors.New("customer service down")
			}
			return nil
		},
		PurgeFn: func(context.Context) (int64, error) { return 0, errors.New("store down") },
	}
	proc := NewProfileSyncer(facade, 5*time.Millisecond, 1, 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Synced) == 1 && facade.Synced[0] == "ok"
	})
	proc.Stop()
}

func TestProfileSyncerStopWithoutStart(t *testing.T) {
	proc := NewProfileSyncer(&testhelpers.SyncFacadeStub{}, time.Second, 1, 1, discardLogger())
	proc.Stop()
}

func TestProfileSyncerRestart(t *testing.T) {
	facade := &testhelpers.SyncFacadeStub{}
	proc := NewProfileSyncer(facade, 5*time.Millisecond, 1, 1, discardLogger())
	ctx := context.Background()

	proc.Start(ctx)
	proc.Start(ctx)
	proc.Stop()

	facade.Lock()
	facade.Batches = [][]model.Session{{{ID: "late"}}}
	facade.Unlock()

	proc.Start(ctx)
	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Synced) == 1
	})
	proc.Stop()
}
