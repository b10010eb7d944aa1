package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/domain/repository"
)

// SessionRepositoryStub keeps sessions in a map. Fn fields override a call.
type SessionRepositoryStub struct {
	mu       sync.Mutex
	sessions map[string]model.Session

	GetFn         func(context.Context, string) (*model.Session, error)
	ListForSyncFn func(context.Context, time.Time, int) ([]model.Session, error)
	DeleteExpFn   func(context.Context, time.Time) (int64, error)
	Deleted       []string
}

// NewSessionRepositoryStub creates an empty repository stub.
func NewSessionRepositoryStub() *SessionRepositoryStub {
	return &SessionRepositoryStub{sessions: make(map[string]model.Session)}
}

func (r *SessionRepositoryStub) Create(ctx context.Context, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return domainErrors.ErrAlreadyExists
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *SessionRepositoryStub) Get(ctx context.Context, id string) (*model.Session, error) {
	if r.GetFn != nil {
		return r.GetFn(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &s, nil
}

func (r *SessionRepositoryStub) Update(ctx context.Context, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *SessionRepositoryStub) UpdateProfile(ctx context.Context, id string, user model.User, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	s.User.CustomerID, s.User.KYCStatus, s.UpdatedAt = user.CustomerID, user.KYCStatus, at
	r.sessions[id] = s
	return nil
}

func (r *SessionRepositoryStub) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	r.Deleted = append(r.Deleted, id)
	return nil
}

func (r *SessionRepositoryStub) ListForSync(ctx context.Context, now time.Time, limit int) ([]model.Session, error) {
	if r.ListForSyncFn != nil {
		return r.ListForSyncFn(ctx, now, limit)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Session
	for _, s := range r.sessions {
		if !s.Expired(now) && s.NeedsProfileSync() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SessionRepositoryStub) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if r.DeleteExpFn != nil {
		return r.DeleteExpFn(ctx, now)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// Stored returns a copy of the stored session.
func (r *SessionRepositoryStub) Stored(id string) (model.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Put stores s directly.
func (r *SessionRepositoryStub) Put(s model.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

var _ repository.SessionRepository = (*SessionRepositoryStub)(nil)
