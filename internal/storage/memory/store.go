// Package memory keeps portal sessions in process memory. It backs
// single-instance deployments that run without DATABASE_URI.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/domain/repository"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func New() *Store {
	return &Store{sessions: make(map[string]model.Session)}
}

func (s *Store) Sessions() repository.SessionRepository { return s }

func (s *Store) HealthCheck(context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) Create(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return domainErrors.ErrAlreadyExists
	}
	s.sessions[session.ID] = clone(*session)
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := clone(session)
	return &out, nil
}

func (s *Store) Update(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sessions[session.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	updated := clone(*session)
	updated.CreatedAt = existing.CreatedAt
	s.sessions[session.ID] = updated
	return nil
}

func (s *Store) UpdateProfile(_ context.Context, id string, user model.User, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sessions[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	existing.User.CustomerID = nil
	if user.CustomerID != nil {
		customerID := *user.CustomerID
		existing.User.CustomerID = &customerID
	}
	existing.User.KYCStatus = user.KYCStatus
	existing.UpdatedAt = at
	s.sessions[id] = existing
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// ListForSync returns live sessions that still wait for KYC approval, least
// recently updated first.
func (s *Store) ListForSync(_ context.Context, now time.Time, limit int) ([]model.Session, error) {
	s.mu.RLock()
	var out []model.Session
	for _, session := range s.sessions {
		if session.Expired(now) || !session.NeedsProfileSync() {
			continue
		}
		out = append(out, clone(session))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// clone detaches the customer id pointer from the caller's copy.
func clone(session model.Session) model.Session {
	if session.User.CustomerID != nil {
		id := *session.User.CustomerID
		session.User.CustomerID = &id
	}
	return session
}
