package repository

import (
	"context"
	"time"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

// SessionRepository persists portal sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	// UpdateProfile writes only the customer id and KYC status of user,
	// leaving the stored tokens untouched.
	UpdateProfile(ctx context.Context, id string, user model.User, at time.Time) error
	Delete(ctx context.Context, id string) error
	// ListForSync returns up to limit live sessions whose profile is not yet approved.
	ListForSync(ctx context.Context, now time.Time, limit int) ([]model.Session, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
