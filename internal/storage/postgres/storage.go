package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps portal sessions in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type sessionRepository struct {
	storage *Storage
}

// New connects to dsn and creates the session schema.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Sessions() repository.SessionRepository {
	return &sessionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS portal_sessions (
            id TEXT PRIMARY KEY,
            user_id BIGINT NOT NULL,
            username TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            customer_id BIGINT,
            kyc_status TEXT NOT NULL DEFAULT '',
            access_token TEXT NOT NULL,
            refresh_token TEXT NOT NULL DEFAULT '',
            expires_at TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            synced_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_portal_sessions_expires ON portal_sessions(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_portal_sessions_sync ON portal_sessions(role, kyc_status, synced_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const sessionColumns = `id, user_id, username, email, role, customer_id, kyc_status,
                        access_token, refresh_token, expires_at, created_at, updated_at`

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(&s.ID, &s.User.ID, &s.User.Username, &s.User.Email, &s.User.Role, &s.User.CustomerID,
		&s.User.KYCStatus, &s.AccessToken, &s.RefreshToken, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Create(ctx context.Context, s *model.Session) error {
	const query = `INSERT INTO portal_sessions (id, user_id, username, email, role, customer_id, kyc_status,
                   access_token, refresh_token, expires_at, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.storage.pool.Exec(ctx, query, s.ID, s.User.ID, s.User.Username, s.User.Email, s.User.Role,
		s.User.CustomerID, s.User.KYCStatus, s.AccessToken, s.RefreshToken, s.ExpiresAt, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM portal_sessions WHERE id=$1`
	s, err := scanSession(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) Update(ctx context.Context, s *model.Session) error {
	const query = `UPDATE portal_sessions
                   SET username=$2, email=$3, role=$4, customer_id=$5, kyc_status=$6,
                       access_token=$7, refresh_token=$8, expires_at=$9, updated_at=$10
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, s.ID, s.User.Username, s.User.Email, s.User.Role, s.User.CustomerID,
		s.User.KYCStatus, s.AccessToken, s.RefreshToken, s.ExpiresAt, s.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) UpdateProfile(ctx context.Context, id string, user model.User, at time.Time) error {
	const query = `UPDATE portal_sessions SET customer_id=$2, kyc_status=$3, updated_at=$4 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, user.CustomerID, user.KYCStatus, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE id=$1`, id)
	return err
}

// ListForSync claims up to limit live customer sessions that still wait for
// KYC approval. Rows locked by another replica are skipped and the claimed
// ones are stamped so the next run starts with the stalest sessions.
func (r *sessionRepository) ListForSync(ctx context.Context, now time.Time, limit int) ([]model.Session, error) {
	selectQuery := `SELECT ` + sessionColumns + `
                    FROM portal_sessions
                    WHERE expires_at > $1 AND role = $2 AND kyc_status <> $3
                    ORDER BY synced_at NULLS FIRST, id
                    LIMIT $4
                    FOR UPDATE SKIP LOCKED`

	var sessions []model.Session
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, now, model.RoleCustomer, model.KYCStatusApproved, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			s, err := scanSession(rows)
			if err != nil {
				return err
			}
			sessions = append(sessions, *s)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(sessions) == 0 {
			return nil
		}

		ids := make([]string, len(sessions))
		for i := range sessions {
			ids[i] = sessions[i].ID
		}
		_, err = tx.Exec(ctx, `UPDATE portal_sessions SET synced_at=$1 WHERE id = ANY($2)`, now, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	if n := tag.RowsAffected(); n > 0 {
		r.storage.logger.Debug("expired sessions removed", slog.Int64("count", n))
	}
	return tag.RowsAffected(), nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
