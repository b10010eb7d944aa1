package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	"github.com/polkiloo/bankportal/internal/config"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/domain/repository"
	pkgAuth "github.com/polkiloo/bankportal/internal/pkg/auth"
)

// SessionUseCase owns the portal session: sign in, restore, refresh and
// the customer profile derived from the customer service.
type SessionUseCase struct {
	auth      gateway.AuthAPI
	customers gateway.CustomerAPI
	sessions  repository.SessionRepository
	tokens    pkgAuth.Strategy
	sealer    pkgAuth.TokenSealer
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewSessionUseCase constructs SessionUseCase.
func NewSessionUseCase(
	auth gateway.AuthAPI,
	customers gateway.CustomerAPI,
	sessions repository.SessionRepository,
	tokens pkgAuth.Strategy,
	sealer pkgAuth.TokenSealer,
	cfg *config.Config,
	logger *slog.Logger,
) *SessionUseCase {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionUseCase{
		auth:      auth,
		customers: customers,
		sessions:  sessions,
		tokens:    tokens,
		sealer:    sealer,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// LoginResult is returned on a successful sign in.
type LoginResult struct {
	Cookie  string
	Session *model.Session
	Landing string
}

// Login signs in against the auth service, derives the customer profile and
// opens a new session.
func (u *SessionUseCase) Login(ctx context.Context, creds model.Credentials) (*LoginResult, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	res, err := u.auth.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, fmt.Errorf("%w: sign in returned no access token", domainErrors.ErrUnauthorized)
	}

	user := res.User
	if user.Username == "" {
		user.Username = creds.Username
	}
	if user.Role == "" {
		user.Role = model.RoleCustomer
	}
	if err := u.syncProfile(gateway.WithToken(ctx, res.AccessToken), &user); err != nil {
		u.logger.Warn("profile sync after login failed", slog.Int64("user_id", user.ID), slog.Any("error", err))
	}

	now := u.now()
	session := &model.Session{
		ID:           u.newID(),
		User:         user,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresAt:    now.Add(u.ttl),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	sealed, err := u.seal(session)
	if err != nil {
		return nil, err
	}
	if err := u.sessions.Create(ctx, sealed); err != nil {
		return nil, err
	}

	cookie, err := u.tokens.IssueToken(session.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Cookie: cookie, Session: session, Landing: Landing(&session.User)}, nil
}

// Register creates a gateway user. No session is opened; the caller signs in
// afterwards. The result carries the MFA QR code when the gateway returns one.
func (u *SessionUseCase) Register(ctx context.Context, reg model.Registration) (*model.AuthResult, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Role == "" {
		reg.Role = model.RoleCustomer
	}
	if err := ValidateRegistration(reg); err != nil {
		return nil, err
	}
	return u.auth.SignUp(ctx, reg)
}

// Current resolves a session cookie without calling the auth service unless
// the gateway token has already expired, in which case it is refreshed once.
func (u *SessionUseCase) Current(ctx context.Context, cookie string) (*model.Session, error) {
	session, err := u.load(ctx, cookie)
	if err != nil {
		return nil, err
	}
	if exp, ok := pkgAuth.GatewayTokenExpiry(session.AccessToken); ok && !exp.After(u.now()) {
		return u.refreshOrDrop(ctx, session)
	}
	return session, nil
}

// Restore is the bootstrap path: the session is loaded and its gateway
// token validated. An invalid token is refreshed once when a refresh token
// is held, otherwise the session is dropped.
func (u *SessionUseCase) Restore(ctx context.Context, cookie string) (*model.Session, error) {
	session, err := u.load(ctx, cookie)
	if err != nil {
		return nil, err
	}

	validation, err := u.auth.Validate(gateway.WithToken(ctx, session.AccessToken))
	if err != nil && !errors.Is(err, domainErrors.ErrUnauthorized) {
		return nil, err
	}
	if err == nil && validation.Valid {
		return session, nil
	}
	return u.refreshOrDrop(ctx, session)
}

// Refresh exchanges the session's refresh token for a new gateway token.
func (u *SessionUseCase) Refresh(ctx context.Context, session *model.Session) (*model.Session, error) {
	if session.RefreshToken == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	res, err := u.auth.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	session.AccessToken = res.AccessToken
	if res.RefreshToken != "" {
		session.RefreshToken = res.RefreshToken
	}
	if err := u.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout tells the auth service the token is gone and always removes the
// local session.
func (u *SessionUseCase) Logout(ctx context.Context, session *model.Session) error {
	if err := u.auth.Logout(gateway.WithToken(ctx, session.AccessToken)); err != nil {
		u.logger.Warn("gateway logout failed", slog.String("session_id", session.ID), slog.Any("error", err))
	}
	return u.sessions.Delete(ctx, session.ID)
}

// UpdateUser merges patch into the session user and persists it.
func (u *SessionUseCase) UpdateUser(ctx context.Context, session *model.Session, patch model.UserPatch) error {
	patch.Apply(&session.User)
	return u.save(ctx, session)
}

// SyncSession re-derives the customer profile with the session's own token
// and persists it when something changed. Only the profile is written back;
// session may be a stale copy whose tokens were rotated meanwhile.
func (u *SessionUseCase) SyncSession(ctx context.Context, session *model.Session) error {
	before := session.User
	if err := u.syncProfile(gateway.WithToken(ctx, session.AccessToken), &session.User); err != nil {
		return err
	}
	if sameProfile(before, session.User) {
		return nil
	}
	session.UpdatedAt = u.now()
	return u.sessions.UpdateProfile(ctx, session.ID, session.User, session.UpdatedAt)
}

// SessionsForSync returns live sessions whose customer profile may still
// change, with gateway tokens opened. Sessions that cannot be opened are
// skipped.
func (u *SessionUseCase) SessionsForSync(ctx context.Context, limit int) ([]model.Session, error) {
	stored, err := u.sessions.ListForSync(ctx, u.now(), limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.Session, 0, len(stored))
	for i := range stored {
		s := stored[i]
		if err := u.open(&s); err != nil {
			u.logger.Warn("skip unreadable session", slog.String("session_id", s.ID), slog.Any("error", err))
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// PurgeExpired deletes sessions past their expiry.
func (u *SessionUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx, u.now())
}

// syncProfile fills CustomerID and KYCStatus from the customer service.
// Admins are skipped and a missing customer leaves the user untouched.
func (u *SessionUseCase) syncProfile(ctx context.Context, user *model.User) error {
	if user == nil || user.IsAdmin() {
		return nil
	}

	customer, err := u.findCustomer(ctx, user)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	id := customer.ID
	user.CustomerID = &id
	user.KYCStatus = customer.KYCStatus
	return nil
}

func (u *SessionUseCase) findCustomer(ctx context.Context, user *model.User) (*model.Customer, error) {
	if user.HasCustomerProfile() {
		return u.customers.GetCustomer(ctx, *user.CustomerID)
	}
	found, err := u.customers.SearchCustomers(ctx, map[string]string{"userId": strconv.FormatInt(user.ID, 10)})
	if err != nil {
		return nil, err
	}
	for i := range found {
		if found[i].UserID == user.ID {
			return &found[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (u *SessionUseCase) load(ctx context.Context, cookie string) (*model.Session, error) {
	if cookie == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	id, err := u.tokens.ParseToken(cookie)
	if err != nil {
		return nil, domainErrors.ErrUnauthorized
	}

	session, err := u.sessions.Get(ctx, id)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return nil, domainErrors.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(u.now()) {
		u.drop(ctx, session.ID)
		return nil, domainErrors.ErrUnauthorized
	}
	if err := u.open(session); err != nil || session.AccessToken == "" {
		u.drop(ctx, session.ID)
		return nil, domainErrors.ErrUnauthorized
	}
	return session, nil
}

func (u *SessionUseCase) refreshOrDrop(ctx context.Context, session *model.Session) (*model.Session, error) {
	refreshed, err := u.Refresh(ctx, session)
	if err == nil {
		return refreshed, nil
	}
	if !errors.Is(err, domainErrors.ErrUnauthorized) && !errors.Is(err, domainErrors.ErrForbidden) {
		return nil, err
	}
	u.drop(ctx, session.ID)
	return nil, domainErrors.ErrUnauthorized
}

func (u *SessionUseCase) drop(ctx context.Context, id string) {
	if err := u.sessions.Delete(ctx, id); err != nil {
		u.logger.Warn("delete session failed", slog.String("session_id", id), slog.Any("error", err))
	}
}

func (u *SessionUseCase) save(ctx context.Context, session *model.Session) error {
	session.UpdatedAt = u.now()
	sealed, err := u.seal(session)
	if err != nil {
		return err
	}
	return u.sessions.Update(ctx, sealed)
}

// seal returns a copy of session with tokens sealed for storage.
func (u *SessionUseCase) seal(session *model.Session) (*model.Session, error) {
	out := *session
	var err error
	if out.AccessToken, err = u.sealer.Seal(session.AccessToken); err != nil {
		return nil, fmt.Errorf("seal access token: %w", err)
	}
	if out.RefreshToken, err = u.sealer.Seal(session.RefreshToken); err != nil {
		return nil, fmt.Errorf("seal refresh token: %w", err)
	}
	return &out, nil
}

func (u *SessionUseCase) open(session *model.Session) error {
	access, err := u.sealer.Open(session.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := u.sealer.Open(session.RefreshToken)
	if err != nil {
		return err
	}
	session.AccessToken, session.RefreshToken = access, refresh
	return nil
}

func sameProfile(a, b model.User) bool {
	if a.KYCStatus != b.KYCStatus {
		return false
	}
	if a.HasCustomerProfile() != b.HasCustomerProfile() {
		return false
	}
	return !a.HasCustomerProfile() || *a.CustomerID == *b.CustomerID
}
