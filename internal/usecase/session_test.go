package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/bankportal/internal/config"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	testhelpers "github.com/polkiloo/bankportal/internal/test"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newSessionUseCase(gw *testhelpers.GatewayStub, repo *testhelpers.SessionRepositoryStub) *SessionUseCase {
	uc := NewSessionUseCase(gw, gw, repo, testhelpers.StrategyStub{}, testhelpers.SealerStub{},
		&config.Config{SessionTTL: time.Hour}, discardLogger())
	uc.now = func() time.Time { return fixedNow }
	uc.newID = func() string { return "sid-1" }
	return uc
}

func int64Ptr(v int64) *int64 { return &v }

func storeSession(repo *testhelpers.SessionRepositoryStub, user model.User, access, refresh string) {
	sealer := testhelpers.SealerStub{}
	sealedAccess, _ := sealer.Seal(access)
	sealedRefresh, _ := sealer.Seal(refresh)
	repo.Put(model.Session{
		ID:           "sid-1",
		User:         user,
		AccessToken:  sealedAccess,
		RefreshToken: sealedRefresh,
		ExpiresAt:    fixedNow.Add(time.Hour),
	})
}

func TestSessionLoginSyncsProfileAndSealsTokens(t *testing.T) {
	gw := &testhelpers.GatewayStub{
		SignInFn: func(ctx context.Context, c model.Credentials) (*model.AuthResult, error) {
			return &model.AuthResult{AccessToken: "acc", RefreshToken: "ref", User: model.User{ID: 7, Username: "alice", Role: model.RoleCustomer}}, nil
		},
		SearchCustFn: func(ctx context.Context, q map[string]string) ([]model.Customer, error) {
			if q["userId"] != "7" {
				t.Fatalf("unexpected search query %v", q)
			}
			return []model.Customer{{ID: 99, UserID: 3}, {ID: 42, UserID: 7, KYCStatus: model.KYCStatusApproved}}, nil
		},
	}
	repo := testhelpers.NewSessionRepositoryStub()
	uc := newSessionUseCase(gw, repo)

	res, err := uc.Login(context.Background(), model.Credentials{Username: " alice ", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Cookie != "cookie-sid-1" {
		t.Fatalf("unexpected cookie %q", res.Cookie)
	}
	if res.Landing != PathDashboard {
		t.Fatalf("unexpected landing %q", res.Landing)
	}
	if gw.LastToken() != "acc" {
		t.Fatalf("profile sync should use the new token, got %q", gw.LastToken())
	}

	stored, ok := repo.Stored("sid-1")
	if !ok {
		t.Fatal("session not stored")
	}
	if stored.AccessToken != "sealed(acc)" || stored.RefreshToken != "sealed(ref)" {
		t.Fatalf("tokens not sealed: %+v", stored)
	}
	if stored.User.CustomerID == nil || *stored.User.CustomerID != 42 {
		t.Fatalf("customer id not synced: %+v", stored.User)
	}
	if !stored.ExpiresAt.Equal(fixedNow.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %s", stored.ExpiresAt)
	}
}

func TestSessionLoginRejectsBlankCredentials(t *testing.T) {
	uc := newSessionUseCase(&testhelpers.GatewayStub{}, testhelpers.NewSessionRepositoryStub())
	if _, err := uc.Login(context.Background(), model.Credentials{Username: "  ", Password: "x"}); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionLoginGatewayError(t *testing.T) {
	gw := &testhelpers.GatewayStub{SignInFn: func(context.Context, model.Credentials) (*model.AuthResult, error) {
		return nil, errors.Join(domainErrors.ErrInvalidCredentials, &domainErrors.GatewayError{Status: 401, Message: "Bad credentials"})
	}}
	uc := newSessionUseCase(gw, testhelpers.NewSessionRepositoryStub())
	_, err := uc.Login(context.Background(), model.Credentials{Username: "a", Password: "b"})
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if domainErrors.Message(err) != "Bad credentials" {
		t.Fatalf("unexpected message %q", domainErrors.Message(err))
	}
}

func TestSessionLoginAdminSkipsSync(t *testing.T) {
	gw := &testhelpers.GatewayStub{
		SignInFn: func(context.Context, model.Credentials) (*model.AuthResult, error) {
			return &model.AuthResult{AccessToken: "acc", User: model.User{ID: 1, Role: model.RoleAdmin}}, nil
		},
		SearchCustFn: func(context.Context, map[string]string) ([]model.Customer, error) {
			t.Fatal("admin profile must not be synced")
			return nil, nil
		},
	}
	uc := newSessionUseCase(gw, testhelpers.NewSessionRepositoryStub())
	res, err := uc.Login(context.Background(), model.Credentials{Username: "root", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Landing != PathAdmin {
		t.Fatalf("unexpected landing %q", res.Landing)
	}
	if res.Session.User.Username != "root" {
		t.Fatalf("username should fall back to credentials, got %q", res.Session.User.Username)
	}
}

func TestSessionLoginSyncFailureIsNotFatal(t *testing.T) {
	gw := &testhelpers.GatewayStub{
		SearchCustFn: func(context.Context, map[string]string) ([]model.Customer, error) {
			return nil, &domainErrors.GatewayError{Status: 503}
		},
	}
	uc := newSessionUseCase(gw, testhelpers.NewSessionRepositoryStub())
	res, err := uc.Login(context.Background(), model.Credentials{Username: "bob", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Landing != PathOnboardingProfile {
		t.Fatalf("unexpected landing %q", res.Landing)
	}
}

func TestSessionRegisterValidates(t *testing.T) {
	uc := newSessionUseCase(&testhelpers.GatewayStub{}, testhelpers.NewSessionRepositoryStub())
	_, err := uc.Register(context.Background(), model.Registration{Username: "ab", Email: "a@b.co", Password: "secret"})
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	res, err := uc.Register(context.Background(), model.Registration{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Role != model.RoleCustomer {
		t.Fatalf("role should default to CUSTOMER, got %q", res.User.Role)
	}
}

func TestSessionCurrent(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	storeSession(repo, model.User{ID: 1}, "acc", "")
	uc := newSessionUseCase(&testhelpers.GatewayStub{}, repo)

	s, err := uc.Current(context.Background(), "cookie-sid-1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if s.AccessToken != "acc" {
		t.Fatalf("token not opened: %q", s.AccessToken)
	}

	for _, cookie := range []string{"", "garbage", "cookie-missing"} {
		if _, err := uc.Current(context.Background(), cookie); !errors.Is(err, domainErrors.ErrUnauthorized) {
			t.Fatalf("cookie %q: expected ErrUnauthorized, got %v", cookie, err)
		}
	}
}

func TestSessionCurrentDropsExpiredAndCorrupt(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	repo.Put(model.Session{ID: "sid-1", AccessToken: "sealed(acc)", ExpiresAt: fixedNow})
	uc := newSessionUseCase(&testhelpers.GatewayStub{}, repo)
	if _, err := uc.Current(context.Background(), "cookie-sid-1"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, ok := repo.Stored("sid-1"); ok {
		t.Fatal("expired session should be deleted")
	}

	repo.Put(model.Session{ID: "sid-1", AccessToken: "plain-not-sealed", ExpiresAt: fixedNow.Add(time.Hour)})
	if _, err := uc.Current(context.Background(), "cookie-sid-1"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, ok := repo.Stored("sid-1"); ok {
		t.Fatal("corrupt session should be deleted")
	}
}

func TestSessionRestoreValidToken(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	storeSession(repo, model.User{ID: 1}, "acc", "ref")
	gw := &testhelpers.GatewayStub{}
	uc := newSessionUseCase(gw, repo)

	s, err := uc.Restore(context.Background(), "cookie-sid-1")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if s.AccessToken != "acc" || gw.LastToken() != "acc" {
		t.Fatalf("validate should use the stored token, got %q", gw.LastToken())
	}
}

func TestSessionRestoreRefreshesOnce(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	storeSession(repo, model.User{ID: 1}, "old", "ref")
	refreshCalls := 0
	gw := &testhelpers.GatewayStub{
		ValidateFn: func(context.Context) (*model.TokenValidation, error) {
			return &model.TokenValidation{Valid: false}, nil
		},
		RefreshFn: func(ctx context.Context, token string) (*model.AuthResult, error) {
			refreshCalls++
			if token != "ref" {
				t.Fatalf("unexpected refresh token %q", token)
			}
			return &model.AuthResult{AccessToken: "new"}, nil
		},
	}
	uc := newSessionUseCase(gw, repo)

	s, err := uc.Restore(context.Background(), "cookie-sid-1")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if refreshCalls != 1 {
		t.Fatalf("expected one refresh, got %d", refreshCalls)
	}
	if s.AccessToken != "new" || s.RefreshToken != "ref" {
		t.Fatalf("unexpected tokens %+v", s)
	}
	stored, _ := repo.Stored("sid-1")
	if stored.AccessToken != "sealed(new)" {
		t.Fatalf("refreshed token not persisted: %q", stored.AccessToken)
	}
}

func TestSessionRestoreWithoutRefreshTokenClears(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	storeSession(repo, model.User{ID: 1}, "old", "")
	gw := &testhelpers.GatewayStub{ValidateFn: func(context.Context) (*model.TokenValidation, error) {
		return &model.TokenValidation{Valid: false}, nil
	}}
	uc := newSessionUseCase(gw, repo)

	if _, err := uc.Restore(context.Background(), "cookie-sid-1"); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, ok := repo.Stored("sid-1"); ok {
		t.Fatal("session should be cleared")
	}
}

func TestSessionRestoreGatewayDownKeepsSession(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	storeSession(repo, model.User{ID: 1}, "acc", "ref")
	gw := &testhelpers.GatewayStub{ValidateFn: func(context.Context) (*model.TokenValidation, error) {
		return nil, domainErrors.ErrGatewayUnavailable
	}}
	uc := newSessionUseCase(gw, repo)

	if _, err := uc.Restore(context.Background(), "cookie-sid-1"); !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if _, ok := repo.Stored("sid-1"); !ok {
		t.Fatal("session should survive a gateway outage")
	}
}

func TestSessionLogoutAlwaysDeletes(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	storeSession(repo, model.User{ID: 1}, "acc", "")
	gw := &testhelpers.GatewayStub{LogoutFn: func(context.Context) error { return domainErrors.ErrGatewayUnavailable }}
	uc := newSessionUseCase(gw, repo)

	if err := uc.Logout(context.Background(), &model.Session{ID: "sid-1", AccessToken: "acc"}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if gw.LogoutCalls != 1 || gw.LastToken() != "acc" {
		t.Fatalf("expected gateway logout with token, calls=%d token=%q", gw.LogoutCalls, gw.LastToken())
	}
	if _, ok := repo.Stored("sid-1"); ok {
		t.Fatal("session should be deleted")
	}
}

func TestSessionSyncByCustomerID(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	user := model.User{ID: 1, Role: model.RoleCustomer, CustomerID: int64Ptr(5), KYCStatus: model.KYCStatusPending}
	storeSession(repo, user, "acc", "")
	gw := &testhelpers.GatewayStub{GetCustFn: func(ctx context.Context, id int64) (*model.Customer, error) {
		if id != 5 {
			t.Fatalf("unexpected customer id %d", id)
		}
		return &model.Customer{ID: 5, KYCStatus: model.KYCStatusApproved}, nil
	}}
	uc := newSessionUseCase(gw, repo)

	session := &model.Session{ID: "sid-1", User: user, AccessToken: "acc", ExpiresAt: fixedNow.Add(time.Hour)}
	if err := uc.SyncSession(context.Background(), session); err != nil {
		t.Fatalf("sync: %v", err)
	}
	stored, _ := repo.Stored("sid-1")
	if stored.User.KYCStatus != model.KYCStatusApproved {
		t.Fatalf("status not persisted: %+v", stored.User)
	}
}

func TestSessionSyncKeepsRotatedTokens(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	user := model.User{ID: 1, Role: model.RoleCustomer, CustomerID: int64Ptr(5), KYCStatus: model.KYCStatusPending}
	storeSession(repo, user, "old-access", "old-refresh")
	gw := &testhelpers.GatewayStub{GetCustFn: func(context.Context, int64) (*model.Customer, error) {
		return &model.Customer{ID: 5, KYCStatus: model.KYCStatusApproved}, nil
	}}
	uc := newSessionUseCase(gw, repo)

	batch, err := uc.SessionsForSync(context.Background(), 10)
	if err != nil || len(batch) != 1 {
		t.Fatalf("sessions for sync: %v %v", batch, err)
	}

	// The user refreshes while the worker holds its copy.
	storeSession(repo, user, "new-access", "new-refresh")

	if err := uc.SyncSession(context.Background(), &batch[0]); err != nil {
		t.Fatalf("sync: %v", err)
	}
	stored, _ := repo.Stored("sid-1")
	if stored.AccessToken != "sealed(new-access)" || stored.RefreshToken != "sealed(new-refresh)" {
		t.Fatalf("sync overwrote rotated tokens: %q %q", stored.AccessToken, stored.RefreshToken)
	}
	if stored.User.KYCStatus != model.KYCStatusApproved || !stored.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("profile not persisted: %+v at %s", stored.User, stored.UpdatedAt)
	}
}

func TestSessionSyncNotFoundLeavesProfile(t *testing.T) {
	user := model.User{ID: 1, Role: model.RoleCustomer}
	uc := newSessionUseCase(&testhelpers.GatewayStub{}, testhelpers.NewSessionRepositoryStub())
	session := &model.Session{ID: "sid-1", User: user}
	if err := uc.SyncSession(context.Background(), session); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if session.User.HasCustomerProfile() {
		t.Fatal("profile should stay empty")
	}
}

func TestSessionsForSyncSkipsUnreadable(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	customer := model.User{ID: 1, Role: model.RoleCustomer}
	repo.Put(model.Session{ID: "a", User: customer, AccessToken: "sealed(one)", ExpiresAt: fixedNow.Add(time.Hour)})
	repo.Put(model.Session{ID: "b", User: customer, AccessToken: "broken", ExpiresAt: fixedNow.Add(time.Hour)})
	repo.Put(model.Session{ID: "c", User: model.User{ID: 2, Role: model.RoleAdmin}, AccessToken: "sealed(x)", ExpiresAt: fixedNow.Add(time.Hour)})
	uc := newSessionUseCase(&testhelpers.GatewayStub{}, repo)

	sessions, err := uc.SessionsForSync(context.Background(), 10)
	if err != nil {
		t.Fatalf("sessions for sync: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "a" || sessions[0].AccessToken != "one" {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
}

func TestSessionPurgeExpired(t *testing.T) {
	repo := testhelpers.NewSessionRepositoryStub()
	repo.Put(model.Session{ID: "old", ExpiresAt: fixedNow.Add(-time.Minute)})
	repo.Put(model.Session{ID: "new", ExpiresAt: fixedNow.Add(time.Minute)})
	uc := newSessionUseCase(&testhelpers.GatewayStub{}, repo)

	n, err := uc.PurgeExpired(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("expected one purged session, got %d %v", n, err)
	}
}
