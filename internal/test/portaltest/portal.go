// Package portaltest assembles a real PortalFacade over gateway and
// session store stubs for HTTP level tests.
package portaltest

import (
	"io"
	"log/slog"
	"time"

	"github.com/polkiloo/bankportal/internal/app"
	"github.com/polkiloo/bankportal/internal/config"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/test"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// Portal bundles the facade with the stubs behind it.
type Portal struct {
	Facade   *app.PortalFacade
	Gateway  *test.GatewayStub
	Sessions *test.SessionRepositoryStub
}

// New builds the use cases over gw and a fresh session store. A nil gw
// gets an empty GatewayStub.
func New(gw *test.GatewayStub) *Portal {
	if gw == nil {
		gw = &test.GatewayStub{}
	}
	repo := test.NewSessionRepositoryStub()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{SessionTTL: time.Hour}

	sessions := usecase.NewSessionUseCase(gw, gw, repo, test.StrategyStub{}, test.SealerStub{}, cfg, logger)
	accounts := usecase.NewAccountUseCase(gw)
	payments := usecase.NewPaymentUseCase(gw, gw)
	credits := usecase.NewCreditUseCase(gw, gw, gw)
	notifications := usecase.NewNotificationUseCase(gw)

	facade := app.NewPortalFacade(
		sessions,
		usecase.NewOnboardingUseCase(gw, sessions),
		accounts,
		payments,
		credits,
		notifications,
		usecase.NewDashboardUseCase(accounts, payments, credits, notifications, gw, sessions, logger),
		usecase.NewAdminUseCase(gw, gw),
	)
	return &Portal{Facade: facade, Gateway: gw, Sessions: repo}
}

// SignIn stores a live session for user and returns its cookie value. The
// stored gateway token opens to "access-<id>".
func (p *Portal) SignIn(id string, user model.User) string {
	now := time.Now()
	sealer := test.SealerStub{}
	access, _ := sealer.Seal("access-" + id)
	refresh, _ := sealer.Seal("refresh-" + id)
	p.Sessions.Put(model.Session{
		ID:           id,
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	cookie, _ := test.StrategyStub{}.IssueToken(id)
	return cookie
}

// Open returns the stored session with its gateway tokens opened, the
// way the session middleware hands it to handlers.
func (p *Portal) Open(id string) *model.Session {
	stored, ok := p.Sessions.Stored(id)
	if !ok {
		return nil
	}
	sealer := test.SealerStub{}
	stored.AccessToken, _ = sealer.Open(stored.AccessToken)
	stored.RefreshToken, _ = sealer.Open(stored.RefreshToken)
	return &stored
}

// Customer is an approved customer with a profile.
func Customer(userID, customerID int64) model.User {
	return model.User{
		ID:         userID,
		Username:   "customer",
		Email:      "customer@example.com",
		Role:       model.RoleCustomer,
		CustomerID: &customerID,
		KYCStatus:  model.KYCStatusApproved,
	}
}

// Admin is an administrator without a customer profile.
func Admin(userID int64) model.User {
	return model.User{ID: userID, Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
}
