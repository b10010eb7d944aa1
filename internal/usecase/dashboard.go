package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/pkg/money"
)

const recentPayments = 5

// DashboardUseCase assembles the customer dashboard and the profile page.
type DashboardUseCase struct {
	accounts      *AccountUseCase
	payments      *PaymentUseCase
	credits       *CreditUseCase
	notifications *NotificationUseCase
	customers     gateway.CustomerAPI
	sessions      *SessionUseCase
	logger        *slog.Logger
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(
	accounts *AccountUseCase,
	payments *PaymentUseCase,
	credits *CreditUseCase,
	notifications *NotificationUseCase,
	customers gateway.CustomerAPI,
	sessions *SessionUseCase,
	logger *slog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		accounts:      accounts,
		payments:      payments,
		credits:       credits,
		notifications: notifications,
		customers:     customers,
		sessions:      sessions,
		logger:        logger,
	}
}

// Dashboard is the customer landing page.
type Dashboard struct {
	User           model.User            `json:"user"`
	Accounts       []model.Account       `json:"accounts"`
	TotalBalance   decimal.Decimal       `json:"totalBalance"`
	Currency       string                `json:"currency"`
	FormattedTotal string                `json:"formattedTotal"`
	ActiveAccounts int                   `json:"activeAccounts"`
	RecentPayments []model.Payment       `json:"recentPayments"`
	Credits        []model.CreditProduct `json:"credits"`
	Unseen         int64                 `json:"unseenNotifications"`
}

// Dashboard loads accounts, payments, credits and the unseen count in
// parallel. Only the account list is required; the other panels degrade to
// empty when their service fails.
func (u *DashboardUseCase) Dashboard(ctx context.Context, user *model.User) (*Dashboard, error) {
	accounts, err := u.accounts.List(ctx, user, "")
	if err != nil {
		return nil, err
	}

	view := &Dashboard{
		User:           *user,
		Accounts:       accounts,
		RecentPayments: []model.Payment{},
		Credits:        []model.CreditProduct{},
	}
	view.TotalBalance, view.ActiveAccounts = summarize(accounts)
	view.Currency = money.DefaultCurrency
	if len(accounts) > 0 {
		view.Currency = money.NormalizeCurrency(accounts[0].Currency)
	}
	view.FormattedTotal = money.Format(view.TotalBalance, view.Currency)

	var g errgroup.Group
	g.Go(func() error {
		history, err := u.payments.History(ctx, user)
		if err != nil {
			u.logger.Warn("dashboard payments unavailable", slog.Any("error", err))
			return nil
		}
		if len(history) > recentPayments {
			history = history[:recentPayments]
		}
		view.RecentPayments = history
		return nil
	})
	g.Go(func() error {
		credits, err := u.credits.List(ctx, user)
		if err != nil {
			u.logger.Warn("dashboard credits unavailable", slog.Any("error", err))
			return nil
		}
		view.Credits = credits
		return nil
	})
	g.Go(func() error {
		unseen, err := u.notifications.Unseen(ctx, user)
		if err != nil {
			u.logger.Warn("dashboard notifications unavailable", slog.Any("error", err))
			return nil
		}
		view.Unseen = unseen
		return nil
	})
	_ = g.Wait()
	return view, nil
}

func summarize(accounts []model.Account) (decimal.Decimal, int) {
	total := decimal.Zero
	active := 0
	for _, a := range accounts {
		total = total.Add(a.Balance)
		if a.Status == model.AccountStatusActive {
			active++
		}
	}
	return total, active
}

// Profile is the session user with their customer record, when one exists.
type Profile struct {
	User     model.User      `json:"user"`
	Customer *model.Customer `json:"customer,omitempty"`
}

func (u *DashboardUseCase) Profile(ctx context.Context, user *model.User) (*Profile, error) {
	profile := &Profile{User: *user}
	if !user.HasCustomerProfile() {
		return profile, nil
	}
	customer, err := u.customers.GetCustomer(ctx, *user.CustomerID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	profile.Customer = customer
	return profile, nil
}

// UpdateProfile writes customer fields and merges the email into the session.
func (u *DashboardUseCase) UpdateProfile(ctx context.Context, session *model.Session, in ProfileInput) (*Profile, error) {
	if !session.User.HasCustomerProfile() {
		return nil, domainErrors.ErrProfileRequired
	}
	if err := requireFields("firstName", in.FirstName, "lastName", in.LastName, "email", in.Email, "phone", in.Phone); err != nil {
		return nil, err
	}
	customer, err := u.customers.UpdateCustomer(ctx, *session.User.CustomerID, in.customerInput(0))
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	patch := model.UserPatch{Email: &email}
	if customer.KYCStatus != "" {
		status := customer.KYCStatus
		patch.KYCStatus = &status
	}
	if err := u.sessions.UpdateUser(ctx, session, patch); err != nil {
		return nil, err
	}
	return &Profile{User: session.User, Customer: customer}, nil
}
