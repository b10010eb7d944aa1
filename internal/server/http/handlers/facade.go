package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// SessionFacade describes sign in and session capabilities required by handlers.
type SessionFacade interface {
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
	Login(ctx context.Context, creds model.Credentials) (*usecase.LoginResult, error)
	Register(ctx context.Context, reg model.Registration) (*model.AuthResult, error)
	Restore(ctx context.Context, token string) (*model.Session, error)
	RefreshSession(ctx context.Context, session *model.Session) (*model.Session, error)
	Logout(ctx context.Context, session *model.Session) error
}

// OnboardingFacade covers the profile and KYC steps.
type OnboardingFacade interface {
	CreateProfile(ctx context.Context, session *model.Session, in usecase.ProfileInput) (*model.Customer, error)
	SubmitKYC(ctx context.Context, session *model.Session, docType model.KYCDocumentType, number string) (*model.Customer, error)
	KYCStatus(ctx context.Context, session *model.Session) (*usecase.KYCProgress, error)
}

type AccountFacade interface {
	Accounts(ctx context.Context, user *model.User, status model.AccountStatus) ([]model.Account, error)
	Account(ctx context.Context, user *model.User, accountID int64) (*model.Account, error)
	AccountBalance(ctx context.Context, user *model.User, accountID int64) (*model.Balance, error)
	OpenAccount(ctx context.Context, user *model.User, accountType model.AccountType, currency string) (*model.Account, error)
	CloseAccount(ctx context.Context, user *model.User, accountID int64) error
	Recipients(ctx context.Context, user *model.User, customerID int64) ([]model.Account, error)
}

// PaymentFacade covers money movement and payment history.
type PaymentFacade interface {
	Deposit(ctx context.Context, user *model.User, accountID int64, amount decimal.Decimal) (*model.Payment, error)
	SelfTransfer(ctx context.Context, user *model.User, fromID, toID int64, amount decimal.Decimal) (*model.Payment, error)
	BankTransfer(ctx context.Context, user *model.User, fromID, toID int64, amount decimal.Decimal, description string) (*model.Payment, error)
	ExternalTransfer(ctx context.Context, user *model.User, in usecase.ExternalTransfer) (*model.Payment, error)
	PaymentHistory(ctx context.Context, user *model.User) ([]model.Payment, error)
	Transactions(ctx context.Context, user *model.User, filter usecase.TransactionFilter) (*usecase.TransactionPage, error)
}

type CreditFacade interface {
	ApplyLoan(ctx context.Context, user *model.User, req usecase.LoanRequest) (*model.CreditProduct, error)
	ApplyCard(ctx context.Context, user *model.User, req usecase.CardRequest) (*model.CreditProduct, error)
	Credits(ctx context.Context, user *model.User) ([]model.CreditProduct, error)
	Credit(ctx context.Context, user *model.User, creditID int64) (*model.CreditProduct, error)
	CloseCredit(ctx context.Context, user *model.User, creditID int64) error
	Repayment(ctx context.Context, user *model.User, creditID int64) (*usecase.RepaymentView, error)
	RepayEMI(ctx context.Context, user *model.User, creditID, accountID int64) (*usecase.RepaymentResult, error)
}

type NotificationFacade interface {
	Notifications(ctx context.Context, user *model.User) ([]model.Notification, error)
	UnseenNotifications(ctx context.Context, user *model.User) (int64, error)
	MarkNotificationSeen(ctx context.Context, user *model.User, notificationID int64) error
	MarkAllNotificationsSeen(ctx context.Context, user *model.User) error
	SendNotification(ctx context.Context, user *model.User, in model.NotificationInput) (*model.Notification, error)
}

// DashboardFacade backs the dashboard and profile pages.
type DashboardFacade interface {
	Dashboard(ctx context.Context, user *model.User) (*usecase.Dashboard, error)
	Profile(ctx context.Context, user *model.User) (*usecase.Profile, error)
	UpdateProfile(ctx context.Context, session *model.Session, in usecase.ProfileInput) (*usecase.Profile, error)
}

// AdminFacade covers approvals, user management and insights.
type AdminFacade interface {
	PendingApprovals(ctx context.Context) ([]model.Approval, error)
	ExecuteApprovals(ctx context.Context, actions map[string]model.BulkApproval) (map[string]string, error)
	ServiceApprovals(ctx context.Context, service string) ([]model.Approval, error)
	BulkApprove(ctx context.Context, service string, action model.BulkApproval) error
	ManagedUsers(ctx context.Context) ([]usecase.UserRow, error)
	ManagedUser(ctx context.Context, userID int64) (*usecase.UserRow, error)
	UpdateManagedUser(ctx context.Context, actor *model.User, userID int64, update model.GatewayUserUpdate) (*usecase.UserRow, error)
	DeleteManagedUser(ctx context.Context, actor *model.User, userID int64) error
	Insights(ctx context.Context) (*usecase.Insights, error)
}

// PortalFacade aggregates the full set of operations used across handlers.
type PortalFacade interface {
	SessionFacade
	OnboardingFacade
	AccountFacade
	PaymentFacade
	CreditFacade
	NotificationFacade
	DashboardFacade
	AdminFacade
}

// HealthChecker reports whether the session store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
