package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// PortalFacade fronts the use cases for the HTTP layer and the sync worker.
type PortalFacade struct {
	sessions      *usecase.SessionUseCase
	onboarding    *usecase.OnboardingUseCase
	accounts      *usecase.AccountUseCase
	payments      *usecase.PaymentUseCase
	credits       *usecase.CreditUseCase
	notifications *usecase.NotificationUseCase
	dashboard     *usecase.DashboardUseCase
	admin         *usecase.AdminUseCase
	now           func() time.Time
}

func NewPortalFacade(
	sessions *usecase.SessionUseCase,
	onboarding *usecase.OnboardingUseCase,
	accounts *usecase.AccountUseCase,
	payments *usecase.PaymentUseCase,
	credits *usecase.CreditUseCase,
	notifications *usecase.NotificationUseCase,
	dashboard *usecase.DashboardUseCase,
	admin *usecase.AdminUseCase,
) *PortalFacade {
	return &PortalFacade{
		sessions:      sessions,
		onboarding:    onboarding,
		accounts:      accounts,
		payments:      payments,
		credits:       credits,
		notifications: notifications,
		dashboard:     dashboard,
		admin:         admin,
		now:           time.Now,
	}
}

func (f *PortalFacade) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	return f.sessions.Current(ctx, token)
}

func (f *PortalFacade) Login(ctx context.Context, creds model.Credentials) (*usecase.LoginResult, error) {
	return f.sessions.Login(ctx, creds)
}

func (f *PortalFacade) Register(ctx context.Context, reg model.Registration) (*model.AuthResult, error) {
	return f.sessions.Register(ctx, reg)
}

func (f *PortalFacade) Restore(ctx context.Context, token string) (*model.Session, error) {
	return f.sessions.Restore(ctx, token)
}

func (f *PortalFacade) RefreshSession(ctx context.Context, session *model.Session) (*model.Session, error) {
	return f.sessions.Refresh(ctx, session)
}

func (f *PortalFacade) Logout(ctx context.Context, session *model.Session) error {
	return f.sessions.Logout(ctx, session)
}

func (f *PortalFacade) SessionsForSync(ctx context.Context, limit int) ([]model.Session, error) {
	return f.sessions.SessionsForSync(ctx, limit)
}

func (f *PortalFacade) SyncSession(ctx context.Context, session *model.Session) error {
	return f.sessions.SyncSession(ctx, session)
}

func (f *PortalFacade) PurgeExpired(ctx context.Context) (int64, error) {
	return f.sessions.PurgeExpired(ctx)
}

func (f *PortalFacade) CreateProfile(ctx context.Context, session *model.Session, in usecase.ProfileInput) (*model.Customer, error) {
	return f.onboarding.CreateProfile(ctx, session, in)
}

func (f *PortalFacade) SubmitKYC(ctx context.Context, session *model.Session, docType model.KYCDocumentType, number string) (*model.Customer, error) {
	return f.onboarding.SubmitKYC(ctx, session, docType, number)
}

func (f *PortalFacade) KYCStatus(ctx context.Context, session *model.Session) (*usecase.KYCProgress, error) {
	return f.onboarding.KYCStatus(ctx, session)
}

func (f *PortalFacade) Accounts(ctx context.Context, user *model.User, status model.AccountStatus) ([]model.Account, error) {
	return f.accounts.List(ctx, user, status)
}

func (f *PortalFacade) Account(ctx context.Context, user *model.User, accountID int64) (*model.Account, error) {
	return f.accounts.Get(ctx, user, accountID)
}

func (f *PortalFacade) AccountBalance(ctx context.Context, user *model.User, accountID int64) (*model.Balance, error) {
	return f.accounts.Balance(ctx, user, accountID)
}

func (f *PortalFacade) OpenAccount(ctx context.Context, user *model.User, accountType model.AccountType, currency string) (*model.Account, error) {
	return f.accounts.Create(ctx, user, accountType, currency)
}

func (f *PortalFacade) CloseAccount(ctx context.Context, user *model.User, accountID int64) error {
	return f.accounts.Close(ctx, user, accountID)
}

func (f *PortalFacade) Recipients(ctx context.Context, user *model.User, customerID int64) ([]model.Account, error) {
	return f.accounts.Recipients(ctx, user, customerID)
}

func (f *PortalFacade) Deposit(ctx context.Context, user *model.User, accountID int64, amount decimal.Decimal) (*model.Payment, error) {
	return f.payments.Deposit(ctx, user, accountID, amount)
}

func (f *PortalFacade) SelfTransfer(ctx context.Context, user *model.User, fromID, toID int64, amount decimal.Decimal) (*model.Payment, error) {
	return f.payments.SelfTransfer(ctx, user, fromID, toID, amount)
}

func (f *PortalFacade) BankTransfer(ctx context.Context, user *model.User, fromID, toID int64, amount decimal.Decimal, description string) (*model.Payment, error) {
	return f.payments.BankTransfer(ctx, user, fromID, toID, amount, description)
}

func (f *PortalFacade) ExternalTransfer(ctx context.Context, user *model.User, in usecase.ExternalTransfer) (*model.Payment, error) {
	return f.payments.External(ctx, user, in)
}

func (f *PortalFacade) PaymentHistory(ctx context.Context, user *model.User) ([]model.Payment, error) {
	return f.payments.History(ctx, user)
}

// Transactions evaluates the time range filter against the current time.
func (f *PortalFacade) Transactions(ctx context.Context, user *model.User, filter usecase.TransactionFilter) (*usecase.TransactionPage, error) {
	return f.payments.Transactions(ctx, user, filter, f.now())
}

func (f *PortalFacade) ApplyLoan(ctx context.Context, user *model.User, req usecase.LoanRequest) (*model.CreditProduct, error) {
	return f.credits.ApplyLoan(ctx, user, req)
}

func (f *PortalFacade) ApplyCard(ctx context.Context, user *model.User, req usecase.CardRequest) (*model.CreditProduct, error) {
	return f.credits.ApplyCard(ctx, user, req)
}

func (f *PortalFacade) Credits(ctx context.Context, user *model.User) ([]model.CreditProduct, error) {
	return f.credits.List(ctx, user)
}

func (f *PortalFacade) Credit(ctx context.Context, user *model.User, creditID int64) (*model.CreditProduct, error) {
	return f.credits.Get(ctx, user, creditID)
}

func (f *PortalFacade) CloseCredit(ctx context.Context, user *model.User, creditID int64) error {
	return f.credits.Close(ctx, user, creditID)
}

func (f *PortalFacade) Repayment(ctx context.Context, user *model.User, creditID int64) (*usecase.RepaymentView, error) {
	return f.credits.Repayment(ctx, user, creditID)
}

func (f *PortalFacade) RepayEMI(ctx context.Context, user *model.User, creditID, accountID int64) (*usecase.RepaymentResult, error) {
	return f.credits.RepayEMI(ctx, user, creditID, accountID)
}

func (f *PortalFacade) Notifications(ctx context.Context, user *model.User) ([]model.Notification, error) {
	return f.notifications.List(ctx, user)
}

func (f *PortalFacade) UnseenNotifications(ctx context.Context, user *model.User) (int64, error) {
	return f.notifications.Unseen(ctx, user)
}

func (f *PortalFacade) MarkNotificationSeen(ctx context.Context, user *model.User, notificationID int64) error {
	return f.notifications.MarkSeen(ctx, user, notificationID)
}

func (f *PortalFacade) MarkAllNotificationsSeen(ctx context.Context, user *model.User) error {
	return f.notifications.MarkAllSeen(ctx, user)
}

func (f *PortalFacade) SendNotification(ctx context.Context, user *model.User, in model.NotificationInput) (*model.Notification, error) {
	return f.notifications.Send(ctx, user, in)
}

func (f *PortalFacade) Dashboard(ctx context.Context, user *model.User) (*usecase.Dashboard, error) {
	return f.dashboard.Dashboard(ctx, user)
}

func (f *PortalFacade) Profile(ctx context.Context, user *model.User) (*usecase.Profile, error) {
	return f.dashboard.Profile(ctx, user)
}

func (f *PortalFacade) UpdateProfile(ctx context.Context, session *model.Session, in usecase.ProfileInput) (*usecase.Profile, error) {
	return f.dashboard.UpdateProfile(ctx, session, in)
}

func (f *PortalFacade) PendingApprovals(ctx context.Context) ([]model.Approval, error) {
	return f.admin.PendingApprovals(ctx)
}

func (f *PortalFacade) ExecuteApprovals(ctx context.Context, actions map[string]model.BulkApproval) (map[string]string, error) {
	return f.admin.Execute(ctx, actions)
}

func (f *PortalFacade) ServiceApprovals(ctx context.Context, service string) ([]model.Approval, error) {
	return f.admin.ServiceApprovals(ctx, service)
}

func (f *PortalFacade) BulkApprove(ctx context.Context, service string, action model.BulkApproval) error {
	return f.admin.Bulk(ctx, service, action)
}

func (f *PortalFacade) ManagedUsers(ctx context.Context) ([]usecase.UserRow, error) {
	return f.admin.Users(ctx)
}

func (f *PortalFacade) ManagedUser(ctx context.Context, userID int64) (*usecase.UserRow, error) {
	return f.admin.User(ctx, userID)
}

func (f *PortalFacade) UpdateManagedUser(ctx context.Context, actor *model.User, userID int64, update model.GatewayUserUpdate) (*usecase.UserRow, error) {
	return f.admin.UpdateUser(ctx, actor, userID, update)
}

func (f *PortalFacade) DeleteManagedUser(ctx context.Context, actor *model.User, userID int64) error {
	return f.admin.DeleteUser(ctx, actor, userID)
}

func (f *PortalFacade) Insights(ctx context.Context) (*usecase.Insights, error) {
	return f.admin.Insights(ctx)
}
