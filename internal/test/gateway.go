package test

import (
	"context"
	"sync"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
)

// GatewayStub implements gateway.Client with optional function overrides.
// Calls without an override return empty results. Mutating calls are
// recorded for assertions.
type GatewayStub struct {
	SignInFn      func(context.Context, model.Credentials) (*model.AuthResult, error)
	SignUpFn      func(context.Context, model.Registration) (*model.AuthResult, error)
	RefreshFn     func(context.Context, string) (*model.AuthResult, error)
	LogoutFn      func(context.Context) error
	MeFn          func(context.Context) (*model.User, error)
	ValidateFn    func(context.Context) (*model.TokenValidation, error)
	ListUsersFn   func(context.Context) ([]model.GatewayUser, error)
	GetUserFn     func(context.Context, int64) (*model.GatewayUser, error)
	UpdateUserFn  func(context.Context, int64, model.GatewayUserUpdate) (*model.GatewayUser, error)
	DeleteUserFn  func(context.Context, int64) error
	PublicKeyFn   func(context.Context) (string, error)
	CreateCustFn  func(context.Context, model.CustomerInput) (*model.Customer, error)
	GetCustFn     func(context.Context, int64) (*model.Customer, error)
	UpdateCustFn  func(context.Context, int64, model.CustomerInput) (*model.Customer, error)
	SubmitKYCFn   func(context.Context, int64, model.KYCSubmission) (*model.Customer, error)
	SearchCustFn  func(context.Context, map[string]string) ([]model.Customer, error)
	CreateAcctFn  func(context.Context, model.AccountInput) (*model.Account, error)
	GetAcctFn     func(context.Context, int64) (*model.Account, error)
	UpdateAcctFn  func(context.Context, int64, model.AccountUpdate) (*model.Account, error)
	DeleteAcctFn  func(context.Context, int64) error
	BalanceFn     func(context.Context, int64) (*model.Balance, error)
	AcctsByUserFn func(context.Context, int64, model.AccountStatus) ([]model.Account, error)
	ApplyLoanFn   func(context.Context, model.LoanApplication) (*model.CreditProduct, error)
	ApplyCardFn   func(context.Context, model.CardApplication) (*model.CreditProduct, error)
	GetCreditFn   func(context.Context, int64) (*model.CreditProduct, error)
	UpdateCredFn  func(context.Context, int64, model.CreditUpdate) (*model.CreditProduct, error)
	DeleteCredFn  func(context.Context, int64) error
	CreditsFn     func(context.Context, int64) ([]model.CreditProduct, error)
	TransferFn    func(context.Context, model.TransferRequest) (*model.Payment, error)
	GetPaymentFn  func(context.Context, int64) (*model.Payment, error)
	PaymentsFn    func(context.Context, int64) ([]model.Payment, error)
	SendFn        func(context.Context, model.NotificationInput) (*model.Notification, error)
	NotifsFn      func(context.Context, int64) ([]model.Notification, error)
	UnseenFn      func(context.Context, int64) (int64, error)
	GetNotifFn    func(context.Context, int64) (*model.Notification, error)
	MarkSeenFn    func(context.Context, int64) error
	MarkAllFn     func(context.Context, int64) error
	PendingFn     func(context.Context) ([]model.Approval, error)
	ExecuteFn     func(context.Context, map[model.ApprovalService]model.BulkApproval) (map[string]string, error)
	ServiceApprFn func(context.Context, model.ApprovalService) ([]model.Approval, error)
	BulkFn        func(context.Context, model.ApprovalService, model.BulkApproval) error
	AllCustFn     func(context.Context) ([]model.Customer, error)
	AllAcctsFn    func(context.Context) ([]model.Account, error)
	AllCredsFn    func(context.Context) ([]model.CreditProduct, error)
	AllPaysFn     func(context.Context) ([]model.Payment, error)

	mu             sync.Mutex
	Transfers      []model.TransferRequest
	AccountUpdates map[int64]model.AccountUpdate
	CreditUpdates  map[int64]model.CreditUpdate
	Tokens         []string
	LogoutCalls    int
}

func (g *GatewayStub) record(ctx context.Context) {
	g.mu.Lock()
	g.Tokens = append(g.Tokens, gateway.TokenFrom(ctx))
	g.mu.Unlock()
}

// LastToken returns the bearer token seen by the most recent call.
func (g *GatewayStub) LastToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Tokens) == 0 {
		return ""
	}
	return g.Tokens[len(g.Tokens)-1]
}

func (g *GatewayStub) SignIn(ctx context.Context, creds model.Credentials) (*model.AuthResult, error) {
	g.record(ctx)
	if g.SignInFn != nil {
		return g.SignInFn(ctx, creds)
	}
	return &model.AuthResult{AccessToken: "access", User: model.User{ID: 1, Username: creds.Username, Role: model.RoleCustomer}}, nil
}

func (g *GatewayStub) SignUp(ctx context.Context, reg model.Registration) (*model.AuthResult, error) {
	g.record(ctx)
	if g.SignUpFn != nil {
		return g.SignUpFn(ctx, reg)
	}
	return &model.AuthResult{User: model.User{ID: 1, Username: reg.Username, Email: reg.Email, Role: reg.Role}}, nil
}

func (g *GatewayStub) Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error) {
	g.record(ctx)
	if g.RefreshFn != nil {
		return g.RefreshFn(ctx, refreshToken)
	}
	return nil, domainErrors.ErrUnauthorized
}

func (g *GatewayStub) Logout(ctx context.Context) error {
	g.record(ctx)
	g.mu.Lock()
	g.LogoutCalls++
	g.mu.Unlock()
	if g.LogoutFn != nil {
		return g.LogoutFn(ctx)
	}
	return nil
}

func (g *GatewayStub) Me(ctx context.Context) (*model.User, error) {
	g.record(ctx)
	if g.MeFn != nil {
		return g.MeFn(ctx)
	}
	return nil, domainErrors.ErrNotFound
}

func (g *GatewayStub) Validate(ctx context.Context) (*model.TokenValidation, error) {
	g.record(ctx)
	if g.ValidateFn != nil {
		return g.ValidateFn(ctx)
	}
	return &model.TokenValidation{Valid: true}, nil
}

func (g *GatewayStub) PublicKey(ctx context.Context) (string, error) {
	g.record(ctx)
	if g.PublicKeyFn != nil {
		return g.PublicKeyFn(ctx)
	}
	return "", nil
}

func (g *GatewayStub) ListUsers(ctx context.Context) ([]model.GatewayUser, error) {
	g.record(ctx)
	if g.ListUsersFn != nil {
		return g.ListUsersFn(ctx)
	}
	return nil, nil
}

func (g *GatewayStub) GetUser(ctx context.Context, userID int64) (*model.GatewayUser, error) {
	g.record(ctx)
	if g.GetUserFn != nil {
		return g.GetUserFn(ctx, userID)
	}
	return &model.GatewayUser{ID: userID}, nil
}

func (g *GatewayStub) UpdateUser(ctx context.Context, userID int64, update model.GatewayUserUpdate) (*model.GatewayUser, error) {
	g.record(ctx)
	if g.UpdateUserFn != nil {
		return g.UpdateUserFn(ctx, userID, update)
	}
	return &model.GatewayUser{ID: userID}, nil
}

func (g *GatewayStub) DeleteUser(ctx context.Context, userID int64) error {
	g.record(ctx)
	if g.DeleteUserFn != nil {
		return g.DeleteUserFn(ctx, userID)
	}
	return nil
}

func (g *GatewayStub) CreateCustomer(ctx context.Context, in model.CustomerInput) (*model.Customer, error) {
	g.record(ctx)
	if g.CreateCustFn != nil {
		return g.CreateCustFn(ctx, in)
	}
	return &model.Customer{ID: 1, UserID: in.UserID, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
}

func (g *GatewayStub) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	g.record(ctx)
	return nil, nil
}

func (g *GatewayStub) GetCustomer(ctx context.Context, customerID int64) (*model.Customer, error) {
	g.record(ctx)
	if g.GetCustFn != nil {
		return g.GetCustFn(ctx, customerID)
	}
	return nil, domainErrors.ErrNotFound
}

func (g *GatewayStub) UpdateCustomer(ctx context.Context, customerID int64, in model.CustomerInput) (*model.Customer, error) {
	g.record(ctx)
	if g.UpdateCustFn != nil {
		return g.UpdateCustFn(ctx, customerID, in)
	}
	return &model.Customer{ID: customerID, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone, Address: in.Address}, nil
}

func (g *GatewayStub) DeleteCustomer(ctx context.Context, customerID int64) error {
	g.record(ctx)
	return nil
}

func (g *GatewayStub) SubmitKYC(ctx context.Context, customerID int64, doc model.KYCSubmission) (*model.Customer, error) {
	g.record(ctx)
	if g.SubmitKYCFn != nil {
		return g.SubmitKYCFn(ctx, customerID, doc)
	}
	return &model.Customer{ID: customerID, KYCStatus: model.KYCStatusPending}, nil
}

func (g *GatewayStub) SearchCustomers(ctx context.Context, query map[string]string) ([]model.Customer, error) {
	g.record(ctx)
	if g.SearchCustFn != nil {
		return g.SearchCustFn(ctx, query)
	}
	return nil, nil
}

func (g *GatewayStub) CreateAccount(ctx context.Context, in model.AccountInput) (*model.Account, error) {
	g.record(ctx)
	if g.CreateAcctFn != nil {
		return g.CreateAcctFn(ctx, in)
	}
	return &model.Account{ID: 1, CustomerID: in.CustomerID, AccountType: in.AccountType, Currency: in.Currency, Status: model.AccountStatusPending}, nil
}

func (g *GatewayStub) ListAccounts(ctx context.Context) ([]model.Account, error) {
	g.record(ctx)
	return nil, nil
}

func (g *GatewayStub) GetAccount(ctx context.Context, accountID int64) (*model.Account, error) {
	g.record(ctx)
	if g.GetAcctFn != nil {
		return g.GetAcctFn(ctx, accountID)
	}
	return nil, domainErrors.ErrNotFound
}

func (g *GatewayStub) UpdateAccount(ctx context.Context, accountID int64, update model.AccountUpdate) (*model.Account, error) {
	g.record(ctx)
	g.mu.Lock()
	if g.AccountUpdates == nil {
		g.AccountUpdates = make(map[int64]model.AccountUpdate)
	}
	g.AccountUpdates[accountID] = update
	g.mu.Unlock()
	if g.UpdateAcctFn != nil {
		return g.UpdateAcctFn(ctx, accountID, update)
	}
	return &model.Account{ID: accountID, Balance: update.Balance}, nil
}

func (g *GatewayStub) DeleteAccount(ctx context.Context, accountID int64) error {
	g.record(ctx)
	if g.DeleteAcctFn != nil {
		return g.DeleteAcctFn(ctx, accountID)
	}
	return nil
}

func (g *GatewayStub) GetBalance(ctx context.Context, accountID int64) (*model.Balance, error) {
	g.record(ctx)
	if g.BalanceFn != nil {
		return g.BalanceFn(ctx, accountID)
	}
	return &model.Balance{AccountID: accountID}, nil
}

func (g *GatewayStub) AccountsByUser(ctx context.Context, lookupID int64, status model.AccountStatus) ([]model.Account, error) {
	g.record(ctx)
	if g.AcctsByUserFn != nil {
		return g.AcctsByUserFn(ctx, lookupID, status)
	}
	return nil, nil
}

func (g *GatewayStub) ApplyLoan(ctx context.Context, in model.LoanApplication) (*model.CreditProduct, error) {
	g.record(ctx)
	if g.ApplyLoanFn != nil {
		return g.ApplyLoanFn(ctx, in)
	}
	return &model.CreditProduct{ID: 1, CustomerID: in.CustomerID, ProductType: model.CreditProductLoan, Amount: in.Amount,
		InterestRate: in.InterestRate, TermMonths: in.TermMonths, Status: model.CreditStatusPending}, nil
}

func (g *GatewayStub) ApplyCard(ctx context.Context, in model.CardApplication) (*model.CreditProduct, error) {
	g.record(ctx)
	if g.ApplyCardFn != nil {
		return g.ApplyCardFn(ctx, in)
	}
	return &model.CreditProduct{ID: 2, CustomerID: in.CustomerID, ProductType: model.CreditProductCreditCard,
		CreditLimit: in.CreditLimit, InterestRate: in.InterestRate, Status: model.CreditStatusPending}, nil
}

func (g *GatewayStub) GetCredit(ctx context.Context, creditID int64) (*model.CreditProduct, error) {
	g.record(ctx)
	if g.GetCreditFn != nil {
		return g.GetCreditFn(ctx, creditID)
	}
	return nil, domainErrors.ErrNotFound
}

func (g *GatewayStub) UpdateCredit(ctx context.Context, creditID int64, update model.CreditUpdate) (*model.CreditProduct, error) {
	g.record(ctx)
	g.mu.Lock()
	if g.CreditUpdates == nil {
		g.CreditUpdates = make(map[int64]model.CreditUpdate)
	}
	g.CreditUpdates[creditID] = update
	g.mu.Unlock()
	if g.UpdateCredFn != nil {
		return g.UpdateCredFn(ctx, creditID, update)
	}
	return &model.CreditProduct{ID: creditID}, nil
}

func (g *GatewayStub) DeleteCredit(ctx context.Context, creditID int64) error {
	g.record(ctx)
	if g.DeleteCredFn != nil {
		return g.DeleteCredFn(ctx, creditID)
	}
	return nil
}

func (g *GatewayStub) CreditsByUser(ctx context.Context, lookupID int64) ([]model.CreditProduct, error) {
	g.record(ctx)
	if g.CreditsFn != nil {
		return g.CreditsFn(ctx, lookupID)
	}
	return nil, nil
}

func (g *GatewayStub) Transfer(ctx context.Context, in model.TransferRequest) (*model.Payment, error) {
	g.record(ctx)
	g.mu.Lock()
	g.Transfers = append(g.Transfers, in)
	g.mu.Unlock()
	if g.TransferFn != nil {
		return g.TransferFn(ctx, in)
	}
	return &model.Payment{ID: 1, FromAccountID: in.FromAccountID, ToAccountID: in.ToAccountID, Amount: in.Amount,
		Currency: in.Currency, Description: in.Description, Status: model.PaymentStatusCompleted}, nil
}

func (g *GatewayStub) GetPayment(ctx context.Context, paymentID int64) (*model.Payment, error) {
	g.record(ctx)
	if g.GetPaymentFn != nil {
		return g.GetPaymentFn(ctx, paymentID)
	}
	return nil, domainErrors.ErrNotFound
}

func (g *GatewayStub) UpdatePayment(ctx context.Context, paymentID int64, status model.PaymentStatus) (*model.Payment, error) {
	g.record(ctx)
	return &model.Payment{ID: paymentID, Status: status}, nil
}

func (g *GatewayStub) DeletePayment(ctx context.Context, paymentID int64) error {
	g.record(ctx)
	return nil
}

func (g *GatewayStub) PaymentsByAccount(ctx context.Context, accountID int64) ([]model.Payment, error) {
	g.record(ctx)
	if g.PaymentsFn != nil {
		return g.PaymentsFn(ctx, accountID)
	}
	return nil, nil
}

func (g *GatewayStub) SendNotification(ctx context.Context, in model.NotificationInput) (*model.Notification, error) {
	g.record(ctx)
	if g.SendFn != nil {
		return g.SendFn(ctx, in)
	}
	return &model.Notification{ID: 1, UserID: in.UserID, Type: in.Type, Subject: in.Subject, Message: in.Message}, nil
}

func (g *GatewayStub) GetNotification(ctx context.Context, notificationID int64) (*model.Notification, error) {
	g.record(ctx)
	if g.GetNotifFn != nil {
		return g.GetNotifFn(ctx, notificationID)
	}
	return &model.Notification{ID: notificationID}, nil
}

func (g *GatewayStub) NotificationsByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	g.record(ctx)
	if g.NotifsFn != nil {
		return g.NotifsFn(ctx, userID)
	}
	return nil, nil
}

func (g *GatewayStub) UnseenCount(ctx context.Context, userID int64) (int64, error) {
	g.record(ctx)
	if g.UnseenFn != nil {
		return g.UnseenFn(ctx, userID)
	}
	return 0, nil
}

func (g *GatewayStub) MarkSeen(ctx context.Context, notificationID int64) error {
	g.record(ctx)
	if g.MarkSeenFn != nil {
		return g.MarkSeenFn(ctx, notificationID)
	}
	return nil
}

func (g *GatewayStub) MarkAllSeen(ctx context.Context, userID int64) error {
	g.record(ctx)
	if g.MarkAllFn != nil {
		return g.MarkAllFn(ctx, userID)
	}
	return nil
}

func (g *GatewayStub) PendingApprovals(ctx context.Context) ([]model.Approval, error) {
	g.record(ctx)
	if g.PendingFn != nil {
		return g.PendingFn(ctx)
	}
	return nil, nil
}

func (g *GatewayStub) ExecuteApprovals(ctx context.Context, actions map[model.ApprovalService]model.BulkApproval) (map[string]string, error) {
	g.record(ctx)
	if g.ExecuteFn != nil {
		return g.ExecuteFn(ctx, actions)
	}
	return map[string]string{}, nil
}

func (g *GatewayStub) ServiceApprovals(ctx context.Context, service model.ApprovalService) ([]model.Approval, error) {
	g.record(ctx)
	if g.ServiceApprFn != nil {
		return g.ServiceApprFn(ctx, service)
	}
	return nil, nil
}

func (g *GatewayStub) BulkApprove(ctx context.Context, service model.ApprovalService, action model.BulkApproval) error {
	g.record(ctx)
	if g.BulkFn != nil {
		return g.BulkFn(ctx, service, action)
	}
	return nil
}

func (g *GatewayStub) AllCustomers(ctx context.Context) ([]model.Customer, error) {
	g.record(ctx)
	if g.AllCustFn != nil {
		return g.AllCustFn(ctx)
	}
	return nil, nil
}

func (g *GatewayStub) AllAccounts(ctx context.Context) ([]model.Account, error) {
	g.record(ctx)
	if g.AllAcctsFn != nil {
		return g.AllAcctsFn(ctx)
	}
	return nil, nil
}

func (g *GatewayStub) AllCredits(ctx context.Context) ([]model.CreditProduct, error) {
	g.record(ctx)
	if g.AllCredsFn != nil {
		return g.AllCredsFn(ctx)
	}
	return nil, nil
}

func (g *GatewayStub) AllPayments(ctx context.Context) ([]model.Payment, error) {
	g.record(ctx)
	if g.AllPaysFn != nil {
		return g.AllPaysFn(ctx)
	}
	return nil, nil
}

var _ gateway.Client = (*GatewayStub)(nil)
