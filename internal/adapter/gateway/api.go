package gateway

import (
	"context"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

// AuthAPI covers the auth service.
type AuthAPI interface {
	SignIn(ctx context.Context, creds model.Credentials) (*model.AuthResult, error)
	SignUp(ctx context.Context, reg model.Registration) (*model.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*model.User, error)
	Validate(ctx context.Context) (*model.TokenValidation, error)
	PublicKey(ctx context.Context) (string, error)
	ListUsers(ctx context.Context) ([]model.GatewayUser, error)
	GetUser(ctx context.Context, userID int64) (*model.GatewayUser, error)
	UpdateUser(ctx context.Context, userID int64, update model.GatewayUserUpdate) (*model.GatewayUser, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// CustomerAPI covers the customer service.
type CustomerAPI interface {
	CreateCustomer(ctx context.Context, in model.CustomerInput) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, in model.CustomerInput) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
	SubmitKYC(ctx context.Context, customerID int64, doc model.KYCSubmission) (*model.Customer, error)
	SearchCustomers(ctx context.Context, query map[string]string) ([]model.Customer, error)
}

// AccountAPI covers the account service.
type AccountAPI interface {
	CreateAccount(ctx context.Context, in model.AccountInput) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	GetAccount(ctx context.Context, accountID int64) (*model.Account, error)
	UpdateAccount(ctx context.Context, accountID int64, update model.AccountUpdate) (*model.Account, error)
	DeleteAccount(ctx context.Context, accountID int64) error
	GetBalance(ctx context.Context, accountID int64) (*model.Balance, error)
	AccountsByUser(ctx context.Context, lookupID int64, status model.AccountStatus) ([]model.Account, error)
}

// CreditAPI covers the credit service.
type CreditAPI interface {
	ApplyLoan(ctx context.Context, in model.LoanApplication) (*model.CreditProduct, error)
	ApplyCard(ctx context.Context, in model.CardApplication) (*model.CreditProduct, error)
	GetCredit(ctx context.Context, creditID int64) (*model.CreditProduct, error)
	UpdateCredit(ctx context.Context, creditID int64, update model.CreditUpdate) (*model.CreditProduct, error)
	DeleteCredit(ctx context.Context, creditID int64) error
	CreditsByUser(ctx context.Context, lookupID int64) ([]model.CreditProduct, error)
}

// PaymentAPI covers the payment service.
type PaymentAPI interface {
	Transfer(ctx context.Context, in model.TransferRequest) (*model.Payment, error)
	GetPayment(ctx context.Context, paymentID int64) (*model.Payment, error)
	UpdatePayment(ctx context.Context, paymentID int64, status model.PaymentStatus) (*model.Payment, error)
	DeletePayment(ctx context.Context, paymentID int64) error
	PaymentsByAccount(ctx context.Context, accountID int64) ([]model.Payment, error)
}

// NotificationAPI covers the notification service.
type NotificationAPI interface {
	SendNotification(ctx context.Context, in model.NotificationInput) (*model.Notification, error)
	GetNotification(ctx context.Context, notificationID int64) (*model.Notification, error)
	NotificationsByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	UnseenCount(ctx context.Context, userID int64) (int64, error)
	MarkSeen(ctx context.Context, notificationID int64) error
	MarkAllSeen(ctx context.Context, userID int64) error
}

// ApprovalAPI covers approval queues exposed by the owning services and the admin service.
type ApprovalAPI interface {
	PendingApprovals(ctx context.Context) ([]model.Approval, error)
	ExecuteApprovals(ctx context.Context, actions map[model.ApprovalService]model.BulkApproval) (map[string]string, error)
	ServiceApprovals(ctx context.Context, service model.ApprovalService) ([]model.Approval, error)
	BulkApprove(ctx context.Context, service model.ApprovalService, action model.BulkApproval) error
	AllCustomers(ctx context.Context) ([]model.Customer, error)
	AllAccounts(ctx context.Context) ([]model.Account, error)
	AllCredits(ctx context.Context) ([]model.CreditProduct, error)
	AllPayments(ctx context.Context) ([]model.Payment, error)
}

// Client aggregates every gateway API.
type Client interface {
	AuthAPI
	CustomerAPI
	AccountAPI
	CreditAPI
	PaymentAPI
	NotificationAPI
	ApprovalAPI
}

var _ Client = (*HTTPClient)(nil)
