package model

import "github.com/shopspring/decimal"

func init() {
	// The gateway expects JSON numbers for monetary fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Customer is a customer profile owned by the customer service.
type Customer struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	KYCStatus KYCStatus `json:"kycStatus"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// CustomerInput is used to create or update a customer profile.
type CustomerInput struct {
	UserID    int64  `json:"userId,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// KYCSubmission is an identity document submitted for verification.
type KYCSubmission struct {
	DocumentType   KYCDocumentType `json:"documentType"`
	DocumentNumber string          `json:"documentNumber"`
}

type Account struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customerId"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        AccountStatus   `json:"status"`
	CreatedAt     Timestamp       `json:"createdAt"`
	UpdatedAt     Timestamp       `json:"updatedAt"`
}

type AccountInput struct {
	CustomerID  int64       `json:"customerId"`
	AccountType AccountType `json:"accountType"`
	Currency    string      `json:"currency,omitempty"`
}

type AccountUpdate struct {
	Balance decimal.Decimal `json:"balance"`
}

type Balance struct {
	AccountID     int64           `json:"accountId"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
}

type Payment struct {
	ID            int64           `json:"id"`
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentType   PaymentType     `json:"paymentType"`
	Status        PaymentStatus   `json:"status"`
	Description   string          `json:"description"`
	CreatedAt     Timestamp       `json:"createdAt"`
	UpdatedAt     Timestamp       `json:"updatedAt"`
}

// LastActivity is the most recent of the update and creation times.
func (p Payment) LastActivity() Timestamp {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// TransferRequest records a money movement with the payment service.
// ToAccountID is zero for transfers leaving the bank.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	TransferType  TransferKind    `json:"transferType"`
}

type CreditProduct struct {
	ID           int64               `json:"id"`
	CustomerID   int64               `json:"customerId"`
	ProductType  CreditProductType   `json:"productType"`
	CardType     string              `json:"cardType,omitempty"`
	LoanType     string              `json:"loanType,omitempty"`
	Amount       decimal.Decimal     `json:"amount"`
	CreditLimit  decimal.Decimal     `json:"creditLimit"`
	InterestRate decimal.Decimal     `json:"interestRate"`
	TermMonths   int                 `json:"termMonths"`
	Status       CreditProductStatus `json:"status"`
	CreatedAt    Timestamp           `json:"createdAt"`
	UpdatedAt    Timestamp           `json:"updatedAt"`
}

func (c CreditProduct) IsLoan() bool { return c.ProductType == CreditProductLoan }

// Repayable reports whether EMI payments are accepted for the product.
func (c CreditProduct) Repayable() bool {
	return c.Status == CreditStatusApproved || c.Status == CreditStatusActive
}

type LoanApplication struct {
	CustomerID   int64           `json:"customerId"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
}

type CardApplication struct {
	CustomerID   int64           `json:"customerId"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	InterestRate decimal.Decimal `json:"interestRate"`
	CardType     string          `json:"cardType,omitempty"`
}

type CreditUpdate struct {
	Amount       *decimal.Decimal     `json:"amount,omitempty"`
	CreditLimit  *decimal.Decimal     `json:"creditLimit,omitempty"`
	InterestRate *decimal.Decimal     `json:"interestRate,omitempty"`
	Status       *CreditProductStatus `json:"status,omitempty"`
}

type Notification struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"userId"`
	Type      NotificationType   `json:"type"`
	Recipient string             `json:"recipient"`
	Subject   string             `json:"subject"`
	Message   string             `json:"message"`
	Status    NotificationStatus `json:"status"`
	Seen      bool               `json:"seen"`
	SeenAt    Timestamp          `json:"seenAt"`
	CreatedAt Timestamp          `json:"createdAt"`
	SentAt    Timestamp          `json:"sentAt"`
}

type NotificationInput struct {
	UserID    int64            `json:"userId"`
	Type      NotificationType `json:"type"`
	Recipient string           `json:"recipient"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
}

// Approval is a pending item awaiting an administrator decision.
type Approval struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Service     ApprovalService `json:"service,omitempty"`
}

// BulkApproval applies one decision to a set of items of a service.
type BulkApproval struct {
	IDs    []int64          `json:"ids"`
	Status ApprovalDecision `json:"status"`
}
