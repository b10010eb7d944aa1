package model

// Role is the gateway user role.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// KYCStatus describes identity verification progress of a customer.
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "PENDING"
	KYCStatusApproved KYCStatus = "APPROVED"
	KYCStatusRejected KYCStatus = "REJECTED"
)

// KYCDocumentType lists accepted identity documents.
type KYCDocumentType string

const (
	KYCDocumentAadhaar KYCDocumentType = "AADHAAR"
	KYCDocumentPAN     KYCDocumentType = "PAN"
)

type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeBusiness AccountType = "BUSINESS"
)

type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "PENDING"
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

type CreditProductType string

const (
	CreditProductLoan       CreditProductType = "LOAN"
	CreditProductCreditCard CreditProductType = "CREDIT_CARD"
)

type CreditProductStatus string

const (
	CreditStatusPending  CreditProductStatus = "PENDING"
	CreditStatusApproved CreditProductStatus = "APPROVED"
	CreditStatusRejected CreditProductStatus = "REJECTED"
	CreditStatusActive   CreditProductStatus = "ACTIVE"
	CreditStatusClosed   CreditProductStatus = "CLOSED"
)

type PaymentType string

const (
	PaymentTypeTransfer    PaymentType = "TRANSFER"
	PaymentTypeBillPayment PaymentType = "BILL_PAYMENT"
	PaymentTypeWithdrawal  PaymentType = "WITHDRAWAL"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRejected  PaymentStatus = "REJECTED"
)

// TransferKind tags a transfer with the portal flow that produced it.
type TransferKind string

const (
	TransferDeposit       TransferKind = "DEPOSIT"
	TransferInternal      TransferKind = "INTERNAL"
	TransferBank          TransferKind = "BANK"
	TransferExternal      TransferKind = "EXTERNAL"
	TransferLoanRepayment TransferKind = "LOAN_REPAYMENT"
)

type NotificationType string

const (
	NotificationEmail NotificationType = "EMAIL"
	NotificationSMS   NotificationType = "SMS"
	NotificationPush  NotificationType = "PUSH"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// ApprovalService names a backend service that owns approvable items.
type ApprovalService string

const (
	ApprovalCustomers ApprovalService = "customer-service"
	ApprovalAccounts  ApprovalService = "account-service"
	ApprovalCredits   ApprovalService = "credit-service"
	ApprovalPayments  ApprovalService = "payment-service"
)

// ApprovalServices lists approval owners in display order.
var ApprovalServices = []ApprovalService{ApprovalCustomers, ApprovalAccounts, ApprovalCredits, ApprovalPayments}

// Resource is the gateway path segment owned by the service.
func (s ApprovalService) Resource() string {
	switch s {
	case ApprovalCustomers:
		return "customers"
	case ApprovalAccounts:
		return "accounts"
	case ApprovalCredits:
		return "credits"
	case ApprovalPayments:
		return "payments"
	}
	return ""
}

// ParseApprovalService accepts either the service name or its resource segment.
func ParseApprovalService(v string) (ApprovalService, bool) {
	for _, s := range ApprovalServices {
		if string(s) == v || s.Resource() == v {
			return s, true
		}
	}
	return "", false
}

// ApprovalDecision is the outcome applied by a bulk approval.
type ApprovalDecision string

const (
	DecisionApproved ApprovalDecision = "APPROVED"
	DecisionRejected ApprovalDecision = "REJECTED"
)

func (r Role) IsValid() bool { return r == RoleCustomer || r == RoleAdmin }

func (s KYCStatus) IsValid() bool {
	return s == KYCStatusPending || s == KYCStatusApproved || s == KYCStatusRejected
}

func (d KYCDocumentType) IsValid() bool { return d == KYCDocumentAadhaar || d == KYCDocumentPAN }

func (t AccountType) IsValid() bool {
	return t == AccountTypeSavings || t == AccountTypeChecking || t == AccountTypeBusiness
}

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusPending, AccountStatusActive, AccountStatusSuspended, AccountStatusClosed:
		return true
	}
	return false
}

func (t CreditProductType) IsValid() bool {
	return t == CreditProductLoan || t == CreditProductCreditCard
}

func (s CreditProductStatus) IsValid() bool {
	switch s {
	case CreditStatusPending, CreditStatusApproved, CreditStatusRejected, CreditStatusActive, CreditStatusClosed:
		return true
	}
	return false
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRejected:
		return true
	}
	return false
}

func (t NotificationType) IsValid() bool {
	return t == NotificationEmail || t == NotificationSMS || t == NotificationPush
}

func (s ApprovalService) IsValid() bool {
	switch s {
	case ApprovalCustomers, ApprovalAccounts, ApprovalCredits, ApprovalPayments:
		return true
	}
	return false
}

func (d ApprovalDecision) IsValid() bool { return d == DecisionApproved || d == DecisionRejected }
