package model

// StatusKind selects which status table a status value belongs to.
type StatusKind string

const (
	StatusKindKYC          StatusKind = "kyc"
	StatusKindAccount      StatusKind = "account"
	StatusKindCredit       StatusKind = "credit"
	StatusKindPayment      StatusKind = "payment"
	StatusKindNotification StatusKind = "notification"
)

// Badge variants understood by the portal UI.
const (
	VariantWarning   = "warning"
	VariantSuccess   = "success"
	VariantDanger    = "danger"
	VariantSecondary = "secondary"
)

// Option describes a selectable enum value or a status badge.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

var statusOptions = map[StatusKind][]Option{
	StatusKindKYC: {
		{Value: string(KYCStatusPending), Label: "Pending Approval", Variant: VariantWarning, Icon: "hourglass-split"},
		{Value: string(KYCStatusApproved), Label: "Approved", Variant: VariantSuccess, Icon: "check-circle"},
		{Value: string(KYCStatusRejected), Label: "Rejected", Variant: VariantDanger, Icon: "x-circle"},
	},
	StatusKindAccount: {
		{Value: string(AccountStatusPending), Label: "Pending Approval", Variant: VariantWarning, Icon: "hourglass-split"},
		{Value: string(AccountStatusActive), Label: "Active", Variant: VariantSuccess, Icon: "check-circle-fill"},
		{Value: string(AccountStatusSuspended), Label: "Suspended", Variant: VariantDanger, Icon: "pause-circle"},
		{Value: string(AccountStatusClosed), Label: "Closed", Variant: VariantSecondary, Icon: "x-circle-fill"},
	},
	StatusKindCredit: {
		{Value: string(CreditStatusPending), Label: "Pending Review", Variant: VariantWarning, Icon: "hourglass-split"},
		{Value: string(CreditStatusApproved), Label: "Approved", Variant: VariantSuccess, Icon: "check-circle"},
		{Value: string(CreditStatusRejected), Label: "Rejected", Variant: VariantDanger, Icon: "x-circle"},
		{Value: string(CreditStatusActive), Label: "Active", Variant: VariantSuccess, Icon: "lightning-fill"},
		{Value: string(CreditStatusClosed), Label: "Closed", Variant: VariantSecondary, Icon: "lock-fill"},
	},
	StatusKindPayment: {
		{Value: string(PaymentStatusPending), Label: "Processing", Variant: VariantWarning, Icon: "hourglass-split"},
		{Value: string(PaymentStatusCompleted), Label: "Completed", Variant: VariantSuccess, Icon: "check-circle-fill"},
		{Value: string(PaymentStatusFailed), Label: "Failed", Variant: VariantDanger, Icon: "exclamation-triangle"},
		{Value: string(PaymentStatusRejected), Label: "Rejected", Variant: VariantDanger, Icon: "x-circle"},
	},
	StatusKindNotification: {
		{Value: string(NotificationStatusPending), Label: "Pending", Variant: VariantWarning, Icon: "hourglass-split"},
		{Value: string(NotificationStatusSent), Label: "Sent", Variant: VariantSuccess, Icon: "check-circle"},
		{Value: string(NotificationStatusFailed), Label: "Failed", Variant: VariantDanger, Icon: "x-circle"},
	},
}

var choiceOptions = map[string][]Option{
	"roles": {
		{Value: string(RoleCustomer), Label: "Customer Account", Description: "Regular banking services"},
		{Value: string(RoleAdmin), Label: "Administrator Account", Description: "Full system access"},
	},
	"kycDocumentTypes": {
		{Value: string(KYCDocumentAadhaar), Label: "AADHAAR", Description: "1234 XXXX XXXX"},
		{Value: string(KYCDocumentPAN), Label: "PAN", Description: "ABCDE1234F"},
	},
	"accountTypes": {
		{Value: string(AccountTypeSavings), Label: "Savings Account", Description: "Earn interest on your savings", Icon: "piggy-bank"},
		{Value: string(AccountTypeChecking), Label: "Checking Account", Description: "Day-to-day transactions", Icon: "credit-card-2-front"},
		{Value: string(AccountTypeBusiness), Label: "Business Account", Description: "Business banking needs", Icon: "building"},
	},
	"creditProductTypes": {
		{Value: string(CreditProductLoan), Label: "Personal Loan", Description: "Fixed amount loan with repayment term", Icon: "cash-stack"},
		{Value: string(CreditProductCreditCard), Label: "Credit Card", Description: "Revolving credit line", Icon: "credit-card"},
	},
	"paymentTypes": {
		{Value: string(PaymentTypeTransfer), Label: "Fund Transfer", Description: "Transfer between accounts", Icon: "arrow-left-right"},
		{Value: string(PaymentTypeBillPayment), Label: "Bill Payment", Description: "Pay bills and utilities", Icon: "receipt"},
		{Value: string(PaymentTypeWithdrawal), Label: "Cash Withdrawal", Description: "Withdraw cash from account", Icon: "cash"},
	},
	"notificationTypes": {
		{Value: string(NotificationEmail), Label: "Email Notification", Icon: "envelope"},
		{Value: string(NotificationSMS), Label: "SMS Notification", Icon: "phone"},
		{Value: string(NotificationPush), Label: "Push Notification", Icon: "bell"},
	},
}

// StatusVariant returns the badge variant for status, secondary when unknown.
func StatusVariant(kind StatusKind, status string) string {
	return StatusDetails(kind, status).Variant
}

// StatusDetails returns the option describing status within kind.
func StatusDetails(kind StatusKind, status string) Option {
	for _, opt := range statusOptions[kind] {
		if opt.Value == status {
			return opt
		}
	}
	return Option{Value: status, Label: status, Variant: VariantSecondary, Icon: "circle"}
}

// Catalog returns every enum table keyed by name, used to populate portal forms.
func Catalog() map[string][]Option {
	out := make(map[string][]Option, len(choiceOptions)+len(statusOptions))
	for name, opts := range choiceOptions {
		out[name] = append([]Option(nil), opts...)
	}
	for kind, opts := range statusOptions {
		out[string(kind)+"Statuses"] = append([]Option(nil), opts...)
	}
	return out
}
