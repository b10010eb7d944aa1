package dto

import "github.com/shopspring/decimal"

type DepositRequest struct {
	AccountID int64           `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

// TransferRequest serves both self and bank transfers. Description is
// ignored for self transfers.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

type ExternalTransferRequest struct {
	FromAccountID int64           `json:"fromAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	BankName      string          `json:"bankName"`
	IFSC          string          `json:"ifsc"`
	AccountNumber string          `json:"accountNumber"`
}
