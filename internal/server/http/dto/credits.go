package dto

import "github.com/shopspring/decimal"

// LoanRequest is the loan application. Zero rate and term pick the portal
// defaults.
type LoanRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
}

type CardRequest struct {
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	InterestRate decimal.Decimal `json:"interestRate"`
	CardType     string          `json:"cardType,omitempty"`
}

type RepayRequest struct {
	AccountID int64 `json:"accountId"`
}
