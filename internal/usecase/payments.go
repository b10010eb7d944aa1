package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/pkg/money"
)

const (
	descDeposit      = "Cash deposit"
	descSelfTransfer = "Self transfer"
	descBankTransfer = "Bank transfer"
)

// PaymentUseCase runs the money movement flows. The gateway has no atomic
// transfer: balances are written with account updates and the movement is
// then recorded with the payment service.
type PaymentUseCase struct {
	accounts gateway.AccountAPI
	payments gateway.PaymentAPI
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(accounts gateway.AccountAPI, payments gateway.PaymentAPI) *PaymentUseCase {
	return &PaymentUseCase{accounts: accounts, payments: payments}
}

// ExternalTransfer describes money leaving the bank.
type ExternalTransfer struct {
	FromAccountID int64
	Amount        decimal.Decimal
	BankName      string
	IFSC          string
	AccountNumber string
}

func externalDescription(bank, ifsc, account string) string {
	return fmt.Sprintf("External bank transfer to %s / IFSC %s / %s", bank, ifsc, account)
}

func (u *PaymentUseCase) Deposit(ctx context.Context, user *model.User, accountID int64, amount decimal.Decimal) (*model.Payment, error) {
	if err := positive(amount); err != nil {
		return nil, err
	}
	account, err := u.ownAccount(ctx, user, accountID)
	if err != nil {
		return nil, err
	}
	if err := u.setBalance(ctx, account.ID, account.Balance.Add(amount)); err != nil {
		return nil, err
	}
	return u.record(ctx, account, account.ID, amount, descDeposit, model.TransferDeposit)
}

// SelfTransfer moves money between two accounts of the same user.
func (u *PaymentUseCase) SelfTransfer(ctx context.Context, user *model.User, fromID, toID int64, amount decimal.Decimal) (*model.Payment, error) {
	if err := positive(amount); err != nil {
		return nil, err
	}
	if fromID == toID {
		return nil, invalid("source and destination accounts must differ")
	}
	from, err := u.ownAccount(ctx, user, fromID)
	if err != nil {
		return nil, err
	}
	to, err := u.ownAccount(ctx, user, toID)
	if err != nil {
		return nil, err
	}
	return u.move(ctx, from, to, amount, descSelfTransfer, model.TransferInternal)
}

// BankTransfer pays into another customer's account held by this bank.
func (u *PaymentUseCase) BankTransfer(ctx context.Context, user *model.User, fromID, toID int64, amount decimal.Decimal, description string) (*model.Payment, error) {
	if err := positive(amount); err != nil {
		return nil, err
	}
	if fromID == toID {
		return nil, invalid("source and destination accounts must differ")
	}
	from, err := u.ownAccount(ctx, user, fromID)
	if err != nil {
		return nil, err
	}
	to, err := u.accounts.GetAccount(ctx, toID)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = descBankTransfer
	}
	return u.move(ctx, from, to, amount, description, model.TransferBank)
}

// External debits the source account only; the destination is outside the
// bank and is recorded as account 0.
func (u *PaymentUseCase) External(ctx context.Context, user *model.User, in ExternalTransfer) (*model.Payment, error) {
	if err := positive(in.Amount); err != nil {
		return nil, err
	}
	if err := requireFields("bankName", in.BankName, "ifsc", in.IFSC, "accountNumber", in.AccountNumber); err != nil {
		return nil, err
	}
	from, err := u.ownAccount(ctx, user, in.FromAccountID)
	if err != nil {
		return nil, err
	}
	if from.Balance.LessThan(in.Amount) {
		return nil, domainErrors.ErrInsufficientBalance
	}
	if err := u.setBalance(ctx, from.ID, from.Balance.Sub(in.Amount)); err != nil {
		return nil, err
	}
	desc := externalDescription(strings.TrimSpace(in.BankName), strings.TrimSpace(in.IFSC), strings.TrimSpace(in.AccountNumber))
	return u.record(ctx, from, 0, in.Amount, desc, model.TransferExternal)
}

func (u *PaymentUseCase) move(ctx context.Context, from, to *model.Account, amount decimal.Decimal, description string, kind model.TransferKind) (*model.Payment, error) {
	if from.Balance.LessThan(amount) {
		return nil, domainErrors.ErrInsufficientBalance
	}
	if err := u.setBalance(ctx, from.ID, from.Balance.Sub(amount)); err != nil {
		return nil, err
	}
	if err := u.setBalance(ctx, to.ID, to.Balance.Add(amount)); err != nil {
		return nil, err
	}
	return u.record(ctx, from, to.ID, amount, description, kind)
}

func (u *PaymentUseCase) record(ctx context.Context, from *model.Account, toID int64, amount decimal.Decimal, description string, kind model.TransferKind) (*model.Payment, error) {
	return u.payments.Transfer(ctx, model.TransferRequest{
		FromAccountID: from.ID,
		ToAccountID:   toID,
		Amount:        amount,
		Currency:      money.NormalizeCurrency(from.Currency),
		Description:   description,
		TransferType:  kind,
	})
}

func (u *PaymentUseCase) setBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	_, err := u.accounts.UpdateAccount(ctx, accountID, model.AccountUpdate{Balance: balance})
	return err
}

func (u *PaymentUseCase) ownAccount(ctx context.Context, user *model.User, accountID int64) (*model.Account, error) {
	if accountID <= 0 {
		return nil, invalid("account id is required")
	}
	account, err := u.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !owns(user, account) {
		return nil, domainErrors.ErrNotFound
	}
	return account, nil
}

func positive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainErrors.ErrInvalidAmount
	}
	return nil
}
