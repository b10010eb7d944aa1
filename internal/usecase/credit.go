package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/pkg/money"
)

var (
	defaultLoanRate = decimal.RequireFromString("5.5")
	defaultLoanTerm = 12
)

// CreditUseCase handles loan and card products and EMI repayment.
type CreditUseCase struct {
	credits  gateway.CreditAPI
	accounts gateway.AccountAPI
	payments gateway.PaymentAPI
}

// NewCreditUseCase constructs CreditUseCase.
func NewCreditUseCase(credits gateway.CreditAPI, accounts gateway.AccountAPI, payments gateway.PaymentAPI) *CreditUseCase {
	return &CreditUseCase{credits: credits, accounts: accounts, payments: payments}
}

// LoanRequest is the loan application form. Zero rate and term take the
// portal defaults of 5.5% over 12 months.
type LoanRequest struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermMonths   int
}

// CardRequest is the credit card application form.
type CardRequest struct {
	CreditLimit  decimal.Decimal
	InterestRate decimal.Decimal
	CardType     string
}

func (u *CreditUseCase) ApplyLoan(ctx context.Context, user *model.User, req LoanRequest) (*model.CreditProduct, error) {
	if !user.HasCustomerProfile() {
		return nil, domainErrors.ErrProfileRequired
	}
	if err := positive(req.Amount); err != nil {
		return nil, err
	}
	if req.InterestRate.IsZero() {
		req.InterestRate = defaultLoanRate
	}
	if req.TermMonths == 0 {
		req.TermMonths = defaultLoanTerm
	}
	if req.InterestRate.IsNegative() || req.TermMonths < 0 {
		return nil, invalid("interest rate and term must be positive")
	}
	return u.credits.ApplyLoan(ctx, model.LoanApplication{
		CustomerID:   *user.CustomerID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
	})
}

func (u *CreditUseCase) ApplyCard(ctx context.Context, user *model.User, req CardRequest) (*model.CreditProduct, error) {
	if !user.HasCustomerProfile() {
		return nil, domainErrors.ErrProfileRequired
	}
	if err := positive(req.CreditLimit); err != nil {
		return nil, err
	}
	if req.InterestRate.IsNegative() {
		return nil, invalid("interest rate must not be negative")
	}
	return u.credits.ApplyCard(ctx, model.CardApplication{
		CustomerID:   *user.CustomerID,
		CreditLimit:  req.CreditLimit,
		InterestRate: req.InterestRate,
		CardType:     strings.TrimSpace(req.CardType),
	})
}

func (u *CreditUseCase) List(ctx context.Context, user *model.User) ([]model.CreditProduct, error) {
	credits, err := u.credits.CreditsByUser(ctx, user.LookupID())
	if err != nil {
		return nil, err
	}
	if credits == nil {
		credits = []model.CreditProduct{}
	}
	return credits, nil
}

// Get fetches a credit product directly and falls back to the user's list
// when the direct lookup is refused. A credit held by another customer is
// reported as not found.
func (u *CreditUseCase) Get(ctx context.Context, user *model.User, creditID int64) (*model.CreditProduct, error) {
	credit, err := u.credits.GetCredit(ctx, creditID)
	if err == nil && credit != nil {
		if !holdsCredit(user, credit) {
			return nil, domainErrors.ErrNotFound
		}
		return credit, nil
	}

	list, listErr := u.credits.CreditsByUser(ctx, user.LookupID())
	if listErr == nil {
		for i := range list {
			if list[i].ID == creditID {
				return &list[i], nil
			}
		}
	}
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) && !errors.Is(err, domainErrors.ErrForbidden) {
		return nil, err
	}
	return nil, domainErrors.ErrNotFound
}

func (u *CreditUseCase) Close(ctx context.Context, user *model.User, creditID int64) error {
	if _, err := u.Get(ctx, user, creditID); err != nil {
		return err
	}
	return u.credits.DeleteCredit(ctx, creditID)
}

// RepaymentView is the loan repayment page: the next installment split and
// the amortisation table over the outstanding amount.
type RepaymentView struct {
	Credit   *model.CreditProduct `json:"credit"`
	Next     money.Split          `json:"next"`
	Schedule []money.ScheduleRow  `json:"schedule"`
	Payable  bool                 `json:"payable"`
}

func (u *CreditUseCase) Repayment(ctx context.Context, user *model.User, creditID int64) (*RepaymentView, error) {
	credit, err := u.Get(ctx, user, creditID)
	if err != nil {
		return nil, err
	}
	schedule := money.Schedule(credit.Amount, credit.InterestRate, credit.TermMonths)
	if schedule == nil {
		schedule = []money.ScheduleRow{}
	}
	return &RepaymentView{
		Credit:   credit,
		Next:     money.NextInstallment(credit.Amount, credit.InterestRate, credit.TermMonths),
		Schedule: schedule,
		Payable:  credit.Repayable() && credit.Amount.IsPositive(),
	}, nil
}

// RepaymentResult reports one paid installment.
type RepaymentResult struct {
	Credit  *model.CreditProduct `json:"credit"`
	Payment *model.Payment       `json:"payment"`
	Split   money.Split          `json:"split"`
}

// RepayEMI pays the next installment of a loan from an active account.
// The outstanding amount drops by the principal part; an APPROVED loan
// becomes ACTIVE and a fully repaid one CLOSED.
func (u *CreditUseCase) RepayEMI(ctx context.Context, user *model.User, creditID, accountID int64) (*RepaymentResult, error) {
	credit, err := u.Get(ctx, user, creditID)
	if err != nil {
		return nil, err
	}
	if !credit.Repayable() {
		return nil, domainErrors.ErrLoanNotApproved
	}

	split := money.NextInstallment(credit.Amount, credit.InterestRate, credit.TermMonths)
	if !split.Installment.IsPositive() {
		return nil, fmt.Errorf("%w: installment must be positive", domainErrors.ErrInvalidAmount)
	}

	account, err := u.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !owns(user, account) {
		return nil, domainErrors.ErrNotFound
	}
	if account.Status != model.AccountStatusActive {
		return nil, invalid("repayment account must be active")
	}
	if account.Balance.LessThan(split.Installment) {
		return nil, domainErrors.ErrInsufficientBalance
	}

	newBalance := account.Balance.Sub(split.Installment).Round(2)
	if _, err := u.accounts.UpdateAccount(ctx, account.ID, model.AccountUpdate{Balance: newBalance}); err != nil {
		return nil, err
	}

	payment, err := u.payments.Transfer(ctx, model.TransferRequest{
		FromAccountID: account.ID,
		ToAccountID:   0,
		Amount:        split.Installment,
		Currency:      money.NormalizeCurrency(account.Currency),
		Description:   fmt.Sprintf("Loan repayment for credit %d", credit.ID),
		TransferType:  model.TransferLoanRepayment,
	})
	if err != nil {
		return nil, err
	}

	status := nextCreditStatus(credit.Status, split.Remaining)
	remaining := split.Remaining
	updated, err := u.credits.UpdateCredit(ctx, credit.ID, model.CreditUpdate{Amount: &remaining, Status: &status})
	if err != nil {
		return nil, err
	}
	if updated == nil || updated.ID == 0 {
		local := *credit
		local.Amount, local.Status = remaining, status
		updated = &local
	}
	return &RepaymentResult{Credit: updated, Payment: payment, Split: split}, nil
}

func holdsCredit(user *model.User, credit *model.CreditProduct) bool {
	if user.IsAdmin() || credit.CustomerID == 0 {
		return true
	}
	return credit.CustomerID == user.LookupID()
}

func nextCreditStatus(current model.CreditProductStatus, remaining decimal.Decimal) model.CreditProductStatus {
	if !remaining.IsPositive() {
		return model.CreditStatusClosed
	}
	if current == model.CreditStatusApproved {
		return model.CreditStatusActive
	}
	return current
}
