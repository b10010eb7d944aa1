package usecase

import (
	"context"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/pkg/money"
)

// AccountUseCase lists and manages the accounts of the session user.
type AccountUseCase struct {
	accounts gateway.AccountAPI
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(accounts gateway.AccountAPI) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// List returns the user's accounts, optionally restricted to one status.
func (u *AccountUseCase) List(ctx context.Context, user *model.User, status model.AccountStatus) ([]model.Account, error) {
	if status != "" && !status.IsValid() {
		return nil, invalid("unknown account status " + string(status))
	}
	accounts, err := u.accounts.AccountsByUser(ctx, user.LookupID(), status)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	return accounts, nil
}

// Get returns one account. Customers only see their own accounts.
func (u *AccountUseCase) Get(ctx context.Context, user *model.User, accountID int64) (*model.Account, error) {
	account, err := u.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !owns(user, account) {
		return nil, domainErrors.ErrNotFound
	}
	return account, nil
}

func (u *AccountUseCase) Balance(ctx context.Context, user *model.User, accountID int64) (*model.Balance, error) {
	if _, err := u.Get(ctx, user, accountID); err != nil {
		return nil, err
	}
	return u.accounts.GetBalance(ctx, accountID)
}

// Create opens an account for the user's customer profile. The type
// defaults to SAVINGS and the currency to USD.
func (u *AccountUseCase) Create(ctx context.Context, user *model.User, accountType model.AccountType, currency string) (*model.Account, error) {
	if !user.HasCustomerProfile() {
		return nil, domainErrors.ErrProfileRequired
	}
	if accountType == "" {
		accountType = model.AccountTypeSavings
	}
	if !accountType.IsValid() {
		return nil, invalid("unknown account type " + string(accountType))
	}
	return u.accounts.CreateAccount(ctx, model.AccountInput{
		CustomerID:  *user.CustomerID,
		AccountType: accountType,
		Currency:    money.NormalizeCurrency(currency),
	})
}

func (u *AccountUseCase) Close(ctx context.Context, user *model.User, accountID int64) error {
	if _, err := u.Get(ctx, user, accountID); err != nil {
		return err
	}
	return u.accounts.DeleteAccount(ctx, accountID)
}

// Recipients lists the active accounts of another customer for a bank
// transfer.
func (u *AccountUseCase) Recipients(ctx context.Context, user *model.User, customerID int64) ([]model.Account, error) {
	if customerID <= 0 {
		return nil, invalid("recipient customer id is required")
	}
	if customerID == user.LookupID() {
		return nil, invalid("use a self transfer between your own accounts")
	}
	return u.List(ctx, &model.User{ID: customerID}, model.AccountStatusActive)
}

// owns reports whether user may act on account. Admins act on any account.
func owns(user *model.User, account *model.Account) bool {
	if user.IsAdmin() || account.CustomerID == 0 {
		return true
	}
	return account.CustomerID == user.LookupID()
}
