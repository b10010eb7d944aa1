package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

func (c *HTTPClient) CreateAccount(ctx context.Context, in model.AccountInput) (*model.Account, error) {
	var account model.Account
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "accounts"), in, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *HTTPClient) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "accounts"), nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *HTTPClient) GetAccount(ctx context.Context, accountID int64) (*model.Account, error) {
	var account model.Account
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "accounts", pathID(accountID)), nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *HTTPClient) UpdateAccount(ctx context.Context, accountID int64, update model.AccountUpdate) (*model.Account, error) {
	var account model.Account
	if err := c.do(ctx, http.MethodPut, c.endpoint(nil, "accounts", pathID(accountID)), update, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, accountID int64) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(nil, "accounts", pathID(accountID)), nil, nil)
}

func (c *HTTPClient) GetBalance(ctx context.Context, accountID int64) (*model.Balance, error) {
	var balance model.Balance
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "accounts", pathID(accountID), "balance"), nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// AccountsByUser lists accounts owned by lookupID, optionally filtered by status.
func (c *HTTPClient) AccountsByUser(ctx context.Context, lookupID int64, status model.AccountStatus) ([]model.Account, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{string(status)}}
	}
	var accounts []model.Account
	if err := c.do(ctx, http.MethodGet, c.endpoint(query, "accounts", "user", pathID(lookupID)), nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}
