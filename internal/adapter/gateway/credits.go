package gateway

import (
	"context"
	"net/http"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

func (c *HTTPClient) ApplyLoan(ctx context.Context, in model.LoanApplication) (*model.CreditProduct, error) {
	var credit model.CreditProduct
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "credits", "loans"), in, &credit); err != nil {
		return nil, err
	}
	return &credit, nil
}

func (c *HTTPClient) ApplyCard(ctx context.Context, in model.CardApplication) (*model.CreditProduct, error) {
	var credit model.CreditProduct
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "credits", "cards"), in, &credit); err != nil {
		return nil, err
	}
	return &credit, nil
}

func (c *HTTPClient) GetCredit(ctx context.Context, creditID int64) (*model.CreditProduct, error) {
	var credit model.CreditProduct
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "credits", pathID(creditID)), nil, &credit); err != nil {
		return nil, err
	}
	return &credit, nil
}

func (c *HTTPClient) UpdateCredit(ctx context.Context, creditID int64, update model.CreditUpdate) (*model.CreditProduct, error) {
	var credit model.CreditProduct
	if err := c.do(ctx, http.MethodPut, c.endpoint(nil, "credits", pathID(creditID)), update, &credit); err != nil {
		return nil, err
	}
	return &credit, nil
}

func (c *HTTPClient) DeleteCredit(ctx context.Context, creditID int64) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(nil, "credits", pathID(creditID)), nil, nil)
}

func (c *HTTPClient) CreditsByUser(ctx context.Context, lookupID int64) ([]model.CreditProduct, error) {
	var credits []model.CreditProduct
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "credits", "user", pathID(lookupID)), nil, &credits); err != nil {
		return nil, err
	}
	return credits, nil
}
