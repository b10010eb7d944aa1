package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

func (c *HTTPClient) CreateCustomer(ctx context.Context, in model.CustomerInput) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "customers"), in, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *HTTPClient) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "customers"), nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *HTTPClient) GetCustomer(ctx context.Context, customerID int64) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "customers", pathID(customerID)), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *HTTPClient) UpdateCustomer(ctx context.Context, customerID int64, in model.CustomerInput) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodPut, c.endpoint(nil, "customers", pathID(customerID)), in, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *HTTPClient) DeleteCustomer(ctx context.Context, customerID int64) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(nil, "customers", pathID(customerID)), nil, nil)
}

func (c *HTTPClient) SubmitKYC(ctx context.Context, customerID int64, doc model.KYCSubmission) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "customers", pathID(customerID), "kyc"), doc, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *HTTPClient) SearchCustomers(ctx context.Context, query map[string]string) ([]model.Customer, error) {
	values := url.Values{}
	for k, v := range query {
		if v != "" {
			values.Set(k, v)
		}
	}
	var customers []model.Customer
	if err := c.do(ctx, http.MethodGet, c.endpoint(values, "customers", "search"), nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
