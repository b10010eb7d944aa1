package gateway

import (
	"context"
	"net/http"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

func (c *HTTPClient) Transfer(ctx context.Context, in model.TransferRequest) (*model.Payment, error) {
	var payment model.Payment
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "payments", "transfer"), in, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *HTTPClient) GetPayment(ctx context.Context, paymentID int64) (*model.Payment, error) {
	var payment model.Payment
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "payments", pathID(paymentID)), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *HTTPClient) UpdatePayment(ctx context.Context, paymentID int64, status model.PaymentStatus) (*model.Payment, error) {
	var payment model.Payment
	body := map[string]model.PaymentStatus{"status": status}
	if err := c.do(ctx, http.MethodPut, c.endpoint(nil, "payments", pathID(paymentID)), body, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *HTTPClient) DeletePayment(ctx context.Context, paymentID int64) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(nil, "payments", pathID(paymentID)), nil, nil)
}

// PaymentsByAccount lists payments touching accountID. The gateway names this
// route after users but keys it by account id.
func (c *HTTPClient) PaymentsByAccount(ctx context.Context, accountID int64) ([]model.Payment, error) {
	var payments []model.Payment
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "payments", "user", pathID(accountID)), nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
