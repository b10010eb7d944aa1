package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

func (c *HTTPClient) PendingApprovals(ctx context.Context) ([]model.Approval, error) {
	var approvals []model.Approval
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "admin", "approvals", "pending"), nil, &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

// ExecuteApprovals submits decisions grouped by owning service and returns
// the per-service outcome reported by the admin service.
func (c *HTTPClient) ExecuteApprovals(ctx context.Context, actions map[model.ApprovalService]model.BulkApproval) (map[string]string, error) {
	results := map[string]string{}
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "admin", "approvals", "execute"), actions, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *HTTPClient) ServiceApprovals(ctx context.Context, service model.ApprovalService) ([]model.Approval, error) {
	resource := service.Resource()
	if resource == "" {
		return nil, fmt.Errorf("unknown approval service %q", service)
	}
	var approvals []model.Approval
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, resource, "approvals"), nil, &approvals); err != nil {
		return nil, err
	}
	for i := range approvals {
		approvals[i].Service = service
	}
	return approvals, nil
}

func (c *HTTPClient) BulkApprove(ctx context.Context, service model.ApprovalService, action model.BulkApproval) error {
	resource := service.Resource()
	if resource == "" {
		return fmt.Errorf("unknown approval service %q", service)
	}
	return c.do(ctx, http.MethodPost, c.endpoint(nil, resource, "approvals", "bulk"), action, nil)
}

func (c *HTTPClient) AllCustomers(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "admin", "customers", "all"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AllAccounts(ctx context.Context) ([]model.Account, error) {
	var out []model.Account
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "admin", "accounts", "all"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AllCredits(ctx context.Context) ([]model.CreditProduct, error) {
	var out []model.CreditProduct
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "admin", "credits", "all"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AllPayments(ctx context.Context) ([]model.Payment, error) {
	var out []model.Payment
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "admin", "payments", "all"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
