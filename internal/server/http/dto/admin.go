package dto

import "github.com/polkiloo/bankportal/internal/domain/model"

// ExecuteApprovalsRequest maps a service name, or its resource segment, to
// the decision applied to a set of its items.
type ExecuteApprovalsRequest map[string]model.BulkApproval

type ExecuteApprovalsResponse struct {
	Results map[string]string `json:"results"`
}

// HealthResponse is returned by the health probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
