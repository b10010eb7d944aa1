package dto

import "github.com/polkiloo/bankportal/internal/domain/model"

type OpenAccountRequest struct {
	AccountType model.AccountType `json:"accountType"`
	Currency    string            `json:"currency,omitempty"`
}
