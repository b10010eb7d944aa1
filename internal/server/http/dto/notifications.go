package dto

import "github.com/polkiloo/bankportal/internal/domain/model"

type NotificationRequest struct {
	UserID    int64                  `json:"userId,omitempty"`
	Type      model.NotificationType `json:"type,omitempty"`
	Recipient string                 `json:"recipient,omitempty"`
	Subject   string                 `json:"subject"`
	Message   string                 `json:"message"`
}

type UnseenResponse struct {
	Count int64 `json:"count"`
}
