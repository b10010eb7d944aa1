package gateway

import (
	"context"
	"net/http"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

func (c *HTTPClient) SendNotification(ctx context.Context, in model.NotificationInput) (*model.Notification, error) {
	var n model.Notification
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "notifications", "send"), in, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) GetNotification(ctx context.Context, notificationID int64) (*model.Notification, error) {
	var n model.Notification
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "notifications", pathID(notificationID)), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) NotificationsByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	var list []model.Notification
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "notifications", "user", pathID(userID)), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) UnseenCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "notifications", "user", pathID(userID), "unseen-count"), nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *HTTPClient) MarkSeen(ctx context.Context, notificationID int64) error {
	return c.do(ctx, http.MethodPut, c.endpoint(nil, "notifications", pathID(notificationID), "seen"), nil, nil)
}

func (c *HTTPClient) MarkAllSeen(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPut, c.endpoint(nil, "notifications", "user", pathID(userID), "seen-all"), nil, nil)
}
