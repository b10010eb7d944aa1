package usecase

import (
	"context"
	"strings"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
)

// NotificationUseCase reads and acknowledges the user's notifications.
// Notifications are keyed by the auth user id, not the customer id.
type NotificationUseCase struct {
	notifications gateway.NotificationAPI
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications gateway.NotificationAPI) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

func (u *NotificationUseCase) List(ctx context.Context, user *model.User) ([]model.Notification, error) {
	list, err := u.notifications.NotificationsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Notification{}
	}
	return list, nil
}

func (u *NotificationUseCase) Unseen(ctx context.Context, user *model.User) (int64, error) {
	return u.notifications.UnseenCount(ctx, user.ID)
}

func (u *NotificationUseCase) MarkSeen(ctx context.Context, user *model.User, notificationID int64) error {
	if notificationID <= 0 {
		return invalid("notification id is required")
	}
	notification, err := u.notifications.GetNotification(ctx, notificationID)
	if err != nil {
		return err
	}
	if !user.IsAdmin() && notification.UserID != 0 && notification.UserID != user.ID {
		return domainErrors.ErrNotFound
	}
	return u.notifications.MarkSeen(ctx, notificationID)
}

func (u *NotificationUseCase) MarkAllSeen(ctx context.Context, user *model.User) error {
	return u.notifications.MarkAllSeen(ctx, user.ID)
}

// Send dispatches a notification. Customers may only address themselves.
func (u *NotificationUseCase) Send(ctx context.Context, user *model.User, in model.NotificationInput) (*model.Notification, error) {
	if in.UserID == 0 {
		in.UserID = user.ID
	}
	if !user.IsAdmin() && in.UserID != user.ID {
		return nil, domainErrors.ErrForbidden
	}
	if in.Type == "" {
		in.Type = model.NotificationEmail
	}
	if !in.Type.IsValid() {
		return nil, invalid("unknown notification type " + string(in.Type))
	}
	if in.Recipient == "" && in.Type == model.NotificationEmail {
		in.Recipient = user.Email
	}
	if err := requireFields("subject", in.Subject, "message", in.Message); err != nil {
		return nil, err
	}
	in.Subject = strings.TrimSpace(in.Subject)
	return u.notifications.SendNotification(ctx, in)
}
