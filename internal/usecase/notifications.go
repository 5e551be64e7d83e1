package usecase

import (
	"context"

	"github.com/claritycrm/crm-backend/internal/entity"
)

// NotificationUseCase is the aggregator over notification rows. The
// unread count is a derived view recomputed per call; consumers poll it
// on an interval and after each MarkRead.
type NotificationUseCase struct {
	Notifications NotificationRepository
}

func NewNotificationUseCase(notifications NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{Notifications: notifications}
}

func (uc *NotificationUseCase) List(ctx context.Context) ([]*entity.Notification, error) {
	notifications, err := uc.Notifications.FindAll(ctx)
	if err != nil {
		return nil, NewStoreError("list notifications", err)
	}
	return notifications, nil
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context) (int, error) {
	count, err := uc.Notifications.CountUnread(ctx)
	if err != nil {
		return 0, NewStoreError("count unread notifications", err)
	}
	return count, nil
}

// MarkRead is idempotent: flipping an already-read notification is a
// no-op success. is_read only ever transitions false -> true.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	notification, err := uc.Notifications.MarkRead(ctx, id)
	if err != nil {
		if err == entity.ErrNotFound {
			return nil, NewNotFound("notification", id)
		}
		return nil, NewStoreError("mark notification read", err)
	}
	return notification, nil
}
