package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/claritycrm/crm-backend/internal/entity"
)

func TestNotificationUseCase(t *testing.T) {
	t.Run("Unread count is recomputed on every call", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		repo.On("CountUnread", mock.Anything).Return(2, nil).Once()
		repo.On("CountUnread", mock.Anything).Return(1, nil).Once()

		uc := NewNotificationUseCase(repo)

		count, err := uc.UnreadCount(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 2, count)

		// After a mark-read elsewhere the next poll sees the new number,
		// no cached counter in between.
		count, err = uc.UnreadCount(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 1, count)

		repo.AssertNumberOfCalls(t, "CountUnread", 2)
	})

	t.Run("MarkRead is idempotent", func(t *testing.T) {
		read := &entity.Notification{ID: "n-1", Message: "Meeting scheduled", IsRead: true}

		repo := new(MockNotificationRepository)
		repo.On("MarkRead", mock.Anything, "n-1").Return(read, nil)

		uc := NewNotificationUseCase(repo)

		first, err := uc.MarkRead(context.Background(), "n-1")
		assert.NoError(t, err)
		assert.True(t, first.IsRead)

		second, err := uc.MarkRead(context.Background(), "n-1")
		assert.NoError(t, err)
		assert.True(t, second.IsRead)
	})

	t.Run("MarkRead on a missing id is NOT_FOUND", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		repo.On("MarkRead", mock.Anything, "ghost").Return(nil, entity.ErrNotFound)

		uc := NewNotificationUseCase(repo)

		_, err := uc.MarkRead(context.Background(), "ghost")

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeNotFound, domainErr.Code)
	})

	t.Run("Store failure surfaces as a technical error", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		repo.On("CountUnread", mock.Anything).Return(0, errors.New("connection refused"))

		uc := NewNotificationUseCase(repo)

		_, err := uc.UnreadCount(context.Background())

		var techErr *TechnicalError
		assert.ErrorAs(t, err, &techErr)
		assert.Equal(t, CodeStore, techErr.Code)
	})
}
