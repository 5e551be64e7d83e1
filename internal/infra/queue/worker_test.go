package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/claritycrm/crm-backend/internal/entity"
)

type fakeStore struct {
	created []*entity.Notification
	err     error
}

func (f *fakeStore) Create(ctx context.Context, n *entity.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

type fakeMailer struct {
	to    string
	title string
	err   error
}

func (f *fakeMailer) SendMeetingReminder(to, title string, start time.Time) error {
	f.to = to
	f.title = title
	return f.err
}

func TestProcessEvent(t *testing.T) {
	t.Run("Interaction event becomes a linked notification", func(t *testing.T) {
		store := &fakeStore{}
		w := NewWorker(nil, store, nil)

		err := w.ProcessEvent(context.Background(), NotificationEvent{
			Kind:          KindInteractionLogged,
			Message:       "New Call interaction with Dana Reeve",
			ContactID:     "ct-1",
			InteractionID: "in-1",
		})

		assert.NoError(t, err)
		assert.Len(t, store.created, 1)

		n := store.created[0]
		assert.False(t, n.IsRead)
		assert.Equal(t, "ct-1", *n.LinkContactID)
		assert.Equal(t, "in-1", *n.LinkInteractionID)
		assert.Nil(t, n.LinkCompanyID)
	})

	t.Run("Unknown kind is dropped without error", func(t *testing.T) {
		store := &fakeStore{}
		w := NewWorker(nil, store, nil)

		err := w.ProcessEvent(context.Background(), NotificationEvent{
			Kind:    "contact.sneezed",
			Message: "gesundheit",
		})

		assert.NoError(t, err)
		assert.Empty(t, store.created)
	})

	t.Run("Store failure propagates for a nack", func(t *testing.T) {
		store := &fakeStore{err: errors.New("insert failed")}
		w := NewWorker(nil, store, nil)

		err := w.ProcessEvent(context.Background(), NotificationEvent{
			Kind:    KindTaskOverdue,
			Message: "Task overdue: follow up",
		})

		assert.Error(t, err)
	})

	t.Run("Meeting event triggers the reminder mail", func(t *testing.T) {
		store := &fakeStore{}
		mailer := &fakeMailer{}
		w := NewWorker(nil, store, mailer)

		err := w.ProcessEvent(context.Background(), NotificationEvent{
			Kind:         KindMeetingScheduled,
			Message:      "Meeting scheduled: Meeting with Dana Reeve",
			ContactEmail: "dana@example.com",
			MeetingTitle: "Meeting with Dana Reeve",
			MeetingStart: "2024-01-10T09:00:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, "dana@example.com", mailer.to)
		assert.Equal(t, "Meeting with Dana Reeve", mailer.title)
	})

	t.Run("Mail failure does not fail the event", func(t *testing.T) {
		store := &fakeStore{}
		mailer := &fakeMailer{err: errors.New("smtp timeout")}
		w := NewWorker(nil, store, mailer)

		err := w.ProcessEvent(context.Background(), NotificationEvent{
			Kind:         KindMeetingScheduled,
			Message:      "Meeting scheduled: Sync",
			ContactEmail: "dana@example.com",
			MeetingTitle: "Sync",
		})

		assert.NoError(t, err)
		assert.Len(t, store.created, 1)
	})
}
