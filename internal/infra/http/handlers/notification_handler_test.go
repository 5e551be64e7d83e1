package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type stubNotificationRepo struct {
	notifications map[string]*entity.Notification
	unread        int
}

func (s *stubNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	s.notifications[n.ID] = n
	return nil
}

func (s *stubNotificationRepo) FindAll(ctx context.Context) ([]*entity.Notification, error) {
	out := make([]*entity.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, n)
	}
	return out, nil
}

func (s *stubNotificationRepo) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	n, ok := s.notifications[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if !n.IsRead {
		n.IsRead = true
		s.unread--
	}
	return n, nil
}

func (s *stubNotificationRepo) CountUnread(ctx context.Context) (int, error) {
	return s.unread, nil
}

func notificationRouter(repo *stubNotificationRepo) *chi.Mux {
	handler := NewNotificationHandler(usecase.NewNotificationUseCase(repo))

	r := chi.NewRouter()
	r.Get("/api/notifications", handler.List)
	r.Get("/api/notifications/unread-count", handler.UnreadCount)
	r.Put("/api/notifications/{id}/read", handler.MarkRead)
	return r
}

func TestNotificationEndpoints(t *testing.T) {
	repo := &stubNotificationRepo{
		notifications: map[string]*entity.Notification{
			"n-1": {ID: "n-1", Message: "Meeting scheduled: Kickoff"},
			"n-2": {ID: "n-2", Message: "Task overdue: follow up"},
		},
		unread: 2,
	}
	router := notificationRouter(repo)

	t.Run("Unread count reflects the rows", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/notifications/unread-count", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]int
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body["count"])
	})

	t.Run("MarkRead drops the count on the next poll", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/notifications/n-1/read", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var n entity.Notification
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
		assert.True(t, n.IsRead)

		req = httptest.NewRequest("GET", "/api/notifications/unread-count", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var body map[string]int
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 1, body["count"])
	})

	t.Run("MarkRead twice stays 200", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/notifications/n-1/read", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("MarkRead on a missing id is a structured 404", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/notifications/ghost/read", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, usecase.CodeNotFound, body.Error.Code)
		assert.NotEmpty(t, body.Error.Message)
	})

	t.Run("List returns every notification", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/notifications", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var notifications []entity.Notification
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
		assert.Len(t, notifications, 2)
	})
}
