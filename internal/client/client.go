// Package client is the reconciliation layer consumed by UI frontends:
// a typed REST client plus the optimistic-update discipline for cached
// lists and the owned polling task for the unread badge.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

// APIError is the decoded server error payload. Failure is always
// detected from the status code and this body, never inferred from the
// success payload's shape.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *APIError) NotFound() bool {
	return e.Code == "NOT_FOUND"
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures, timeouts included, are store errors as
		// far as the caller is concerned.
		return &APIError{Code: "STORE_ERROR", Message: err.Error(), Status: 0}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error APIError `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil || payload.Error.Code == "" {
			return &APIError{Code: "STORE_ERROR", Message: resp.Status, Status: resp.StatusCode}
		}
		payload.Error.Status = resp.StatusCode
		return &payload.Error
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	var contacts []entity.Contact
	err := c.do(ctx, http.MethodGet, "/api/contacts", nil, &contacts)
	return contacts, err
}

func (c *Client) CreateContact(ctx context.Context, contact entity.Contact) (*entity.Contact, error) {
	var created entity.Contact
	if err := c.do(ctx, http.MethodPost, "/api/contacts", contact, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateContact(ctx context.Context, id string, fields map[string]interface{}) (*entity.Contact, error) {
	var updated entity.Contact
	if err := c.do(ctx, http.MethodPut, "/api/contacts/"+id, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/contacts/"+id, nil, nil)
}

func (c *Client) MoveStage(ctx context.Context, id string, direction usecase.Direction) (*entity.Contact, error) {
	var contact entity.Contact
	body := map[string]string{"direction": string(direction)}
	if err := c.do(ctx, http.MethodPut, "/api/contacts/"+id+"/stage", body, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) Pipeline(ctx context.Context) (map[string][]entity.Contact, error) {
	var view map[string][]entity.Contact
	err := c.do(ctx, http.MethodGet, "/api/sales/pipeline", nil, &view)
	return view, err
}

func (c *Client) ListInteractions(ctx context.Context) ([]entity.Interaction, error) {
	var interactions []entity.Interaction
	err := c.do(ctx, http.MethodGet, "/api/interactions", nil, &interactions)
	return interactions, err
}

func (c *Client) LogInteraction(ctx context.Context, input usecase.LogInteractionInput) (*entity.Interaction, error) {
	var created entity.Interaction
	if err := c.do(ctx, http.MethodPost, "/api/interactions", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteInteraction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/interactions/"+id, nil, nil)
}

func (c *Client) ListNotifications(ctx context.Context) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &notifications)
	return notifications, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*entity.Notification, error) {
	var notification entity.Notification
	if err := c.do(ctx, http.MethodPut, "/api/notifications/"+id+"/read", nil, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
