package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Notification is created by the store side in reaction to other
// entities' mutations and mutated only to flip IsRead (false -> true,
// never back). The link fields are weak references for deep-linking;
// they go nil when the linked record disappears, the notification row
// stays.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`

	LinkContactID     *string `json:"link_contact_id,omitempty"`
	LinkCompanyID     *string `json:"link_company_id,omitempty"`
	LinkInteractionID *string `json:"link_interaction_id,omitempty"`
}

func (n Notification) Identity() string { return n.ID }

func NewNotification(message string, contactID, companyID, interactionID *string) (*Notification, error) {
	if message == "" {
		return nil, errors.New("message is required")
	}

	return &Notification{
		ID:                uuid.New().String(),
		Message:           message,
		IsRead:            false,
		CreatedAt:         time.Now(),
		LinkContactID:     contactID,
		LinkCompanyID:     companyID,
		LinkInteractionID: interactionID,
	}, nil
}
