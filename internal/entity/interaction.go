package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type InteractionType string

const (
	InteractionNote    InteractionType = "Note"
	InteractionCall    InteractionType = "Call"
	InteractionMeeting InteractionType = "Meeting"
	InteractionEmail   InteractionType = "Email"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionNote, InteractionCall, InteractionMeeting, InteractionEmail:
		return true
	}
	return false
}

// Interaction is immutable once created; the only mutation is deletion.
// Exactly one of ContactID / CompanyID is set.
type Interaction struct {
	ID              string          `json:"id"`
	InteractionType InteractionType `json:"interaction_type"`
	Notes           string          `json:"notes"`
	InteractionDate time.Time       `json:"interaction_date"`

	ContactID *string `json:"contact_id,omitempty"`
	CompanyID *string `json:"company_id,omitempty"`
}

func NewInteraction(interactionType InteractionType, notes string, contactID, companyID *string) (*Interaction, error) {
	interaction := &Interaction{
		ID:              uuid.New().String(),
		InteractionType: interactionType,
		Notes:           notes,
		InteractionDate: time.Now(),
		ContactID:       contactID,
		CompanyID:       companyID,
	}

	if err := interaction.Validate(); err != nil {
		return nil, err
	}

	return interaction, nil
}

func (i Interaction) Identity() string { return i.ID }

func (i *Interaction) Validate() error {
	if !i.InteractionType.Valid() {
		return errors.New("interaction_type is invalid")
	}
	if strings.TrimSpace(i.Notes) == "" {
		return errors.New("notes are required")
	}
	if (i.ContactID == nil) == (i.CompanyID == nil) {
		return errors.New("exactly one of contact_id or company_id must be set")
	}
	return nil
}
