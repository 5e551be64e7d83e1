package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: do not import usecase or infra here!
)

type ContactType string

const (
	ContactTypeLead     ContactType = "LEAD"
	ContactTypeProspect ContactType = "PROSPECT"
	ContactTypeCustomer ContactType = "CUSTOMER"
	ContactTypeOther    ContactType = "OTHER"
)

func (t ContactType) Valid() bool {
	switch t {
	case ContactTypeLead, ContactTypeProspect, ContactTypeCustomer, ContactTypeOther:
		return true
	}
	return false
}

type SalesStage string

const (
	StageNone          SalesStage = ""
	StageProspecting   SalesStage = "PROSPECTING"
	StageQualification SalesStage = "QUALIFICATION"
	StageProposal      SalesStage = "PROPOSAL"
	StageNegotiation   SalesStage = "NEGOTIATION"
	StageClosedWon     SalesStage = "CLOSED_WON"
	StageClosedLost    SalesStage = "CLOSED_LOST"
)

func (s SalesStage) Valid() bool {
	switch s {
	case StageNone, StageProspecting, StageQualification, StageProposal,
		StageNegotiation, StageClosedWon, StageClosedLost:
		return true
	}
	return false
}

// Terminal stages are never auto-advanced, only explicit user action
// may move a contact out of them.
func (s SalesStage) Terminal() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Entidade: Contact
type Contact struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone,omitempty"`
	ContactType ContactType `json:"contact_type"`
	SalesStage  SalesStage  `json:"sales_stage"`

	// Weak reference to Company. Never an owning pointer: deleting the
	// company nulls this out, it does not delete the contact.
	CompanyID *string `json:"company_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewContact(name, email, phone string, contactType ContactType, stage SalesStage, companyID *string) (*Contact, error) {
	if contactType == "" {
		contactType = ContactTypeLead
	}

	contact := &Contact{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		ContactType: contactType,
		SalesStage:  stage,
		CompanyID:   companyID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

func (c Contact) Identity() string { return c.ID }

func (c *Contact) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if !c.ContactType.Valid() {
		return errors.New("contact_type is invalid")
	}
	if !c.SalesStage.Valid() {
		return errors.New("sales_stage is invalid")
	}
	return nil
}
