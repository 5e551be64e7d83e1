package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`

	// Derived on read, never stored.
	ContactsCount int `json:"contacts_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCompany(name, website, address string) (*Company, error) {
	company := &Company{
		ID:        uuid.New().String(),
		Name:      name,
		Website:   website,
		Address:   address,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := company.Validate(); err != nil {
		return nil, err
	}

	return company, nil
}

func (c *Company) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
