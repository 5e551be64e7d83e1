package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/claritycrm/crm-backend/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, contact_type, sales_stage, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		nullString(c.Phone),
		string(c.ContactType),
		string(c.SalesStage),
		c.CompanyID,
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		log.Printf("❌ [REPO CONTACT] insert failed: %v", err)
		return err
	}

	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), contact_type, sales_stage, company_id, created_at, updated_at
		FROM contacts
		WHERE id = $1
	`

	var c entity.Contact
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.ContactType,
		&c.SalesStage,
		&c.CompanyID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *ContactRepository) FindAll(ctx context.Context) ([]*entity.Contact, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), contact_type, sales_stage, company_id, created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []*entity.Contact{}
	for rows.Next() {
		var c entity.Contact
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.ContactType,
			&c.SalesStage,
			&c.CompanyID,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}

	return contacts, rows.Err()
}

func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, email = $3, phone = $4, contact_type = $5,
		    sales_stage = $6, company_id = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		nullString(c.Phone),
		string(c.ContactType),
		string(c.SalesStage),
		c.CompanyID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// Delete relies on the schema to cascade-delete the contact's
// interactions and tasks, and to null out notification links.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
