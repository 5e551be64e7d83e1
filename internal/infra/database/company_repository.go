package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/claritycrm/crm-backend/internal/entity"
)

type CompanyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, website, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Website),
		nullString(c.Address),
		c.CreatedAt,
		c.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrCompanyNameTaken
		}
		log.Printf("❌ [REPO COMPANY] insert failed: %v", err)
		return err
	}

	return nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT c.id, c.name, COALESCE(c.website, ''), COALESCE(c.address, ''),
		       (SELECT count(*) FROM contacts WHERE company_id = c.id),
		       c.created_at, c.updated_at
		FROM companies c
		WHERE c.id = $1
	`

	var c entity.Company
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Website,
		&c.Address,
		&c.ContactsCount,
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

func (r *CompanyRepository) FindAll(ctx context.Context) ([]*entity.Company, error) {
	query := `
		SELECT c.id, c.name, COALESCE(c.website, ''), COALESCE(c.address, ''),
		       (SELECT count(*) FROM contacts WHERE company_id = c.id),
		       c.created_at, c.updated_at
		FROM companies c
		ORDER BY c.name
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []*entity.Company{}
	for rows.Next() {
		var c entity.Company
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Website,
			&c.Address,
			&c.ContactsCount,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		companies = append(companies, &c)
	}

	return companies, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, website = $3, address = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Website),
		nullString(c.Address),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrCompanyNameTaken
		}
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

// Delete cascades to the company's interactions and tasks; contacts
// survive with company_id nulled.
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
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
