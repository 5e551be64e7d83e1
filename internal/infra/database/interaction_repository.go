package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Create(ctx context.Context, i *entity.Interaction) error {
	query := `
		INSERT INTO interactions (id, interaction_type, notes, interaction_date, contact_id, company_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		i.ID,
		string(i.InteractionType),
		i.Notes,
		i.InteractionDate,
		i.ContactID,
		i.CompanyID,
	)

	if err != nil {
		log.Printf("❌ [REPO INTERACTION] insert failed: %v", err)
		return err
	}

	return nil
}

func (r *InteractionRepository) FindByID(ctx context.Context, id string) (*entity.Interaction, error) {
	query := `
		SELECT id, interaction_type, notes, interaction_date, contact_id, company_id
		FROM interactions
		WHERE id = $1
	`

	var i entity.Interaction
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&i.ID,
		&i.InteractionType,
		&i.Notes,
		&i.InteractionDate,
		&i.ContactID,
		&i.CompanyID,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &i, nil
}

func (r *InteractionRepository) FindAll(ctx context.Context, filter usecase.InteractionFilter) ([]*entity.Interaction, error) {
	where, args := whereClause(
		condition{"contact_id", filter.ContactID},
		condition{"company_id", filter.CompanyID},
	)
	query := `
		SELECT id, interaction_type, notes, interaction_date, contact_id, company_id
		FROM interactions
		` + where + `
		ORDER BY interaction_date DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := []*entity.Interaction{}
	for rows.Next() {
		var i entity.Interaction
		err := rows.Scan(
			&i.ID,
			&i.InteractionType,
			&i.Notes,
			&i.InteractionDate,
			&i.ContactID,
			&i.CompanyID,
		)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, &i)
	}

	return interactions, rows.Err()
}

// Delete removes only the interaction row. Meetings are never touched
// here, by contract.
func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1`, id)
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

func (r *InteractionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM interactions`).Scan(&count)
	return count, err
}

func (r *InteractionRepository) CountByType(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT interaction_type, count(*)
		FROM interactions
		GROUP BY interaction_type
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var interactionType string
		var count int
		if err := rows.Scan(&interactionType, &count); err != nil {
			return nil, err
		}
		counts[interactionType] = count
	}

	return counts, rows.Err()
}
