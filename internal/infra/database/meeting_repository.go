package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/claritycrm/crm-backend/internal/entity"
)

type MeetingRepository struct {
	DB *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

func (r *MeetingRepository) Create(ctx context.Context, m *entity.Meeting) error {
	query := `
		INSERT INTO meetings (id, title, description, location, start_at, end_at, status, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		m.ID,
		m.Title,
		nullString(m.Description),
		nullString(m.Location),
		m.Start,
		m.End,
		string(m.Status),
		m.CompanyID,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		log.Printf("❌ [REPO MEETING] insert failed: %v", err)
		return err
	}

	return nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*entity.Meeting, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), COALESCE(location, ''),
		       start_at, end_at, status, company_id, created_at, updated_at
		FROM meetings
		WHERE id = $1
	`

	var m entity.Meeting
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Location,
		&m.Start,
		&m.End,
		&m.Status,
		&m.CompanyID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *MeetingRepository) FindAll(ctx context.Context) ([]*entity.Meeting, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), COALESCE(location, ''),
		       start_at, end_at, status, company_id, created_at, updated_at
		FROM meetings
		ORDER BY start_at
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetings := []*entity.Meeting{}
	for rows.Next() {
		var m entity.Meeting
		err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Description,
			&m.Location,
			&m.Start,
			&m.End,
			&m.Status,
			&m.CompanyID,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, &m)
	}

	return meetings, rows.Err()
}

func (r *MeetingRepository) Update(ctx context.Context, m *entity.Meeting) error {
	query := `
		UPDATE meetings
		SET title = $2, description = $3, location = $4, start_at = $5,
		    end_at = $6, status = $7, company_id = $8, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		m.ID,
		m.Title,
		nullString(m.Description),
		nullString(m.Location),
		m.Start,
		m.End,
		string(m.Status),
		m.CompanyID,
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

func (r *MeetingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
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
