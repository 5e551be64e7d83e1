package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, due_date, status, contact_id, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.Title,
		nullString(t.Description),
		t.DueDate,
		string(t.Status),
		t.ContactID,
		t.CompanyID,
		t.CreatedAt,
		t.UpdatedAt,
	)

	if err != nil {
		log.Printf("❌ [REPO TASK] insert failed: %v", err)
		return err
	}

	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), due_date, status, contact_id, company_id, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var t entity.Task
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Status,
		&t.ContactID,
		&t.CompanyID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TaskRepository) FindAll(ctx context.Context, filter usecase.TaskFilter) ([]*entity.Task, error) {
	where, args := whereClause(
		condition{"contact_id", filter.ContactID},
		condition{"company_id", filter.CompanyID},
		condition{"status", filter.Status},
	)
	query := `
		SELECT id, title, COALESCE(description, ''), due_date, status, contact_id, company_id, created_at, updated_at
		FROM tasks
		` + where + `
		ORDER BY due_date NULLS LAST, created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*entity.Task{}
	for rows.Next() {
		var t entity.Task
		err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.DueDate,
			&t.Status,
			&t.ContactID,
			&t.CompanyID,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}

	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, status = $5,
		    contact_id = $6, company_id = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.Title,
		nullString(t.Description),
		t.DueDate,
		string(t.Status),
		t.ContactID,
		t.CompanyID,
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

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
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

func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM tasks`).Scan(&count)
	return count, err
}

// MarkOverdue flips PENDING tasks past their due date to OVERDUE and
// returns them, so the caller can fan out notifications.
func (r *TaskRepository) MarkOverdue(ctx context.Context) ([]*entity.Task, error) {
	query := `
		UPDATE tasks
		SET status = 'OVERDUE', updated_at = NOW()
		WHERE status = 'PENDING'
		  AND due_date IS NOT NULL
		  AND due_date < NOW()
		RETURNING id, title, COALESCE(description, ''), due_date, status, contact_id, company_id, created_at, updated_at
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*entity.Task{}
	for rows.Next() {
		var t entity.Task
		err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.DueDate,
			&t.Status,
			&t.ContactID,
			&t.CompanyID,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}

	return tasks, rows.Err()
}
