package database

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent and run in order on startup.
//
// Reference semantics encoded here, on purpose:
//   - contacts.company_id        ON DELETE SET NULL (weak ref)
//   - interactions / tasks refs  ON DELETE CASCADE  (owned by contact/company)
//   - notifications.link_*       ON DELETE SET NULL (notification outlives target)
//   - meetings carry NO foreign key to interactions
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id         uuid PRIMARY KEY,
		name       text NOT NULL UNIQUE,
		website    text,
		address    text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS contacts (
		id           uuid PRIMARY KEY,
		name         text NOT NULL,
		email        text NOT NULL,
		phone        text,
		contact_type text NOT NULL DEFAULT 'LEAD'
			CHECK (contact_type IN ('LEAD', 'PROSPECT', 'CUSTOMER', 'OTHER')),
		sales_stage  text NOT NULL DEFAULT ''
			CHECK (sales_stage IN ('', 'PROSPECTING', 'QUALIFICATION', 'PROPOSAL',
			                       'NEGOTIATION', 'CLOSED_WON', 'CLOSED_LOST')),
		company_id   uuid REFERENCES companies(id) ON DELETE SET NULL,
		created_at   timestamptz NOT NULL DEFAULT now(),
		updated_at   timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS interactions (
		id               uuid PRIMARY KEY,
		interaction_type text NOT NULL
			CHECK (interaction_type IN ('Note', 'Call', 'Meeting', 'Email')),
		notes            text NOT NULL,
		interaction_date timestamptz NOT NULL DEFAULT now(),
		contact_id       uuid REFERENCES contacts(id) ON DELETE CASCADE,
		company_id       uuid REFERENCES companies(id) ON DELETE CASCADE,
		CHECK ((contact_id IS NULL) <> (company_id IS NULL))
	)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		id          uuid PRIMARY KEY,
		title       text NOT NULL,
		description text,
		location    text,
		start_at    timestamptz NOT NULL,
		end_at      timestamptz NOT NULL,
		status      text NOT NULL DEFAULT 'scheduled'
			CHECK (status IN ('scheduled', 'completed', 'cancelled',
			                  'postponed', 'pending', 'draft')),
		company_id  uuid REFERENCES companies(id) ON DELETE SET NULL,
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now(),
		CHECK (end_at > start_at)
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          uuid PRIMARY KEY,
		title       text NOT NULL,
		description text,
		due_date    timestamptz,
		status      text NOT NULL DEFAULT 'PENDING'
			CHECK (status IN ('PENDING', 'IN_PROGRESS', 'COMPLETED', 'OVERDUE')),
		contact_id  uuid REFERENCES contacts(id) ON DELETE CASCADE,
		company_id  uuid REFERENCES companies(id) ON DELETE CASCADE,
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id                  uuid PRIMARY KEY,
		message             text NOT NULL,
		is_read             boolean NOT NULL DEFAULT false,
		created_at          timestamptz NOT NULL DEFAULT now(),
		link_contact_id     uuid REFERENCES contacts(id) ON DELETE SET NULL,
		link_company_id     uuid REFERENCES companies(id) ON DELETE SET NULL,
		link_interaction_id uuid REFERENCES interactions(id) ON DELETE SET NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_interactions_contact_id ON interactions(contact_id)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_company_id ON interactions(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status_due ON tasks(status, due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications(is_read) WHERE NOT is_read`,
}

func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
