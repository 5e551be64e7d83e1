package usecase

import (
	"context"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/infra/queue"
)

type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	FindByID(ctx context.Context, id string) (*entity.Contact, error)
	FindAll(ctx context.Context) ([]*entity.Contact, error)
	Update(ctx context.Context, c *entity.Contact) error

	// Delete cascade-deletes the contact's interactions and tasks at the
	// schema level. Linked notifications keep their rows, the link is
	// nulled out.
	Delete(ctx context.Context, id string) error
}

type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	FindByID(ctx context.Context, id string) (*entity.Company, error)
	FindAll(ctx context.Context) ([]*entity.Company, error)
	Update(ctx context.Context, c *entity.Company) error
	Delete(ctx context.Context, id string) error
}

// InteractionFilter narrows FindAll to one contact or company.
// Zero value means no filtering.
type InteractionFilter struct {
	ContactID string
	CompanyID string
}

type InteractionRepository interface {
	Create(ctx context.Context, i *entity.Interaction) error
	FindByID(ctx context.Context, id string) (*entity.Interaction, error)
	FindAll(ctx context.Context, filter InteractionFilter) ([]*entity.Interaction, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByType(ctx context.Context) (map[string]int, error)
}

type MeetingRepository interface {
	Create(ctx context.Context, m *entity.Meeting) error
	FindByID(ctx context.Context, id string) (*entity.Meeting, error)
	FindAll(ctx context.Context) ([]*entity.Meeting, error)
	Update(ctx context.Context, m *entity.Meeting) error
	Delete(ctx context.Context, id string) error
}

type TaskFilter struct {
	ContactID string
	CompanyID string
	Status    string
}

type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]*entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	FindAll(ctx context.Context) ([]*entity.Notification, error)

	// MarkRead flips is_read to true and returns the row. Marking an
	// already-read notification is a no-op success; a missing id is
	// entity.ErrNotFound.
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)

	// CountUnread recomputes from the authoritative rows on every call.
	// There is deliberately no maintained counter that could drift.
	CountUnread(ctx context.Context) (int, error)
}

type EventProducer interface {
	PublishNotification(ctx context.Context, ev queue.NotificationEvent) error
}
