package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/infra/http/middleware"
	"github.com/claritycrm/crm-backend/internal/infra/queue"
)

type OverdueTaskStore interface {
	MarkOverdue(ctx context.Context) ([]*entity.Task, error)
}

type EventProducer interface {
	PublishNotification(ctx context.Context, ev queue.NotificationEvent) error
}

// OverdueTaskWorker periodically flips PENDING tasks past their due
// date to OVERDUE and emits a notification event per task. It owns its
// ticker: started with a context, stopped when that context is
// cancelled.
type OverdueTaskWorker struct {
	store        OverdueTaskStore
	producer     EventProducer
	tickInterval time.Duration
}

func NewOverdueTaskWorker(store OverdueTaskStore, producer EventProducer) *OverdueTaskWorker {
	return &OverdueTaskWorker{
		store:        store,
		producer:     producer,
		tickInterval: 5 * time.Minute,
	}
}

func (w *OverdueTaskWorker) Start(ctx context.Context) {
	log.Println("🕒 Overdue task worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Overdue task worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueTaskWorker) sweep(ctx context.Context) {
	tasks, err := w.store.MarkOverdue(ctx)
	if err != nil {
		log.Printf("❌ Overdue sweep failed: %v", err)
		return
	}

	for _, task := range tasks {
		log.Printf("⏱️ Task overdue: id=%s title=%q due=%s",
			task.ID, task.Title, task.DueDate.Format(time.RFC3339))

		if w.producer == nil {
			continue
		}

		ev := queue.NotificationEvent{
			Kind:    queue.KindTaskOverdue,
			Message: fmt.Sprintf("Task overdue: %s", task.Title),
		}
		if task.ContactID != nil {
			ev.ContactID = *task.ContactID
		}
		if task.CompanyID != nil {
			ev.CompanyID = *task.CompanyID
		}

		if err := w.producer.PublishNotification(ctx, ev); err != nil {
			log.Printf("⚠️ Failed to publish overdue event for task %s: %v", task.ID, err)
		}
	}

	if len(tasks) > 0 {
		middleware.RecordTasksMarkedOverdue(len(tasks))
		log.Printf("✅ %d task(s) marked OVERDUE", len(tasks))
	}
}
