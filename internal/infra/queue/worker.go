package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/claritycrm/crm-backend/internal/entity"
)

// NotificationStore is the one slice of persistence the worker needs.
type NotificationStore interface {
	Create(ctx context.Context, n *entity.Notification) error
}

// ReminderMailer sends the optional meeting-reminder mail. May be nil.
type ReminderMailer interface {
	SendMeetingReminder(to, title string, start time.Time) error
}

// Worker consumes notification events and turns them into Notification
// rows. It is the only writer of notifications; the HTTP layer only
// reads and flips is_read.
type Worker struct {
	Channel *amqp.Channel
	Store   NotificationStore
	Mailer  ReminderMailer
}

func NewWorker(ch *amqp.Channel, store NotificationStore, mailer ReminderMailer) *Worker {
	return &Worker{
		Channel: ch,
		Store:   store,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var ev NotificationEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				log.Printf("❌ [WORKER] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it does
				// not clog the queue; the DLX keeps it for inspection.
				d.Nack(false, false)
				continue
			}

			if err := w.ProcessEvent(context.Background(), ev); err != nil {
				log.Printf("❌ [WORKER] failed to process %s: %s", ev.Kind, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}

// ProcessEvent persists the Notification for a known event kind.
// Unknown kinds are acked and dropped: there is nothing useful to do
// with them and requeueing would loop forever.
func (w *Worker) ProcessEvent(ctx context.Context, ev NotificationEvent) error {
	switch ev.Kind {
	case KindInteractionLogged, KindMeetingScheduled, KindTaskOverdue:
	default:
		log.Printf("⚠️ [WORKER] unknown event kind: %q, dropping", ev.Kind)
		return nil
	}

	notification, err := entity.NewNotification(
		ev.Message,
		nullable(ev.ContactID),
		nullable(ev.CompanyID),
		nullable(ev.InteractionID),
	)
	if err != nil {
		log.Printf("⚠️ [WORKER] event without message, dropping: %+v", ev)
		return nil
	}

	if err := w.Store.Create(ctx, notification); err != nil {
		return err
	}

	// Reminder mail is best-effort, exactly like the cascade that
	// produced the event.
	if ev.Kind == KindMeetingScheduled && w.Mailer != nil && ev.ContactEmail != "" {
		start, err := time.Parse(time.RFC3339, ev.MeetingStart)
		if err != nil {
			start = time.Now()
		}
		if err := w.Mailer.SendMeetingReminder(ev.ContactEmail, ev.MeetingTitle, start); err != nil {
			log.Printf("⚠️ [WORKER] reminder mail failed: %v", err)
		}
	}

	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
