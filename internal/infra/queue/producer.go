package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event kinds the worker knows how to route.
const (
	KindInteractionLogged = "interaction.logged"
	KindMeetingScheduled  = "meeting.scheduled"
	KindTaskOverdue       = "task.overdue"
)

// NotificationEvent is the store-side trigger for creating a
// Notification row. The ids are weak references for deep-linking.
type NotificationEvent struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`

	ContactID     string `json:"contact_id,omitempty"`
	CompanyID     string `json:"company_id,omitempty"`
	InteractionID string `json:"interaction_id,omitempty"`

	// Set on meeting.scheduled so the worker can send a reminder mail.
	ContactEmail string `json:"contact_email,omitempty"`
	MeetingTitle string `json:"meeting_title,omitempty"`
	MeetingStart string `json:"meeting_start,omitempty"` // RFC3339
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, ev NotificationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
