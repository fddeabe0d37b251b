// Package events publishes account lifecycle events to RabbitMQ so other
// processes (notification worker, audit sinks) can react without coupling to
// the request path.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TypeUserRegistered  = "user.registered"
	TypeUserDeactivated = "user.deactivated"
	TypePasswordChanged = "user.password_changed"
)

// AccountEvent is the JSON payload put on the account-events queue.
type AccountEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAccountEvent stamps an event with a fresh id and the current time.
func NewAccountEvent(typ, userID, email, username string) AccountEvent {
	return AccountEvent{
		EventID:    uuid.NewString(),
		Type:       typ,
		UserID:     userID,
		Email:      email,
		Username:   username,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher wraps an AMQP channel and a durable queue.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, Queue: queue}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Publish sends the event to the default exchange with persistent delivery.
func (p *Publisher) Publish(ctx context.Context, ev AccountEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
			Body:         b,
		},
	)
}
