package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher pushes status-change events onto the notification queue. A nil
// Publisher is a no-op so workflows run without a broker in tests and
// single-node setups.
type Publisher struct {
	conn *RabbitMQConnection
}

func NewPublisher(conn *RabbitMQConnection) *Publisher {
	return &Publisher{conn: conn}
}

// PublishStatusChanged publishes a status-change event to the notification
// queue. Publish failures are logged, never propagated: a missing broker must
// not fail a committed workflow transition.
func (p *Publisher) PublishStatusChanged(ctx context.Context, evt StatusChangedEvent) {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.publish(ctx, evt); err != nil {
		slog.Error("failed to publish status-change event",
			"entity_type", evt.EntityType,
			"entity_id", evt.EntityID,
			"error", err)
		return
	}
	slog.Info("status-change event published",
		"queue", NotificationQueue,
		"entity_type", evt.EntityType,
		"reference", evt.ReferenceNumber,
		"to", evt.ToState)
}

func (p *Publisher) publish(ctx context.Context, evt StatusChangedEvent) error {
	_, err := p.conn.Channel.QueueDeclare(
		NotificationQueue, // queue name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",                // exchange
		NotificationQueue, // routing key (queue name)
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
