package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dwikikusuma/order-notify/internal/notify/domain"
	"github.com/dwikikusuma/order-notify/pkg/metrics"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Forwarder mirrors every published notification onto a local AMQP fanout
// exchange so self-hosted subscribers can listen without the hosted pub/sub
// service. It is an optional, best-effort leg.
type Forwarder struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	metrics  *metrics.Registry
}

func NewForwarder(url, exchange string, m *metrics.Registry) (*Forwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Forwarder{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		metrics:  m,
	}, nil
}

func (f *Forwarder) Broadcast(ctx context.Context, rec domain.NotificationRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	err = f.channel.PublishWithContext(ctx,
		f.exchange,
		"",    // routing key, ignored by fanout
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
	if err != nil {
		f.metrics.BroadcastFailed.Inc()
		return fmt.Errorf("broadcast publish: %w", err)
	}

	return nil
}

func (f *Forwarder) Close() {
	if f.channel != nil {
		f.channel.Close()
	}
	if f.conn != nil {
		f.conn.Close()
	}
}
