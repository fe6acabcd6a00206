// Package broker publishes domain events to RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	RoutingReservationConfirmed = "reservation.confirmed"
	RoutingReservationCancelled = "reservation.cancelled"
	RoutingScreeningScheduled   = "screening.scheduled"
)

// Publisher sends payload as JSON under routingKey.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// AMQPPublisher publishes persistent JSON messages through the default exchange
// to a durable queue named after the routing key. It keeps one connection and
// redials when the broker drops it.
type AMQPPublisher struct {
	url      string
	log      *zap.Logger
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]bool
}

func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url:      url,
		log:      log.With(zap.String("publisher", "amqp")),
		declared: make(map[string]bool),
	}
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("dial broker: %w", err)
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p.ch = ch
	p.declared = make(map[string]bool)
	return ch, nil
}

// queueDeclarer is the part of *amqp.Channel used to set up a queue.
type queueDeclarer interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
}

// declareQueue declares a durable, non-exclusive queue that outlives restarts.
func declareQueue(ch queueDeclarer, name string) error {
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

// newMessage encodes payload as a persistent JSON message stamped with now.
func newMessage(payload any, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	msg, err := newMessage(payload, time.Now())
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		p.log.Error("Broker unavailable", zap.Error(err), zap.String("routing_key", routingKey))
		return err
	}

	if !p.declared[routingKey] {
		if err := declareQueue(ch, routingKey); err != nil {
			p.log.Error("Failed to declare queue", zap.Error(err), zap.String("queue", routingKey))
			return err
		}
		p.declared[routingKey] = true
	}

	if err := ch.PublishWithContext(ctx, "", routingKey, false, false, msg); err != nil {
		p.log.Error("Failed to publish event", zap.Error(err), zap.String("routing_key", routingKey))
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.Debug("Event published", zap.String("routing_key", routingKey), zap.Int("bytes", len(msg.Body)))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                             { return nil }
