// Package event publishes domain events to a RabbitMQ topic exchange.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/hirewise/config"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

type Type string

const (
	ResumeAnalyzed           Type = "resume.analyzed"
	InterviewSessionComplete Type = "interview.session.completed"
)

type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// New stamps payload with a fresh id and the current time.
func New(t Type, payload any) Event {
	return Event{ID: uuid.NewString(), Type: t, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type rabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewPublisher connects to RABBITMQ_URL and declares the events exchange.
// Publishing is disabled when the URL is empty.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if cfg.RabbitMQ.URL == "" {
		log.Warn().Msg("RABBITMQ_URL is not set, event publishing is disabled")
		return NoopPublisher{}, nil
	}

	conn, err := amqp091.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.RabbitMQ.Exchange, // name
		"topic",               // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("Event publisher initialized")
	return &rabbitPublisher{conn: conn, channel: channel, exchange: cfg.RabbitMQ.Exchange}, nil
}

func (p *rabbitPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx,
		p.exchange,     // exchange
		string(e.Type), // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    e.ID,
			Timestamp:    e.OccurredAt,
			Body:         body,
			Headers: amqp091.Table{
				"event_type": string(e.Type),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("event_type", string(e.Type)).Str("event_id", e.ID).Msg("Published event")
	return nil
}

func (p *rabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		log.Warn().Err(err).Msg("Error closing RabbitMQ channel")
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("error closing RabbitMQ connection: %w", err)
	}
	return nil
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, e Event) error {
	log.Debug().Str("event_type", string(e.Type)).Msg("Event publishing disabled, skipping event")
	return nil
}

func (NoopPublisher) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
