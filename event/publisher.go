// Package event publishes cart state transitions.
package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
)

const (
	// SubjectPrefix prefixes every cart event subject; the event type follows.
	SubjectPrefix = "storefront.cart.event."
	// SubjectWildcard matches every cart event subject.
	SubjectWildcard = SubjectPrefix + ">"
)

func Subject(t enum.CartEventType) string {
	return SubjectPrefix + string(t)
}

type Publisher interface {
	Publish(ctx context.Context, event *models.CartEvent) error
}

// Sink receives events published in-process.
type Sink interface {
	Submit(ctx context.Context, event *models.CartEvent)
}

var (
	_ Publisher = (*natsPublisher)(nil)
	_ Publisher = (*localPublisher)(nil)
)

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewNATSPublisher publishes events as JSON on Subject(event.Type).
func NewNATSPublisher(conn *nats.Conn, logger *zap.Logger) Publisher {
	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}
}

func (p *natsPublisher) Publish(_ context.Context, event *models.CartEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.conn.Publish(Subject(event.Type), data); err != nil {
		p.logger.Error("Failed to publish event", zap.String("event_id", event.ID), zap.Error(err))
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

type localPublisher struct {
	sink Sink
}

// NewLocalPublisher hands events straight to sink without a broker.
func NewLocalPublisher(sink Sink) Publisher {
	return &localPublisher{sink: sink}
}

func (p *localPublisher) Publish(ctx context.Context, event *models.CartEvent) error {
	p.sink.Submit(ctx, event)
	return nil
}

// Decode parses a NATS message body back into a CartEvent.
func Decode(data []byte) (*models.CartEvent, error) {
	var event models.CartEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if !event.Type.Valid() {
		return nil, fmt.Errorf("unknown event type %q", event.Type)
	}
	return &event, nil
}
