package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/0xsj/overwatch-mediator/internal/domain/event"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/messaging"
)

// Message headers set on every published event.
const (
	HeaderMsgID     = nats.MsgIdHdr
	HeaderEventType = "Catalog-Event-Type"
)

// eventPublisher implements messaging.EventPublisher.
type eventPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(conn *nats.Conn, subjectPrefix string) messaging.EventPublisher {
	if subjectPrefix == "" {
		subjectPrefix = "overwatch"
	}
	return &eventPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, evt event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := p.newMsg(evt)
	if err != nil {
		return err
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// PublishAll publishes events in order and flushes once at the end.
func (p *eventPublisher) PublishAll(ctx context.Context, events []event.Event) error {
	for _, evt := range events {
		if err := p.Publish(ctx, evt); err != nil {
			return err
		}
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush events: %w", err)
	}
	return nil
}

func (p *eventPublisher) newMsg(evt event.Event) (*nats.Msg, error) {
	envelope := EventEnvelope{
		EventID:       evt.EventID().String(),
		EventType:     evt.EventType(),
		AggregateID:   evt.AggregateID().String(),
		AggregateType: evt.AggregateType(),
		OccurredAt:    evt.OccurredAt().Time().Unix(),
		Payload:       evt,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := nats.NewMsg(p.SubjectFor(evt))
	msg.Header.Set(HeaderMsgID, envelope.EventID)
	msg.Header.Set(HeaderEventType, envelope.EventType)
	msg.Data = data
	return msg, nil
}

// SubjectFor returns the subject an event is published on.
func (p *eventPublisher) SubjectFor(evt event.Event) string {
	return fmt.Sprintf("%s.%s", p.subjectPrefix, messaging.TopicForEvent(evt))
}

// EventEnvelope wraps an event with metadata for transport.
type EventEnvelope struct {
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	AggregateID   string `json:"aggregate_id"`
	AggregateType string `json:"aggregate_type"`
	OccurredAt    int64  `json:"occurred_at"`
	Payload       any    `json:"payload"`
}
