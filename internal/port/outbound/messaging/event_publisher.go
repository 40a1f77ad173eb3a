package messaging

import (
	"context"

	"github.com/0xsj/overwatch-mediator/internal/domain/event"
)

// EventPublisher defines the interface for publishing domain events.
type EventPublisher interface {
	// Publish publishes a single event.
	Publish(ctx context.Context, evt event.Event) error

	// PublishAll publishes multiple events.
	PublishAll(ctx context.Context, events []event.Event) error
}

// Topic names for catalog events.
const (
	TopicItemEvents  = "catalog.item"
	TopicOtherEvents = "catalog.other"
)

// TopicForEvent returns the appropriate topic for an event type.
func TopicForEvent(evt event.Event) string {
	switch evt.AggregateType() {
	case event.AggregateTypeItem:
		return TopicItemEvents
	default:
		return TopicOtherEvents
	}
}
