package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/database"
)

// Every message carries the payload schema version under metadataVersion.
const (
	metadataVersion = "event_version"
	eventVersion    = "1"
)

// Outbox publishes domain events as part of the unit of work bound to ctx.
// Repositories depend on this interface; *EventBus and *MemoryOutbox implement it.
type Outbox interface {
	PublishEvent(ctx context.Context, topic string, event any) error
}

// PublishEvent JSON-encodes event and publishes it to topic. When ctx carries a
// transaction started by database.WithinTx, the message is written by that
// transaction and becomes visible to subscribers only on commit.
func (q *EventBus) PublishEvent(ctx context.Context, topic string, event any) error {
	msg, err := NewMessage(ctx, event)
	if err != nil {
		return err
	}

	tx, ok := database.TxFromContext(ctx)
	if !ok {
		return q.Publish(ctx, topic, msg)
	}

	p, err := q.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	if err := p.Publish(topic, msg); err != nil {
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// NewMessage encodes event as a Watermill message carrying the OTel trace of ctx.
func NewMessage(ctx context.Context, event any) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metadataVersion, eventVersion)
	injectTrace(ctx, msg)
	return msg, nil
}

// Decode unmarshals the payload of msg into T.
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", msg.UUID, err)
	}
	return v, nil
}

// RecordedEvent is one event captured by MemoryOutbox.
type RecordedEvent struct {
	Topic string
	Event any
}

// MemoryOutbox records published events in memory. Register it with a
// memdb.DB so events from a rolled-back unit of work are discarded too.
type MemoryOutbox struct {
	mu     sync.Mutex
	events []RecordedEvent
}

// NewMemoryOutbox returns an empty MemoryOutbox.
func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{}
}

// PublishEvent records event under topic.
func (o *MemoryOutbox) PublishEvent(_ context.Context, topic string, event any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, RecordedEvent{Topic: topic, Event: event})
	return nil
}

// Events returns a copy of everything recorded so far.
func (o *MemoryOutbox) Events() []RecordedEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]RecordedEvent, len(o.events))
	copy(out, o.events)
	return out
}

// Topics returns the topic of every recorded event, in publish order.
func (o *MemoryOutbox) Topics() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Topic
	}
	return out
}

// Snapshot implements memdb.Table.
func (o *MemoryOutbox) Snapshot() func() {
	o.mu.Lock()
	n := len(o.events)
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.events = o.events[:n]
	}
}
