// Package events carries inventory and order domain events over PostgreSQL
// using Watermill's SQL transport.
//
// The API process publishes through a transactional outbox: PublishEvent
// inside database.WithinTx writes the message with the business rows, and a
// forwarder relays committed messages to their topic. The worker subscribes
// with a shared consumer group, so each event is handled by one worker
// instance. Handlers must be idempotent because delivery is at least once.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/config"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
)

const (
	closeTimeout   = 30 * time.Second
	errBuffer      = 100
	forwarderTopic = "ammo_outbox"
	forwarderGroup = "ammo-outbox-forwarder"
)

var errNotForwarding = errors.New("events: bus was not created with a forwarder")

// Handler processes one message. Returning an error schedules a retry.
type Handler func(ctx context.Context, msg *message.Message) error

// EventBus publishes and subscribes to domain event topics.
type EventBus struct {
	db         *sql.DB
	log        logger.Logger
	wlog       *watermillLogger
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	retry      retryPolicy
	forwarding bool
	fwd        *forwarder.Forwarder
	wg         sync.WaitGroup
}

// NewEventBus returns a bus that publishes straight to topics. The worker uses
// it to subscribe.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return open(cfg, log, false)
}

// NewEventBusWithForwarder returns a bus whose publishes go to the outbox
// queue. Call StartForwarder to relay them.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return open(cfg, log, true)
}

func open(cfg *config.Config, log logger.Logger, forwarding bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	bus := &EventBus{
		db:         db,
		log:        log,
		wlog:       &watermillLogger{log: log},
		retry:      retryPolicy{attempts: cfg.EventMaxAttempts, delay: cfg.EventRetryDelay},
		forwarding: forwarding,
	}

	pub, err := bus.newPublisher(db, true)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	bus.publisher = bus.wrap(pub)

	bus.subscriber, err = bus.newSubscriber(cfg.ServiceName + "-worker")
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}
	return bus, nil
}

func (b *EventBus) newPublisher(conn watermillsql.ContextExecutor, initSchema bool) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(conn, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}, b.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func (b *EventBus) newSubscriber(group string) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(b.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, b.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber %s: %w", group, err)
	}
	return sub, nil
}

// wrap routes pub through the outbox queue when the bus forwards.
func (b *EventBus) wrap(pub message.Publisher) message.Publisher {
	if !b.forwarding {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// StartForwarder relays committed outbox messages to their topics until ctx
// ends or the bus closes. It returns once the relay is running.
func (b *EventBus) StartForwarder(ctx context.Context) error {
	if !b.forwarding {
		return errNotForwarding
	}
	if b.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	queue, err := b.newSubscriber(forwarderGroup)
	if err != nil {
		return err
	}
	target, err := b.newPublisher(b.db, true)
	if err != nil {
		_ = queue.Close()
		return err
	}
	fwd, err := forwarder.NewForwarder(queue, target, b.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = target.Close()
		_ = queue.Close()
		return fmt.Errorf("events: new forwarder: %w", err)
	}
	b.fwd = fwd

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := fwd.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "outbox forwarder stopped", "error", err)
			return
		}
		b.log.InfoContext(ctx, "outbox forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		b.log.InfoContext(ctx, "outbox forwarder running", "queue", forwarderTopic)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}

// NewTxPublisher returns a publisher that writes inside tx. The schema is
// created when the bus opens, so it is not initialized here.
func (b *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := b.newPublisher(tx, false)
	if err != nil {
		return nil, err
	}
	return b.wrap(pub), nil
}

// Publish sends msgs to topic outside any transaction, stamping each with the
// trace of ctx.
func (b *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		injectTrace(ctx, msg)
	}
	if err := b.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe runs handler for every message on topic in a background goroutine.
// A message is acked when handler succeeds and nacked once the retry policy
// gives up; the final error is sent on the returned channel, which callers
// must drain. Close waits for in-flight handlers.
func (b *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	msgs, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(errCh)
		for msg := range msgs {
			if err := b.deliver(ctx, topic, msg, handler); err != nil {
				select {
				case errCh <- err:
				default:
					b.log.ErrorContext(ctx, "subscriber error dropped", "topic", topic, "error", err)
				}
			}
		}
	}()
	return errCh, nil
}

// deliver runs handler for one message with the publisher's trace restored and
// acks or nacks it.
func (b *EventBus) deliver(ctx context.Context, topic string, msg *message.Message, handler Handler) error {
	msgCtx := extractTrace(ctx, msg)
	msgCtx = logger.ContextWith(msgCtx, messageAttrs(topic, msg)...)

	err := b.retry.do(msgCtx, func(ctx context.Context) error {
		return handler(ctx, msg)
	}, func(attempt int, next time.Duration, err error) {
		b.log.WarnContext(msgCtx, "event handler failed, retrying",
			"attempt", attempt, "next_delay", next, "error", err)
	})
	if err != nil {
		msg.Nack()
		return fmt.Errorf("events: %s message %s: %w", topic, msg.UUID, err)
	}
	msg.Ack()
	return nil
}

// Ping checks the bus database connection.
func (b *EventBus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and forwarder, waits for in-flight handlers and
// releases the connection.
func (b *EventBus) Close() error {
	var errs []error
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close subscriber: %w", err))
	}
	if b.fwd != nil {
		if err := b.fwd.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close forwarder: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(closeTimeout):
		b.log.Error("events: in-flight handlers still running after close timeout", "timeout", closeTimeout)
	}

	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if err := b.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close db: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("events: %w", errors.Join(errs...))
	}
	return nil
}
