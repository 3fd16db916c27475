package events

import (
	"context"
	"log/slog"
	"sync"
)

// Bus is an in-process pub/sub hub. Delivery never blocks the publisher:
// a subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	byType map[string][]chan Event
	all    []chan Event
	log    *EventLog // may be nil
	logger *slog.Logger
	closed bool
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		byType: make(map[string][]chan Event),
		log:    log,
		logger: logger,
	}
}

// Publish persists e (when a log is attached) and fans it out.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	typed := append([]chan Event(nil), b.byType[e.EventType()]...)
	all := append([]chan Event(nil), b.all...)
	b.mu.RUnlock()

	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	b.deliver(typed, e)
	b.deliver(all, e)
	return nil
}

func (b *Bus) deliver(subs []chan Event, e Event) {
	defer func() {
		// A channel closed by Close between snapshot and send.
		if r := recover(); r != nil {
			b.logger.Debug("dropped event for closed subscriber", "type", e.EventType())
		}
	}()
	for _, ch := range subs {
		select {
		case ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
}

// Subscribe returns a channel for events of a specific type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.byType[eventType] = append(b.byType[eventType], ch)
	return ch
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.all = append(b.all, ch)
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.byType {
		for i, sub := range subs {
			if sub == ch {
				b.byType[eventType] = append(subs[:i], subs[i+1:]...)
				close(sub)
				return
			}
		}
	}

	for i, sub := range b.all {
		if sub == ch {
			b.all = append(b.all[:i], b.all[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, subs := range b.byType {
		for _, ch := range subs {
			close(ch)
		}
	}
	b.byType = nil

	for _, ch := range b.all {
		close(ch)
	}
	b.all = nil

	return nil
}
