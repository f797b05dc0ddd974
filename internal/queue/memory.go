package queue

import (
	"context"
	"sync"
)

var _ EventQueue = (*MemoryQueue)(nil)

// MemoryQueue keeps published events in process. Used by tests and single
// node setups that only want to observe changes.
type MemoryQueue struct {
	mu     sync.Mutex
	events []*Event
	subs   []chan *Event
	closed bool
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (m *MemoryQueue) Publish(ctx context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrQueueClosed
	}

	m.events = append(m.events, event)
	for _, sub := range m.subs {
		select {
		case sub <- event:
		default:
			// slow subscribers lose events, the log keeps them
		}
	}

	return nil
}

// Subscribe returns a channel that receives events published from now on.
func (m *MemoryQueue) Subscribe(buffer int) <-chan *Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *Event, buffer)
	m.subs = append(m.subs, ch)
	return ch
}

// Events returns every event published so far.
func (m *MemoryQueue) Events() []*Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Event, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the type of every event published so far, in order.
func (m *MemoryQueue) Types() []string {
	events := m.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func (m *MemoryQueue) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	for _, sub := range m.subs {
		close(sub)
	}
	return nil
}
