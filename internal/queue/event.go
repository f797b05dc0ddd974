package queue

import (
	"context"
	"encoding/json"
	"time"
)

const (
	EventContentCreated     = "content.created"
	EventContentUpdated     = "content.updated"
	EventContentPublished   = "content.published"
	EventContentUnpublished = "content.unpublished"
	EventContentDeleted     = "content.deleted"
)

// Event describes one committed change to a content item.
type Event struct {
	Type       string    `json:"type"`
	ItemID     string    `json:"item_id"`
	Collection string    `json:"collection"`
	Version    int64     `json:"version"`
	Status     string    `json:"status,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalEvent(data []byte) (*Event, error) {
	event := &Event{}
	if err := json.Unmarshal(data, event); err != nil {
		return nil, err
	}
	return event, nil
}

// EventQueue carries content change events to other processes. Publishing
// happens after the change is committed, a failed publish never rolls it back.
type EventQueue interface {
	// Publish appends an event to the queue.
	Publish(ctx context.Context, event *Event) error
	// Close flushes pending events and releases the connection.
	Close() error
}

var _ EventQueue = (*NopQueue)(nil)

type NopQueue struct{}

func NewNopQueue() *NopQueue {
	return &NopQueue{}
}

func (n *NopQueue) Publish(ctx context.Context, event *Event) error {
	return nil
}

func (n *NopQueue) Close() error {
	return nil
}
