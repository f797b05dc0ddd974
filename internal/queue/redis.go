package queue

import (
	"context"
	"errors"

	redis "github.com/redis/go-redis/v9"
)

var ErrQueueClosed = errors.New("queue closed")

// streamMaxLen caps the stream, consumers are expected to keep up.
const streamMaxLen = 100_000

var _ EventQueue = (*RedisStreamQueue)(nil)

// RedisStreamQueue appends events to a redis stream.
type RedisStreamQueue struct {
	client *redis.Client
	stream string
}

func NewRedisStreamQueue(client *redis.Client, stream string) *RedisStreamQueue {
	return &RedisStreamQueue{client: client, stream: stream}
}

func (r *RedisStreamQueue) Publish(ctx context.Context, event *Event) error {
	payload, err := event.Marshal()
	if err != nil {
		return err
	}

	return r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"type":    event.Type,
			"item_id": event.ItemID,
			"payload": payload,
		},
	}).Err()
}

// Read returns up to count events stored after the given stream id, use "0"
// to read from the start. The id of the last returned entry is returned too.
func (r *RedisStreamQueue) Read(ctx context.Context, after string, count int64) ([]*Event, string, error) {
	start := "-"
	if after != "" && after != "0" {
		start = "(" + after
	}

	res, err := r.client.XRangeN(ctx, r.stream, start, "+", count).Result()
	if err != nil {
		return nil, after, err
	}

	last := after
	events := make([]*Event, 0, len(res))
	for _, msg := range res {
		last = msg.ID
		raw, ok := msg.Values["payload"].(string)
		if !ok {
			continue
		}
		event, err := UnmarshalEvent([]byte(raw))
		if err != nil {
			return nil, last, err
		}
		events = append(events, event)
	}

	return events, last, nil
}

func (r *RedisStreamQueue) Close() error {
	return r.client.Close()
}
