package driver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStreamDriver struct {
	client    *redis.Client
	streamKey string
	maxLen    int64
}

func NewRedisStreamDriver(client *redis.Client, streamKey string, maxLen int64) *RedisStreamDriver {
	return &RedisStreamDriver{
		client:    client,
		streamKey: streamKey,
		maxLen:    maxLen,
	}
}

// Publish appends the event to the stream and returns its message ID.
func (d *RedisStreamDriver) Publish(ctx context.Context, event StreamEvent) (string, error) {
	values := map[string]any{
		"event_id":   event.EventID,
		"event_type": event.EventType,
		"source":     event.Source,
		"created_at": event.CreatedAt.UTC().Format(time.RFC3339),
		"payload":    string(event.Payload),
	}
	if len(event.Metadata) > 0 {
		metadata, err := json.Marshal(event.Metadata)
		if err != nil {
			return "", &DriverError{Op: "Publish", Err: err.Error()}
		}
		values["metadata"] = string(metadata)
	}

	args := &redis.XAddArgs{
		Stream: d.streamKey,
		Values: values,
	}
	if d.maxLen > 0 {
		args.MaxLen = d.maxLen
		args.Approx = true
	}

	id, err := d.client.XAdd(ctx, args).Result()
	if err != nil {
		return "", &DriverError{Op: "Publish", Err: err.Error()}
	}
	return id, nil
}
