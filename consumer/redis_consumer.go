package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event represents a domain event from the stream.
type Event struct {
	// MessageID is the Redis Stream message ID.
	MessageID string
	EventID   string
	EventType string
	// Source is the service that produced the event.
	Source    string
	CreatedAt time.Time
	Payload   json.RawMessage
	Metadata  map[string]string
}

// EventHandler processes events from the stream. A nil error acknowledges
// the message; an error leaves it pending in the group.
type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

// Consumer consumes events from Redis Streams.
type Consumer struct {
	client   *redis.Client
	config   Config
	handler  EventHandler
	logger   *slog.Logger
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewConsumer creates a consumer on client. The client is owned by the
// caller and is not closed by Stop.
func NewConsumer(client *redis.Client, config Config, handler EventHandler, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		client:   client,
		config:   config,
		handler:  handler,
		logger:   logger,
		shutdown: make(chan struct{}),
	}
}

// Start creates the consumer group if needed and begins consuming in the
// background.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.config.Enabled {
		c.logger.Info("consumer disabled, not starting")
		return nil
	}

	if err := c.ensureConsumerGroup(ctx); err != nil {
		return err
	}

	c.logger.Info("starting consumer",
		"stream", c.config.StreamKey,
		"group", c.config.GroupName,
		"consumer", c.config.ConsumerName,
	)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.consumeLoop(ctx)
	}()
	return nil
}

// Stop signals the loop to exit and waits for the batch in progress.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() {
		close(c.shutdown)
	})
	c.wg.Wait()
}

func (c *Consumer) IsEnabled() bool {
	return c.config.Enabled
}

func (c *Consumer) ensureConsumerGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.config.StreamKey, c.config.GroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	var lastClaim time.Time
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer context cancelled, stopping")
			return
		case <-c.shutdown:
			c.logger.Info("consumer shutdown requested, stopping")
			return
		default:
		}

		if time.Since(lastClaim) >= c.config.ClaimInterval {
			lastClaim = time.Now()
			if err := c.claimPending(ctx); err != nil && ctx.Err() == nil {
				c.logger.Error("error reclaiming pending events", "error", err)
			}
		}

		if err := c.readAndProcess(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.logger.Error("error processing events", "error", err)
			select {
			case <-time.After(c.config.ErrorBackoff):
			case <-c.shutdown:
			case <-ctx.Done():
			}
		}
	}
}

func (c *Consumer) readAndProcess(ctx context.Context) error {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.config.GroupName,
		Consumer: c.config.ConsumerName,
		Streams:  []string{c.config.StreamKey, ">"},
		Count:    c.config.BatchSize,
		Block:    c.config.BlockTimeout,
	}).Result()

	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			c.process(ctx, message)
		}
	}

	return nil
}

// claimPending takes over messages left unacknowledged for ClaimMinIdle, by
// this or any other consumer in the group, and retries them. A message
// delivered more than MaxDeliveries times is acknowledged without another
// attempt so the pending list cannot grow without bound.
func (c *Consumer) claimPending(ctx context.Context) error {
	start := "0-0"
	for {
		messages, next, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   c.config.StreamKey,
			Group:    c.config.GroupName,
			Consumer: c.config.ConsumerName,
			MinIdle:  c.config.ClaimMinIdle,
			Start:    start,
			Count:    c.config.BatchSize,
		}).Result()
		if err != nil {
			return err
		}

		for _, message := range messages {
			deliveries, err := c.deliveryCount(ctx, message.ID)
			if err != nil {
				return err
			}
			if c.config.MaxDeliveries > 0 && deliveries > c.config.MaxDeliveries {
				c.logger.Warn("dropping event after repeated failures",
					"message_id", message.ID,
					"deliveries", deliveries,
				)
				c.ack(ctx, message.ID)
				continue
			}
			c.process(ctx, message)
		}

		if next == "0-0" || next == "" || len(messages) == 0 {
			return nil
		}
		start = next
	}
}

func (c *Consumer) deliveryCount(ctx context.Context, id string) (int64, error) {
	entries, err := c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: c.config.StreamKey,
		Group:  c.config.GroupName,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	return entries[0].RetryCount, nil
}

// process hands message to the handler and acknowledges it on success. A
// failed message stays pending for the reclaim pass.
func (c *Consumer) process(ctx context.Context, message redis.XMessage) {
	event := parseEvent(message)

	if err := c.handler.HandleEvent(ctx, event); err != nil {
		c.logger.Error("failed to process event",
			"message_id", message.ID,
			"event_type", event.EventType,
			"error", err,
		)
		return
	}

	c.ack(ctx, message.ID)
}

func (c *Consumer) ack(ctx context.Context, id string) {
	if err := c.client.XAck(ctx, c.config.StreamKey, c.config.GroupName, id).Err(); err != nil {
		c.logger.Error("failed to acknowledge message",
			"message_id", id,
			"error", err,
		)
	}
}

// parseEvent converts a Redis Stream message to an Event.
func parseEvent(message redis.XMessage) Event {
	event := Event{
		MessageID: message.ID,
		Metadata:  make(map[string]string),
	}

	if v, ok := message.Values["event_id"].(string); ok {
		event.EventID = v
	}
	if v, ok := message.Values["event_type"].(string); ok {
		event.EventType = v
	}
	if v, ok := message.Values["source"].(string); ok {
		event.Source = v
	}
	if v, ok := message.Values["created_at"].(string); ok {
		event.CreatedAt, _ = time.Parse(time.RFC3339, v)
	}
	if v, ok := message.Values["payload"].(string); ok {
		event.Payload = json.RawMessage(v)
	}
	if v, ok := message.Values["metadata"].(string); ok {
		_ = json.Unmarshal([]byte(v), &event.Metadata)
	}

	return event
}
