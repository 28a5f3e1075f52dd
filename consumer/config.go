// Package consumer reads search events from a Redis Stream consumer group.
package consumer

import "time"

// Config holds consumer configuration.
type Config struct {
	// GroupName is the consumer group name.
	GroupName string
	// ConsumerName is this consumer's name within the group.
	ConsumerName string
	// StreamKey is the Redis Stream key to consume from.
	StreamKey string
	// BatchSize is the number of messages to read at once.
	BatchSize int64
	// BlockTimeout is how long to block waiting for messages.
	BlockTimeout time.Duration
	// ErrorBackoff is the pause after a failed read.
	ErrorBackoff time.Duration
	// ClaimMinIdle is how long a message must sit unacknowledged before the
	// reclaim pass takes it over and retries it.
	ClaimMinIdle time.Duration
	// ClaimInterval is the pause between reclaim passes.
	ClaimInterval time.Duration
	// MaxDeliveries is how many times a message is handed to the handler
	// before it is acknowledged and dropped.
	MaxDeliveries int64
	// Enabled determines if the consumer is active.
	Enabled bool
}

// DefaultConfig returns a default consumer configuration.
func DefaultConfig() Config {
	return Config{
		GroupName:     "article-search-history",
		ConsumerName:  "article-search-1",
		StreamKey:     "article-search:events:search",
		BatchSize:     10,
		BlockTimeout:  5 * time.Second,
		ErrorBackoff:  time.Second,
		ClaimMinIdle:  30 * time.Second,
		ClaimInterval: 30 * time.Second,
		MaxDeliveries: 5,
		Enabled:       false,
	}
}
