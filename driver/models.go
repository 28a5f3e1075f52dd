package driver

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ArticleSearchQuery is the article query as the engine drivers consume it.
type ArticleSearchQuery struct {
	Keywords string
	Fields   []string
	// Operator is "OR" or "AND".
	Operator string

	RangeField      string
	RangeLessThanMs int64
	HasRange        bool

	From           int
	Size           int
	SortField      string
	SortDescending bool

	HighlightField   string
	HighlightPreTag  string
	HighlightPostTag string
}

// ArticleHitDriver is a single hit returned by an engine driver.
type ArticleHitDriver struct {
	ID         string
	Source     json.RawMessage
	Highlights map[string][]string
}

// SearchHistoryRow is a row of user_search_history.
type SearchHistoryRow struct {
	ID        uuid.UUID
	UserID    int64
	Keyword   string
	CreatedAt time.Time
}

// AssociateWordRow is a row of associate_words.
type AssociateWordRow struct {
	ID             uuid.UUID
	AssociateWords string
	CreatedAt      time.Time
}

// StreamEvent is a message appended to a Redis Stream.
type StreamEvent struct {
	EventID   string
	EventType string
	Source    string
	CreatedAt time.Time
	Payload   []byte
	Metadata  map[string]string
}

// DriverError represents an error from the driver layer
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
