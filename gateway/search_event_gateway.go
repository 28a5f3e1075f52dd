package gateway

import (
	"context"
	"encoding/json"
	"time"

	"article-search/domain"
	"article-search/driver"

	"github.com/google/uuid"
)

type EventPublisher interface {
	Publish(ctx context.Context, event driver.StreamEvent) (string, error)
}

// SearchEventGateway turns a recorded search into a SearchPerformed stream
// event. It satisfies port.SearchHistorySink so the recorder can use it in
// place of a direct database write.
type SearchEventGateway struct {
	publisher EventPublisher
	now       func() time.Time
}

func NewSearchEventGateway(publisher EventPublisher) *SearchEventGateway {
	return &SearchEventGateway{
		publisher: publisher,
		now:       time.Now,
	}
}

func (g *SearchEventGateway) Insert(ctx context.Context, searchWords string, userID int64) error {
	payload, err := json.Marshal(domain.SearchPerformedPayload{
		SearchWords: searchWords,
		UserID:      userID,
	})
	if err != nil {
		return &domain.RepositoryError{Op: "PublishSearchPerformed", Err: err.Error()}
	}

	event := driver.StreamEvent{
		EventID:   uuid.NewString(),
		EventType: domain.EventTypeSearchPerformed,
		Source:    domain.EventSource,
		CreatedAt: g.now(),
		Payload:   payload,
	}

	if _, err := g.publisher.Publish(ctx, event); err != nil {
		return &domain.RepositoryError{Op: "PublishSearchPerformed", Err: err.Error()}
	}
	return nil
}
