package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"article-search/domain"
	"article-search/logger"
	"article-search/port"
)

// HistoryEventHandler stores SearchPerformed events in the search history.
type HistoryEventHandler struct {
	sink   port.SearchHistorySink
	logger *slog.Logger
}

func NewHistoryEventHandler(sink port.SearchHistorySink, logger *slog.Logger) *HistoryEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryEventHandler{
		sink:   sink,
		logger: logger,
	}
}

func (h *HistoryEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case domain.EventTypeSearchPerformed:
		return h.handleSearchPerformed(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *HistoryEventHandler) handleSearchPerformed(ctx context.Context, event Event) error {
	var payload domain.SearchPerformedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal SearchPerformed payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	ctx = logger.WithEventID(ctx, event.EventID)
	ctx = logger.WithUserID(ctx, payload.UserID)

	if err := h.sink.Insert(ctx, payload.SearchWords, payload.UserID); err != nil {
		// Retrying cannot fix a blank keyword; acknowledge it.
		if errors.Is(err, domain.ErrInvalidParameter) {
			h.logger.WarnContext(ctx, "dropping SearchPerformed event with blank keyword",
				"event_id", event.EventID,
			)
			return nil
		}
		return err
	}

	return nil
}
