package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"article-search/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type insertCall struct {
	searchWords string
	userID      int64
}

// mockSink implements port.SearchHistorySink for testing.
type mockSink struct {
	mu    sync.Mutex
	calls []insertCall
	err   error
}

func (m *mockSink) Insert(ctx context.Context, searchWords string, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, insertCall{searchWords: searchWords, userID: userID})
	return m.err
}

func (m *mockSink) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockSink) Calls() []insertCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]insertCall(nil), m.calls...)
}

func searchPerformedEvent(t *testing.T, words string, userID int64) Event {
	t.Helper()
	payload, err := json.Marshal(domain.SearchPerformedPayload{SearchWords: words, UserID: userID})
	require.NoError(t, err)
	return Event{
		EventID:   "evt-1",
		EventType: domain.EventTypeSearchPerformed,
		Payload:   payload,
	}
}

func TestHistoryEventHandler_SearchPerformed(t *testing.T) {
	sink := &mockSink{}
	h := NewHistoryEventHandler(sink, nil)

	err := h.HandleEvent(context.Background(), searchPerformedEvent(t, "golang", 7))
	require.NoError(t, err)

	assert.Equal(t, []insertCall{{searchWords: "golang", userID: 7}}, sink.Calls())
}

func TestHistoryEventHandler_UnknownEventType(t *testing.T) {
	sink := &mockSink{}
	h := NewHistoryEventHandler(sink, nil)

	err := h.HandleEvent(context.Background(), Event{EventID: "evt-2", EventType: "ArticleCreated"})
	assert.NoError(t, err)
	assert.Empty(t, sink.Calls())
}

func TestHistoryEventHandler_InvalidPayload(t *testing.T) {
	sink := &mockSink{}
	h := NewHistoryEventHandler(sink, nil)

	err := h.HandleEvent(context.Background(), Event{
		EventID:   "evt-3",
		EventType: domain.EventTypeSearchPerformed,
		Payload:   json.RawMessage(`{not json`),
	})
	assert.Error(t, err)
	assert.Empty(t, sink.Calls())
}

func TestHistoryEventHandler_SinkErrors(t *testing.T) {
	tests := []struct {
		name    string
		sinkErr error
		wantErr bool
	}{
		{name: "blank keyword is acknowledged", sinkErr: domain.ErrInvalidParameter, wantErr: false},
		{name: "wrapped blank keyword is acknowledged", sinkErr: fmt.Errorf("insert: %w", domain.ErrInvalidParameter), wantErr: false},
		{name: "repository failure stays pending", sinkErr: &domain.RepositoryError{Op: "Create", Err: "db down"}, wantErr: true},
		{name: "other failure stays pending", sinkErr: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistoryEventHandler(&mockSink{err: tt.sinkErr}, nil)

			err := h.HandleEvent(context.Background(), searchPerformedEvent(t, "golang", 7))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
