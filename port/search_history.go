package port

import (
	"context"
	"time"

	"article-search/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=search_history.go -destination=../mocks/mock_search_history.go -package=mocks

// SearchRecorder accepts a search event and returns immediately. It reports
// nothing back: the write may complete after the response is sent, may be
// reordered with other writes, and may fail silently.
type SearchRecorder interface {
	Record(ctx context.Context, searchWords string, userID int64)
}

// SearchHistorySink stores one search event.
type SearchHistorySink interface {
	Insert(ctx context.Context, searchWords string, userID int64) error
}

type SearchHistoryRepository interface {
	// WithUserLock runs fn with the user's history locked against other
	// writers. Repository calls made with the ctx passed to fn take part in
	// the same unit of work.
	WithUserLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error
	// FindByUserAndKeyword returns nil when the user never searched keyword.
	FindByUserAndKeyword(ctx context.Context, userID int64, keyword string) (*domain.SearchHistory, error)
	// ListByUser returns the user's history, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.SearchHistory, error)
	Create(ctx context.Context, history *domain.SearchHistory) error
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	Replace(ctx context.Context, id uuid.UUID, keyword string, at time.Time) error
	// Delete reports whether a record owned by userID was removed.
	Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
}

type AssociateWordsRepository interface {
	SearchAssociateWords(ctx context.Context, keyword string, limit int) ([]*domain.AssociateWord, error)
}
