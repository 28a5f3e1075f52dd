package port

import (
	"context"

	"article-search/domain"
)

//go:generate mockgen -source=search_engine.go -destination=../mocks/mock_search_engine.go -package=mocks

type SearchEngine interface {
	SearchArticles(ctx context.Context, query domain.ArticleQuery) ([]domain.ArticleHit, error)
	EnsureIndex(ctx context.Context) error
	Ping(ctx context.Context) error
}
