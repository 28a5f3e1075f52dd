package gateway

import (
	"context"

	"article-search/domain"
	"article-search/driver"
)

type SearchDriver interface {
	SearchArticles(ctx context.Context, query driver.ArticleSearchQuery) ([]driver.ArticleHitDriver, error)
	EnsureIndex(ctx context.Context) error
	Ping(ctx context.Context) error
}

type SearchEngineGateway struct {
	driver SearchDriver
}

func NewSearchEngineGateway(driver SearchDriver) *SearchEngineGateway {
	return &SearchEngineGateway{
		driver: driver,
	}
}

func (g *SearchEngineGateway) SearchArticles(ctx context.Context, query domain.ArticleQuery) ([]domain.ArticleHit, error) {
	driverHits, err := g.driver.SearchArticles(ctx, toDriverQuery(query))
	if err != nil {
		return nil, &domain.SearchEngineError{
			Op:  "SearchArticles",
			Err: err.Error(),
		}
	}

	hits := make([]domain.ArticleHit, len(driverHits))
	for i, h := range driverHits {
		hits[i] = domain.ArticleHit{
			ID:         h.ID,
			Source:     h.Source,
			Highlights: h.Highlights,
		}
	}

	return hits, nil
}

func (g *SearchEngineGateway) EnsureIndex(ctx context.Context) error {
	if err := g.driver.EnsureIndex(ctx); err != nil {
		return &domain.SearchEngineError{
			Op:  "EnsureIndex",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *SearchEngineGateway) Ping(ctx context.Context) error {
	if err := g.driver.Ping(ctx); err != nil {
		return &domain.SearchEngineError{
			Op:  "Ping",
			Err: err.Error(),
		}
	}
	return nil
}

// toDriverQuery flattens the domain query. The publish time bound travels as
// epoch milliseconds, the unit the article index stores.
func toDriverQuery(q domain.ArticleQuery) driver.ArticleSearchQuery {
	out := driver.ArticleSearchQuery{
		Keywords:         q.Keywords,
		Fields:           q.Fields,
		Operator:         string(q.Operator),
		From:             q.From,
		Size:             q.Size,
		SortField:        q.SortField,
		SortDescending:   q.SortDescending,
		HighlightField:   q.Highlight.Field,
		HighlightPreTag:  q.Highlight.PreTag,
		HighlightPostTag: q.Highlight.PostTag,
	}

	if q.RangeField != "" {
		out.RangeField = q.RangeField
		out.RangeLessThanMs = q.PublishedBefore.UnixMilli()
		out.HasRange = true
	}

	return out
}
