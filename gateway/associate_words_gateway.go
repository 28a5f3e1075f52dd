package gateway

import (
	"context"

	"article-search/domain"
	"article-search/driver"
)

type AssociateWordsDriver interface {
	SearchAssociateWords(ctx context.Context, keyword string, limit int) ([]*driver.AssociateWordRow, error)
}

type AssociateWordsGateway struct {
	driver AssociateWordsDriver
}

func NewAssociateWordsGateway(driver AssociateWordsDriver) *AssociateWordsGateway {
	return &AssociateWordsGateway{driver: driver}
}

func (g *AssociateWordsGateway) SearchAssociateWords(ctx context.Context, keyword string, limit int) ([]*domain.AssociateWord, error) {
	rows, err := g.driver.SearchAssociateWords(ctx, keyword, limit)
	if err != nil {
		return nil, &domain.RepositoryError{Op: "SearchAssociateWords", Err: err.Error()}
	}

	words := make([]*domain.AssociateWord, len(rows))
	for i, row := range rows {
		words[i] = &domain.AssociateWord{
			ID:             row.ID,
			AssociateWords: row.AssociateWords,
			CreatedAt:      row.CreatedAt,
		}
	}
	return words, nil
}
