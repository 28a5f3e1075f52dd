package usecase

import (
	"context"
	"strings"

	"article-search/domain"
	"article-search/port"
)

const (
	defaultAssociatePageSize = 10
	maxAssociatePageSize     = 20
)

type AssociateWordsUsecase struct {
	repo port.AssociateWordsRepository
}

func NewAssociateWordsUsecase(repo port.AssociateWordsRepository) *AssociateWordsUsecase {
	return &AssociateWordsUsecase{repo: repo}
}

func (u *AssociateWordsUsecase) Search(ctx context.Context, params *domain.AssociateParams) ([]*domain.AssociateWord, error) {
	if params == nil || strings.TrimSpace(params.SearchWords) == "" {
		return nil, domain.ErrInvalidParameter
	}

	words, err := u.repo.SearchAssociateWords(ctx, params.SearchWords, associatePageSize(params.PageSize))
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []*domain.AssociateWord{}
	}
	return words, nil
}

func associatePageSize(size int) int {
	switch {
	case size <= 0:
		return defaultAssociatePageSize
	case size > maxAssociatePageSize:
		return maxAssociatePageSize
	default:
		return size
	}
}
