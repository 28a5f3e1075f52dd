package usecase

import (
	"context"
	"testing"

	"article-search/domain"
	"article-search/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAssociateWordsUsecase_Search(t *testing.T) {
	tests := []struct {
		name      string
		pageSize  int
		wantLimit int
	}{
		{name: "default when unset", pageSize: 0, wantLimit: 10},
		{name: "default when negative", pageSize: -3, wantLimit: 10},
		{name: "as requested", pageSize: 5, wantLimit: 5},
		{name: "clamped", pageSize: 100, wantLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockAssociateWordsRepository(ctrl)
			repo.EXPECT().SearchAssociateWords(gomock.Any(), "go", tt.wantLimit).
				Return([]*domain.AssociateWord{{AssociateWords: "golang"}}, nil)

			words, err := NewAssociateWordsUsecase(repo).Search(context.Background(), &domain.AssociateParams{SearchWords: "go", PageSize: tt.pageSize})
			require.NoError(t, err)
			require.Len(t, words, 1)
			assert.Equal(t, "golang", words[0].AssociateWords)
		})
	}
}

func TestAssociateWordsUsecase_Search_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAssociateWordsRepository(ctrl)
	repo.EXPECT().SearchAssociateWords(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	uc := NewAssociateWordsUsecase(repo)

	_, err := uc.Search(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = uc.Search(context.Background(), &domain.AssociateParams{SearchWords: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestAssociateWordsUsecase_Search_NoMatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAssociateWordsRepository(ctrl)
	repo.EXPECT().SearchAssociateWords(gomock.Any(), "zzz", 10).Return(nil, nil)

	words, err := NewAssociateWordsUsecase(repo).Search(context.Background(), &domain.AssociateParams{SearchWords: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
}
