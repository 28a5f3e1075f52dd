package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"article-search/domain"
	"article-search/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHistoryUsecase(repo *mocks.MockSearchHistoryRepository, now time.Time) *SearchHistoryUsecase {
	uc := NewSearchHistoryUsecase(repo)
	uc.now = func() time.Time { return now }
	return uc
}

func historiesOf(n int) []*domain.SearchHistory {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*domain.SearchHistory, n)
	for i := range out {
		out[i] = &domain.SearchHistory{
			ID:        uuid.New(),
			UserID:    7,
			Keyword:   "kw",
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func expectUserLock(repo *mocks.MockSearchHistoryRepository, userID int64) {
	repo.EXPECT().WithUserLock(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestSearchHistoryUsecase_Insert(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	existingID := uuid.New()
	full := historiesOf(domain.MaxSearchHistoryPerUser)

	tests := []struct {
		name      string
		keyword   string
		mockSetup func(repo *mocks.MockSearchHistoryRepository)
		wantErr   error
	}{
		{
			name:    "existing keyword is bumped",
			keyword: "golang",
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {
				expectUserLock(repo, 7)
				repo.EXPECT().FindByUserAndKeyword(gomock.Any(), int64(7), "golang").
					Return(&domain.SearchHistory{ID: existingID, UserID: 7, Keyword: "golang"}, nil)
				repo.EXPECT().Touch(gomock.Any(), existingID, now).Return(nil)
			},
		},
		{
			name:    "new keyword under the cap is created",
			keyword: "golang",
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {
				expectUserLock(repo, 7)
				repo.EXPECT().FindByUserAndKeyword(gomock.Any(), int64(7), "golang").Return(nil, nil)
				repo.EXPECT().ListByUser(gomock.Any(), int64(7)).Return(historiesOf(3), nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, h *domain.SearchHistory) error {
						assert.NotEqual(t, uuid.Nil, h.ID)
						assert.Equal(t, int64(7), h.UserID)
						assert.Equal(t, "golang", h.Keyword)
						assert.Equal(t, now, h.CreatedAt)
						return nil
					})
			},
		},
		{
			name:    "new keyword at the cap replaces the oldest",
			keyword: "golang",
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {
				expectUserLock(repo, 7)
				repo.EXPECT().FindByUserAndKeyword(gomock.Any(), int64(7), "golang").Return(nil, nil)
				repo.EXPECT().ListByUser(gomock.Any(), int64(7)).Return(full, nil)
				repo.EXPECT().Replace(gomock.Any(), full[len(full)-1].ID, "golang", now).Return(nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name:      "blank keyword",
			keyword:   "  ",
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {},
			wantErr:   domain.ErrInvalidParameter,
		},
		{
			name:    "lock failure",
			keyword: "golang",
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {
				repo.EXPECT().WithUserLock(gomock.Any(), int64(7), gomock.Any()).
					Return(&domain.RepositoryError{Op: "WithUserLock", Err: "db down"})
				repo.EXPECT().FindByUserAndKeyword(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: &domain.RepositoryError{},
		},
		{
			name:    "lookup failure",
			keyword: "golang",
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {
				expectUserLock(repo, 7)
				repo.EXPECT().FindByUserAndKeyword(gomock.Any(), int64(7), "golang").
					Return(nil, &domain.RepositoryError{Op: "FindByUserAndKeyword", Err: "db down"})
			},
			wantErr: &domain.RepositoryError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockSearchHistoryRepository(ctrl)
			tt.mockSetup(repo)

			err := newHistoryUsecase(repo, now).Insert(context.Background(), tt.keyword, 7)

			switch want := tt.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *domain.RepositoryError:
				assert.ErrorAs(t, err, &want)
			default:
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestSearchHistoryUsecase_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockSearchHistoryRepository(ctrl)
	uc := NewSearchHistoryUsecase(repo)

	t.Run("anonymous", func(t *testing.T) {
		_, err := uc.Load(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrNeedLogin)
	})

	t.Run("returns newest first as stored", func(t *testing.T) {
		stored := historiesOf(2)
		repo.EXPECT().ListByUser(gomock.Any(), int64(7)).Return(stored, nil)

		got, err := uc.Load(context.Background(), &domain.CurrentUser{ID: 7})
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		repo.EXPECT().ListByUser(gomock.Any(), int64(7)).Return(nil, nil)

		got, err := uc.Load(context.Background(), &domain.CurrentUser{ID: 7})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("repository failure", func(t *testing.T) {
		repoErr := errors.New("db down")
		repo.EXPECT().ListByUser(gomock.Any(), int64(7)).Return(nil, repoErr)

		_, err := uc.Load(context.Background(), &domain.CurrentUser{ID: 7})
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestSearchHistoryUsecase_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		user      *domain.CurrentUser
		id        uuid.UUID
		mockSetup func(repo *mocks.MockSearchHistoryRepository)
		wantErr   error
	}{
		{
			name: "deletes own record",
			user: &domain.CurrentUser{ID: 7},
			id:   id,
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {
				repo.EXPECT().Delete(gomock.Any(), int64(7), id).Return(true, nil)
			},
		},
		{
			name: "record of another user",
			user: &domain.CurrentUser{ID: 8},
			id:   id,
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {
				repo.EXPECT().Delete(gomock.Any(), int64(8), id).Return(false, nil)
			},
			wantErr: domain.ErrInvalidParameter,
		},
		{
			name:      "anonymous",
			user:      nil,
			id:        id,
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {},
			wantErr:   domain.ErrNeedLogin,
		},
		{
			name:      "nil id",
			user:      &domain.CurrentUser{ID: 7},
			id:        uuid.Nil,
			mockSetup: func(repo *mocks.MockSearchHistoryRepository) {},
			wantErr:   domain.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockSearchHistoryRepository(ctrl)
			tt.mockSetup(repo)

			err := NewSearchHistoryUsecase(repo).Delete(context.Background(), tt.user, tt.id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
