package usecase

import (
	"context"
	"strings"
	"time"

	"article-search/domain"
	"article-search/port"

	"github.com/google/uuid"
)

type SearchHistoryUsecase struct {
	repo port.SearchHistoryRepository
	now  func() time.Time
}

func NewSearchHistoryUsecase(repo port.SearchHistoryRepository) *SearchHistoryUsecase {
	return &SearchHistoryUsecase{
		repo: repo,
		now:  time.Now,
	}
}

// Insert records keyword for the user. A repeated keyword is moved to the top;
// once the user holds MaxSearchHistoryPerUser records the oldest is reused.
// The whole read-modify-write runs under the user's lock so concurrent
// inserts cannot push the user past the cap.
func (u *SearchHistoryUsecase) Insert(ctx context.Context, keyword string, userID int64) error {
	if strings.TrimSpace(keyword) == "" {
		return domain.ErrInvalidParameter
	}

	return u.repo.WithUserLock(ctx, userID, func(ctx context.Context) error {
		return u.insertLocked(ctx, keyword, userID)
	})
}

func (u *SearchHistoryUsecase) insertLocked(ctx context.Context, keyword string, userID int64) error {
	now := u.now()

	existing, err := u.repo.FindByUserAndKeyword(ctx, userID, keyword)
	if err != nil {
		return err
	}
	if existing != nil {
		return u.repo.Touch(ctx, existing.ID, now)
	}

	histories, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	if len(histories) < domain.MaxSearchHistoryPerUser {
		return u.repo.Create(ctx, &domain.SearchHistory{
			ID:        uuid.New(),
			UserID:    userID,
			Keyword:   keyword,
			CreatedAt: now,
		})
	}

	oldest := histories[len(histories)-1]
	return u.repo.Replace(ctx, oldest.ID, keyword, now)
}

func (u *SearchHistoryUsecase) Load(ctx context.Context, user *domain.CurrentUser) ([]*domain.SearchHistory, error) {
	if user == nil {
		return nil, domain.ErrNeedLogin
	}

	histories, err := u.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if histories == nil {
		histories = []*domain.SearchHistory{}
	}
	return histories, nil
}

func (u *SearchHistoryUsecase) Delete(ctx context.Context, user *domain.CurrentUser, id uuid.UUID) error {
	if user == nil {
		return domain.ErrNeedLogin
	}
	if id == uuid.Nil {
		return domain.ErrInvalidParameter
	}

	deleted, err := u.repo.Delete(ctx, user.ID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrInvalidParameter
	}
	return nil
}
