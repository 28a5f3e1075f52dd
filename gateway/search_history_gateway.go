package gateway

import (
	"context"
	"errors"
	"time"

	"article-search/domain"
	"article-search/driver"

	"github.com/google/uuid"
)

type SearchHistoryDriver interface {
	WithUserLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error
	FindByUserAndKeyword(ctx context.Context, userID int64, keyword string) (*driver.SearchHistoryRow, error)
	ListByUser(ctx context.Context, userID int64) ([]*driver.SearchHistoryRow, error)
	Create(ctx context.Context, row *driver.SearchHistoryRow) error
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	Replace(ctx context.Context, id uuid.UUID, keyword string, at time.Time) error
	Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
}

type SearchHistoryGateway struct {
	driver SearchHistoryDriver
}

func NewSearchHistoryGateway(driver SearchHistoryDriver) *SearchHistoryGateway {
	return &SearchHistoryGateway{driver: driver}
}

// WithUserLock returns fn's own error unchanged; lock and commit failures
// become RepositoryErrors.
func (g *SearchHistoryGateway) WithUserLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error {
	err := g.driver.WithUserLock(ctx, userID, fn)
	var driverErr *driver.DriverError
	if errors.As(err, &driverErr) {
		return &domain.RepositoryError{Op: "WithUserLock", Err: driverErr.Error()}
	}
	return err
}

func (g *SearchHistoryGateway) FindByUserAndKeyword(ctx context.Context, userID int64, keyword string) (*domain.SearchHistory, error) {
	row, err := g.driver.FindByUserAndKeyword(ctx, userID, keyword)
	if err != nil {
		return nil, &domain.RepositoryError{Op: "FindByUserAndKeyword", Err: err.Error()}
	}
	if row == nil {
		return nil, nil
	}
	return toDomainHistory(row), nil
}

func (g *SearchHistoryGateway) ListByUser(ctx context.Context, userID int64) ([]*domain.SearchHistory, error) {
	rows, err := g.driver.ListByUser(ctx, userID)
	if err != nil {
		return nil, &domain.RepositoryError{Op: "ListByUser", Err: err.Error()}
	}

	histories := make([]*domain.SearchHistory, len(rows))
	for i, row := range rows {
		histories[i] = toDomainHistory(row)
	}
	return histories, nil
}

func (g *SearchHistoryGateway) Create(ctx context.Context, history *domain.SearchHistory) error {
	row := &driver.SearchHistoryRow{
		ID:        history.ID,
		UserID:    history.UserID,
		Keyword:   history.Keyword,
		CreatedAt: history.CreatedAt,
	}
	if err := g.driver.Create(ctx, row); err != nil {
		return &domain.RepositoryError{Op: "Create", Err: err.Error()}
	}
	return nil
}

func (g *SearchHistoryGateway) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := g.driver.Touch(ctx, id, at); err != nil {
		return &domain.RepositoryError{Op: "Touch", Err: err.Error()}
	}
	return nil
}

func (g *SearchHistoryGateway) Replace(ctx context.Context, id uuid.UUID, keyword string, at time.Time) error {
	if err := g.driver.Replace(ctx, id, keyword, at); err != nil {
		return &domain.RepositoryError{Op: "Replace", Err: err.Error()}
	}
	return nil
}

func (g *SearchHistoryGateway) Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	deleted, err := g.driver.Delete(ctx, userID, id)
	if err != nil {
		return false, &domain.RepositoryError{Op: "Delete", Err: err.Error()}
	}
	return deleted, nil
}

func toDomainHistory(row *driver.SearchHistoryRow) *domain.SearchHistory {
	return &domain.SearchHistory{
		ID:        row.ID,
		UserID:    row.UserID,
		Keyword:   row.Keyword,
		CreatedAt: row.CreatedAt,
	}
}
