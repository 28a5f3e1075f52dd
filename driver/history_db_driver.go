package driver

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SearchHistoryDriver struct {
	pool PgxIface
}

func NewSearchHistoryDriver(pool PgxIface) *SearchHistoryDriver {
	return &SearchHistoryDriver{pool: pool}
}

// WithUserLock runs fn in a transaction holding an advisory lock on userID.
// Every statement issued through ctx inside fn joins that transaction, so
// concurrent writers for one user are serialized until commit.
func (d *SearchHistoryDriver) WithUserLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error {
	return runInTx(ctx, d.pool, "WithUserLock", func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
			return &DriverError{Op: "WithUserLock", Err: "failed to lock user history: " + err.Error()}
		}
		return fn(ctx)
	})
}

func (d *SearchHistoryDriver) FindByUserAndKeyword(ctx context.Context, userID int64, keyword string) (*SearchHistoryRow, error) {
	query := `
		SELECT id, user_id, keyword, created_at
		FROM user_search_history
		WHERE user_id = $1 AND keyword = $2
	`

	var row SearchHistoryRow
	err := conn(ctx, d.pool).QueryRow(ctx, query, userID, keyword).Scan(&row.ID, &row.UserID, &row.Keyword, &row.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &DriverError{Op: "FindByUserAndKeyword", Err: err.Error()}
	}
	return &row, nil
}

func (d *SearchHistoryDriver) ListByUser(ctx context.Context, userID int64) ([]*SearchHistoryRow, error) {
	query := `
		SELECT id, user_id, keyword, created_at
		FROM user_search_history
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := conn(ctx, d.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, &DriverError{Op: "ListByUser", Err: err.Error()}
	}
	defer rows.Close()

	var result []*SearchHistoryRow
	for rows.Next() {
		var row SearchHistoryRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.Keyword, &row.CreatedAt); err != nil {
			return nil, &DriverError{Op: "ListByUser", Err: err.Error()}
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DriverError{Op: "ListByUser", Err: err.Error()}
	}

	return result, nil
}

func (d *SearchHistoryDriver) Create(ctx context.Context, row *SearchHistoryRow) error {
	query := `
		INSERT INTO user_search_history (id, user_id, keyword, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, keyword) DO UPDATE SET created_at = EXCLUDED.created_at
	`

	if _, err := conn(ctx, d.pool).Exec(ctx, query, row.ID, row.UserID, row.Keyword, row.CreatedAt); err != nil {
		return &DriverError{Op: "Create", Err: err.Error()}
	}
	return nil
}

func (d *SearchHistoryDriver) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE user_search_history SET created_at = $2 WHERE id = $1`

	if _, err := conn(ctx, d.pool).Exec(ctx, query, id, at); err != nil {
		return &DriverError{Op: "Touch", Err: err.Error()}
	}
	return nil
}

func (d *SearchHistoryDriver) Replace(ctx context.Context, id uuid.UUID, keyword string, at time.Time) error {
	query := `UPDATE user_search_history SET keyword = $2, created_at = $3 WHERE id = $1`

	if _, err := conn(ctx, d.pool).Exec(ctx, query, id, keyword, at); err != nil {
		return &DriverError{Op: "Replace", Err: err.Error()}
	}
	return nil
}

func (d *SearchHistoryDriver) Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	query := `DELETE FROM user_search_history WHERE id = $1 AND user_id = $2`

	tag, err := conn(ctx, d.pool).Exec(ctx, query, id, userID)
	if err != nil {
		return false, &DriverError{Op: "Delete", Err: err.Error()}
	}
	return tag.RowsAffected() > 0, nil
}
