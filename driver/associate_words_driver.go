package driver

import (
	"context"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type AssociateWordsDriver struct {
	pool PgxIface
}

func NewAssociateWordsDriver(pool PgxIface) *AssociateWordsDriver {
	return &AssociateWordsDriver{pool: pool}
}

// SearchAssociateWords returns words containing keyword, case-insensitively.
func (d *AssociateWordsDriver) SearchAssociateWords(ctx context.Context, keyword string, limit int) ([]*AssociateWordRow, error) {
	query := `
		SELECT id, associate_words, created_at
		FROM associate_words
		WHERE associate_words ILIKE $1 ESCAPE '\'
		ORDER BY created_at DESC
		LIMIT $2
	`

	pattern := "%" + likeEscaper.Replace(keyword) + "%"

	rows, err := d.pool.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, &DriverError{Op: "SearchAssociateWords", Err: err.Error()}
	}
	defer rows.Close()

	var result []*AssociateWordRow
	for rows.Next() {
		var row AssociateWordRow
		if err := rows.Scan(&row.ID, &row.AssociateWords, &row.CreatedAt); err != nil {
			return nil, &DriverError{Op: "SearchAssociateWords", Err: err.Error()}
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DriverError{Op: "SearchAssociateWords", Err: err.Error()}
	}

	return result, nil
}
