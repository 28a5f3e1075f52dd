package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"article-search/domain"
)

// Timestamp accepts epoch milliseconds (number or numeric string) or an
// RFC 3339 string.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.Time = time.UnixMilli(ms)
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		t.Time = parsed
		return nil
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

type SearchArticlesRequest struct {
	SearchWords    string     `json:"searchWords"`
	PageIndex      int        `json:"pageIndex"`
	PageSize       int        `json:"pageSize"`
	MinPublishTime *Timestamp `json:"minPublishTime"`
}

// toDomain converts the request. A missing minPublishTime means "newest
// first from now".
func (r *SearchArticlesRequest) toDomain(now time.Time) *domain.SearchParams {
	minPublishTime := now
	if r.MinPublishTime != nil && !r.MinPublishTime.IsZero() {
		minPublishTime = r.MinPublishTime.Time
	}
	return &domain.SearchParams{
		SearchWords:    r.SearchWords,
		PageIndex:      r.PageIndex,
		PageSize:       r.PageSize,
		MinPublishTime: minPublishTime,
	}
}

type DeleteHistoryRequest struct {
	ID string `json:"id"`
}

type AssociateWordsRequest struct {
	SearchWords string `json:"searchWords"`
	PageSize    int    `json:"pageSize"`
}

func (r *AssociateWordsRequest) toDomain() *domain.AssociateParams {
	return &domain.AssociateParams{
		SearchWords: r.SearchWords,
		PageSize:    r.PageSize,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
