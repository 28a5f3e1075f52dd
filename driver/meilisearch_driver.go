package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/meilisearch/meilisearch-go"
)

const meiliTaskPollInterval = 50 * time.Millisecond

type MeilisearchDriver struct {
	client    meilisearch.ServiceManager
	index     meilisearch.IndexManager
	indexName string
}

func NewMeilisearchDriver(client meilisearch.ServiceManager, indexName string) *MeilisearchDriver {
	return &MeilisearchDriver{
		client:    client,
		index:     client.Index(indexName),
		indexName: indexName,
	}
}

// buildMeilisearchRequest expresses the article query with Meilisearch
// settings. Meilisearch has no OR operator: the "last" matching strategy is
// the closest fit, but it drops terms from the end of the query, so for "a b"
// a document holding only "b" is never returned.
func buildMeilisearchRequest(q ArticleSearchQuery) *meilisearch.SearchRequest {
	req := &meilisearch.SearchRequest{
		Offset:               int64(q.From),
		Limit:                int64(q.Size),
		AttributesToSearchOn: q.Fields,
		MatchingStrategy:     meilisearch.Last,
	}
	if strings.EqualFold(q.Operator, "AND") {
		req.MatchingStrategy = meilisearch.All
	}

	if q.HasRange {
		req.Filter = fmt.Sprintf("%s < %d", q.RangeField, q.RangeLessThanMs)
	}

	if q.SortField != "" {
		direction := "asc"
		if q.SortDescending {
			direction = "desc"
		}
		req.Sort = []string{q.SortField + ":" + direction}
	}

	if q.HighlightField != "" {
		req.AttributesToHighlight = []string{q.HighlightField}
		req.HighlightPreTag = q.HighlightPreTag
		req.HighlightPostTag = q.HighlightPostTag
	}

	return req
}

func (d *MeilisearchDriver) SearchArticles(ctx context.Context, q ArticleSearchQuery) ([]ArticleHitDriver, error) {
	result, err := d.index.SearchWithContext(ctx, q.Keywords, buildMeilisearchRequest(q))
	if err != nil {
		return nil, &DriverError{
			Op:  "SearchArticles",
			Err: err.Error(),
		}
	}

	hits := make([]ArticleHitDriver, 0, len(result.Hits))
	for _, hit := range result.Hits {
		converted, err := convertMeilisearchHit(hit, q.HighlightField)
		if err != nil {
			return nil, &DriverError{
				Op:  "SearchArticles",
				Err: err.Error(),
			}
		}
		hits = append(hits, converted)
	}

	return hits, nil
}

// convertMeilisearchHit splits a hit into the stored document and the
// highlighted field. Keys starting with "_" are engine metadata. The
// formatted value only counts as a highlight when it differs from the stored
// one, since Meilisearch returns _formatted for every hit.
func convertMeilisearchHit(hit meilisearch.Hit, highlightField string) (ArticleHitDriver, error) {
	source := make(map[string]json.RawMessage, len(hit))
	var formatted map[string]json.RawMessage

	for key, value := range hit {
		if key == "_formatted" {
			if err := json.Unmarshal(value, &formatted); err != nil {
				return ArticleHitDriver{}, fmt.Errorf("invalid _formatted: %w", err)
			}
			continue
		}
		if strings.HasPrefix(key, "_") {
			continue
		}
		source[key] = value
	}

	raw, err := json.Marshal(source)
	if err != nil {
		return ArticleHitDriver{}, err
	}

	out := ArticleHitDriver{Source: raw}

	if idRaw, ok := source["id"]; ok {
		var id string
		if json.Unmarshal(idRaw, &id) == nil {
			out.ID = id
		} else {
			out.ID = string(idRaw)
		}
	}

	if highlightField != "" && formatted != nil {
		var original, marked string
		_ = json.Unmarshal(source[highlightField], &original)
		if err := json.Unmarshal(formatted[highlightField], &marked); err == nil && marked != original {
			out.Highlights = map[string][]string{highlightField: {marked}}
		}
	}

	return out, nil
}

// EnsureIndex creates the index when missing and registers the publish time
// attribute for filtering and sorting.
func (d *MeilisearchDriver) EnsureIndex(ctx context.Context) error {
	if _, err := d.index.FetchInfoWithContext(ctx); err != nil {
		task, err := d.client.CreateIndexWithContext(ctx, &meilisearch.IndexConfig{
			Uid:        d.indexName,
			PrimaryKey: "id",
		})
		if err != nil {
			return &DriverError{
				Op:  "EnsureIndex",
				Err: "failed to create index: " + err.Error(),
			}
		}
		if _, err := d.index.WaitForTaskWithContext(ctx, task.TaskUID, meiliTaskPollInterval); err != nil {
			return &DriverError{
				Op:  "EnsureIndex",
				Err: "failed to wait for index creation: " + err.Error(),
			}
		}
	}

	attributes := []string{"publishTime"}

	filterableAttributes := make([]interface{}, len(attributes))
	for i, a := range attributes {
		filterableAttributes[i] = a
	}

	task, err := d.index.UpdateFilterableAttributesWithContext(ctx, &filterableAttributes)
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set filterable attributes: " + err.Error(),
		}
	}
	if _, err := d.index.WaitForTaskWithContext(ctx, task.TaskUID, meiliTaskPollInterval); err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to wait for filterable attributes: " + err.Error(),
		}
	}

	task, err = d.index.UpdateSortableAttributesWithContext(ctx, &attributes)
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set sortable attributes: " + err.Error(),
		}
	}
	if _, err := d.index.WaitForTaskWithContext(ctx, task.TaskUID, meiliTaskPollInterval); err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to wait for sortable attributes: " + err.Error(),
		}
	}

	return nil
}

func (d *MeilisearchDriver) Ping(ctx context.Context) error {
	if _, err := d.client.HealthWithContext(ctx); err != nil {
		return &DriverError{
			Op:  "Ping",
			Err: err.Error(),
		}
	}
	return nil
}
