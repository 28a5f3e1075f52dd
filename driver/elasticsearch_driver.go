package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

// maxErrorBody bounds how much of an error response is kept in DriverError.
const maxErrorBody = 4096

type ElasticsearchDriver struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchDriver(client *elasticsearch.Client, index string) *ElasticsearchDriver {
	return &ElasticsearchDriver{
		client: client,
		index:  index,
	}
}

type esQueryString struct {
	Query           string   `json:"query"`
	Fields          []string `json:"fields"`
	DefaultOperator string   `json:"default_operator"`
}

type esRange struct {
	LT int64 `json:"lt"`
}

type esClause struct {
	QueryString *esQueryString     `json:"query_string,omitempty"`
	Range       map[string]esRange `json:"range,omitempty"`
}

type esBool struct {
	Must   []esClause `json:"must"`
	Filter []esClause `json:"filter,omitempty"`
}

type esQuery struct {
	Bool esBool `json:"bool"`
}

type esSortOrder struct {
	Order string `json:"order"`
}

type esHighlightField struct{}

type esHighlight struct {
	Fields   map[string]esHighlightField `json:"fields"`
	PreTags  []string                    `json:"pre_tags"`
	PostTags []string                    `json:"post_tags"`
}

type esSearchRequest struct {
	From      int                      `json:"from"`
	Size      int                      `json:"size"`
	Query     esQuery                  `json:"query"`
	Sort      []map[string]esSortOrder `json:"sort,omitempty"`
	Highlight *esHighlight             `json:"highlight,omitempty"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID        string              `json:"_id"`
			Source    json.RawMessage     `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
}

// buildElasticsearchRequest translates the query into a bool query:
// must[query_string] + filter[range lt], sorted and highlighted.
func buildElasticsearchRequest(q ArticleSearchQuery) esSearchRequest {
	req := esSearchRequest{
		From: q.From,
		Size: q.Size,
		Query: esQuery{
			Bool: esBool{
				Must: []esClause{{
					QueryString: &esQueryString{
						Query:           q.Keywords,
						Fields:          q.Fields,
						DefaultOperator: q.Operator,
					},
				}},
			},
		},
	}

	if q.HasRange {
		req.Query.Bool.Filter = []esClause{{
			Range: map[string]esRange{q.RangeField: {LT: q.RangeLessThanMs}},
		}}
	}

	if q.SortField != "" {
		order := "asc"
		if q.SortDescending {
			order = "desc"
		}
		req.Sort = []map[string]esSortOrder{{q.SortField: {Order: order}}}
	}

	if q.HighlightField != "" {
		req.Highlight = &esHighlight{
			Fields:   map[string]esHighlightField{q.HighlightField: {}},
			PreTags:  []string{q.HighlightPreTag},
			PostTags: []string{q.HighlightPostTag},
		}
	}

	return req
}

func (d *ElasticsearchDriver) SearchArticles(ctx context.Context, q ArticleSearchQuery) ([]ArticleHitDriver, error) {
	body, err := json.Marshal(buildElasticsearchRequest(q))
	if err != nil {
		return nil, &DriverError{
			Op:  "SearchArticles",
			Err: "failed to encode query: " + err.Error(),
		}
	}

	res, err := d.client.Search(
		d.client.Search.WithContext(ctx),
		d.client.Search.WithIndex(d.index),
		d.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, &DriverError{
			Op:  "SearchArticles",
			Err: err.Error(),
		}
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, &DriverError{
			Op:  "SearchArticles",
			Err: fmt.Sprintf("elasticsearch returned %s: %s", res.Status(), raw),
		}
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, &DriverError{
			Op:  "SearchArticles",
			Err: "failed to decode response: " + err.Error(),
		}
	}

	hits := make([]ArticleHitDriver, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, ArticleHitDriver{
			ID:         h.ID,
			Source:     h.Source,
			Highlights: h.Highlight,
		})
	}

	return hits, nil
}

// EnsureIndex checks that the article index exists. The index is owned by the
// indexing side, so a missing index is reported rather than created.
func (d *ElasticsearchDriver) EnsureIndex(ctx context.Context) error {
	res, err := d.client.Indices.Exists(
		[]string{d.index},
		d.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: err.Error(),
		}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "index " + d.index + " does not exist",
		}
	}
	if res.IsError() {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "elasticsearch returned " + res.Status(),
		}
	}

	return nil
}

func (d *ElasticsearchDriver) Ping(ctx context.Context) error {
	res, err := d.client.Ping(d.client.Ping.WithContext(ctx))
	if err != nil {
		return &DriverError{
			Op:  "Ping",
			Err: err.Error(),
		}
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return &DriverError{
			Op:  "Ping",
			Err: "elasticsearch returned " + res.Status(),
		}
	}
	return nil
}
