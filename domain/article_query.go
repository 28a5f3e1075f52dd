package domain

import (
	"encoding/json"
	"time"
)

const (
	DefaultArticleIndex = "app_info_article"

	FieldTitle       = "title"
	FieldContent     = "content"
	FieldPublishTime = "publishTime"

	DefaultHighlightPreTag  = "<font style='color: red; font-size: inherit;'>"
	DefaultHighlightPostTag = "</font>"
)

// QueryOperator combines the terms of a full-text clause.
type QueryOperator string

const (
	OperatorOr  QueryOperator = "OR"
	OperatorAnd QueryOperator = "AND"
)

// HighlightSpec asks the engine to wrap matched terms of Field.
type HighlightSpec struct {
	Field   string
	PreTag  string
	PostTag string
}

// DefaultHighlight returns the title highlight used when nothing is configured.
func DefaultHighlight() HighlightSpec {
	return HighlightSpec{
		Field:   FieldTitle,
		PreTag:  DefaultHighlightPreTag,
		PostTag: DefaultHighlightPostTag,
	}
}

// ArticleQuery is the engine-neutral form of an article search.
type ArticleQuery struct {
	Keywords string
	Fields   []string
	Operator QueryOperator
	// RangeField is filtered with the exclusive upper bound PublishedBefore.
	RangeField      string
	PublishedBefore time.Time
	From            int
	Size            int
	SortField       string
	SortDescending  bool
	Highlight       HighlightSpec
}

// ArticleHit is one matching document as returned by the engine.
type ArticleHit struct {
	ID         string
	Source     json.RawMessage
	Highlights map[string][]string
}
