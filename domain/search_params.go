package domain

import (
	"strings"
	"time"
)

// SearchParams is one article search request.
type SearchParams struct {
	SearchWords string
	// PageIndex is 0 for a fresh search and non-zero for "load more".
	PageIndex      int
	PageSize       int
	MinPublishTime time.Time
}

// HasSearchWords reports whether the request carries a non-blank keyword.
func (p *SearchParams) HasSearchWords() bool {
	return p != nil && strings.TrimSpace(p.SearchWords) != ""
}

// IsFirstPage reports whether this request starts a new search.
func (p *SearchParams) IsFirstPage() bool {
	return p.PageIndex == 0
}

// CurrentUser identifies the caller of a request. A nil *CurrentUser is an
// anonymous caller.
type CurrentUser struct {
	ID int64
}

// AssociateParams is a keyword suggestion request.
type AssociateParams struct {
	SearchWords string
	PageSize    int
}
