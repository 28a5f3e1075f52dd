package domain

const (
	EventTypeSearchPerformed = "SearchPerformed"
	EventSource              = "article-search"
)

// SearchPerformedPayload is the body of a SearchPerformed event.
type SearchPerformedPayload struct {
	SearchWords string `json:"searchWords"`
	UserID      int64  `json:"userId"`
}
