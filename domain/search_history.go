package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxSearchHistoryPerUser caps how many keywords are kept per user.
const MaxSearchHistoryPerUser = 10

// SearchHistory is one remembered keyword of a user.
type SearchHistory struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"userId"`
	Keyword   string    `json:"keyword"`
	CreatedAt time.Time `json:"createdTime"`
}

// AssociateWord is a keyword suggestion.
type AssociateWord struct {
	ID             uuid.UUID `json:"id"`
	AssociateWords string    `json:"associateWords"`
	CreatedAt      time.Time `json:"createdTime"`
}
