package entity

import (
	"time"

	"github.com/google/uuid"
)

// Relevance tiers for historical pattern matches. A record is assigned the
// strongest tier it satisfies, never more than one.
const (
	RelevanceExact     = 3
	RelevancePrefix    = 2
	RelevanceSubstring = 1
)

// HistoricalPattern is one (category, description) group of past expense
// records matching a queried location. Computed per query and only persisted
// as part of the query's cache entry.
type HistoricalPattern struct {
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Frequency     int     `json:"frequency"`
	AverageAmount float64 `json:"average_amount"`
	Relevance     int     `json:"relevance"`
}

// ExpenseRecord is a past classification as stored in the relational store.
// The pipeline only reads these; the feedback learner writes them.
type ExpenseRecord struct {
	Id          uuid.UUID
	Location    string
	Category    string
	Description string
	Amount      int64
	UsageDate   time.Time
	CreatedAt   time.Time
}
