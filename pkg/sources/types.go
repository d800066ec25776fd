// Package sources implements the read-only knowledge source clients (Stack
// Overflow, GitHub issues, Reddit) and the search composer that turns one
// logical "find me a fix" request into filtered source queries, optional
// per-item comment enrichment, and a shaped result.
package sources

import (
	"context"
	"errors"
)

// SortKey selects the ranking of a source search. Direct error and keyword
// searches rank by votes; stack-trace analysis ranks by relevance.
type SortKey string

const (
	SortVotes     SortKey = "votes"
	SortRelevance SortKey = "relevance"
)

// OutputFormat selects the shape of a search result.
type OutputFormat string

const (
	// FormatStructured returns full result records. Unknown formats fall
	// back to this.
	FormatStructured OutputFormat = "structured"

	// FormatText returns one "<title>: <link>" line per item.
	FormatText OutputFormat = "text"
)

// Query is a normalized search request. Exactly one of ErrorText,
// StackTrace, or Keywords is populated, depending on which operation
// built the query.
type Query struct {
	ErrorText  string
	StackTrace string
	Keywords   string

	// Language, when set, leads the tag filter.
	Language string

	// Technologies are joined after the language into the tag filter.
	Technologies []string

	// Subreddit scopes Reddit searches.
	Subreddit string

	// MinScore filters out low-scored items. Nil means no lower bound.
	MinScore *int

	// HasAccepted restricts to questions with an accepted answer.
	HasAccepted bool

	IncludeComments bool
	Sort            SortKey
	Limit           int
	Format          OutputFormat
}

// ResultItem is a normalized search hit from any source.
type ResultItem struct {
	Title    string    `json:"title"`
	Link     string    `json:"link"`
	Score    int       `json:"score"`
	Accepted bool      `json:"accepted_answer_present"`
	ID       string    `json:"id"`
	Tags     []string  `json:"tags,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

// Comment is one normalized comment attached to a result item.
type Comment struct {
	Body      string `json:"body"`
	Score     int    `json:"score"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// Adapter is a normalized client for one external knowledge source.
type Adapter interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Search translates the query into the source's wire request and
	// parses the response into a normalized, ranked item list.
	Search(ctx context.Context, q Query) ([]ResultItem, error)
}

// CommentFetcher is implemented by adapters whose source exposes a per-item
// comments endpoint.
type CommentFetcher interface {
	// Comments fetches the comments of one item by its source-native
	// identifier.
	Comments(ctx context.Context, id string) ([]Comment, error)
}

// ErrSourceUnavailable wraps a failed or timed-out source call.
var ErrSourceUnavailable = errors.New("source unavailable")
