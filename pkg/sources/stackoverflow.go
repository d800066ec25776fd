package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/RoboJunior/Coding-Buddy/pkg/httpclient"
)

// soFilter is the Stack Exchange response filter that includes the question
// body and accepted answer id in search results.
const soFilter = "!9_bDDxJY5"

// StackOverflow is the Stack Exchange API adapter. It serves the advanced
// search endpoint and per-question comment lookups.
type StackOverflow struct {
	baseURL string
	site    string
	client  *httpclient.Client
}

// NewStackOverflow builds the adapter against the given API base URL
// (e.g. "https://api.stackexchange.com/2.3").
func NewStackOverflow(baseURL string, client *httpclient.Client) *StackOverflow {
	if client == nil {
		client = httpclient.New()
	}
	return &StackOverflow{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		site:    "stackoverflow",
		client:  client,
	}
}

func (s *StackOverflow) Name() string { return "stackoverflow" }

// Search queries /search/advanced. Error text and stack traces match
// against question titles; free keywords match the full text.
func (s *StackOverflow) Search(ctx context.Context, q Query) ([]ResultItem, error) {
	params := url.Values{}
	params.Set("order", "desc")
	params.Set("site", s.site)
	params.Set("filter", soFilter)

	sort := q.Sort
	if sort == "" {
		sort = SortVotes
	}
	params.Set("sort", string(sort))

	switch {
	case q.ErrorText != "":
		params.Set("intitle", q.ErrorText)
	case q.StackTrace != "":
		params.Set("intitle", FirstLine(q.StackTrace))
	case q.Keywords != "":
		params.Set("q", q.Keywords)
	}

	if tagged := ComposeTags(q.Language, q.Technologies); tagged != "" {
		params.Set("tagged", tagged)
	}
	if q.MinScore != nil {
		params.Set("min", strconv.Itoa(*q.MinScore))
	}
	if q.HasAccepted {
		params.Set("accepted", "True")
	}
	if q.Limit > 0 {
		params.Set("pagesize", strconv.Itoa(q.Limit))
	}

	var wire soSearchResponse
	if err := s.get(ctx, "/search/advanced", params, &wire); err != nil {
		return nil, err
	}

	items := make([]ResultItem, 0, len(wire.Items))
	for _, it := range wire.Items {
		items = append(items, ResultItem{
			Title:    it.Title,
			Link:     it.Link,
			Score:    it.Score,
			Accepted: it.AcceptedAnswerID != 0,
			ID:       strconv.FormatInt(it.QuestionID, 10),
			Tags:     it.Tags,
		})
	}
	return items, nil
}

// Comments fetches the comments of one question, newest first.
func (s *StackOverflow) Comments(ctx context.Context, id string) ([]Comment, error) {
	params := url.Values{}
	params.Set("order", "desc")
	params.Set("sort", "creation")
	params.Set("site", s.site)

	var wire soCommentsResponse
	if err := s.get(ctx, "/questions/"+url.PathEscape(id)+"/comments", params, &wire); err != nil {
		return nil, err
	}

	comments := make([]Comment, 0, len(wire.Items))
	for _, c := range wire.Items {
		comments = append(comments, Comment{
			Body:      c.Body,
			Score:     c.Score,
			CreatedAt: c.CreationDate,
		})
	}
	return comments, nil
}

func (s *StackOverflow) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build Stack Exchange request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: stackoverflow: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: stackoverflow: HTTP %d", ErrSourceUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Stack Exchange response: %w", err)
	}
	return nil
}

type soSearchResponse struct {
	Items []soQuestion `json:"items"`
}

type soQuestion struct {
	QuestionID       int64    `json:"question_id"`
	Title            string   `json:"title"`
	Link             string   `json:"link"`
	Score            int      `json:"score"`
	AcceptedAnswerID int64    `json:"accepted_answer_id"`
	Tags             []string `json:"tags"`
}

type soCommentsResponse struct {
	Items []soComment `json:"items"`
}

type soComment struct {
	Body         string `json:"body"`
	Score        int    `json:"score"`
	CreationDate int64  `json:"creation_date"`
}

var (
	_ Adapter        = (*StackOverflow)(nil)
	_ CommentFetcher = (*StackOverflow)(nil)
)
