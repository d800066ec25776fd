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

// DefaultSubreddit is searched when a query doesn't name one.
const DefaultSubreddit = "programming"

// Reddit searches one subreddit through the public JSON listing endpoint.
type Reddit struct {
	baseURL string
	client  *httpclient.Client
}

// NewReddit builds the adapter against the given base URL
// (e.g. "https://www.reddit.com").
func NewReddit(baseURL string, client *httpclient.Client) *Reddit {
	if client == nil {
		client = httpclient.New()
	}
	return &Reddit{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (r *Reddit) Name() string { return "reddit" }

// Search queries /r/{subreddit}/search.json restricted to the subreddit,
// newest first.
func (r *Reddit) Search(ctx context.Context, q Query) ([]ResultItem, error) {
	subreddit := q.Subreddit
	if subreddit == "" {
		subreddit = DefaultSubreddit
	}

	params := url.Values{}
	params.Set("q", searchText(q))
	params.Set("restrict_sr", "1")
	params.Set("sort", "new")
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := r.baseURL + "/r/" + url.PathEscape(subreddit) + "/search.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Reddit request: %w", err)
	}
	// Reddit rejects the default Go user agent.
	req.Header.Set("User-Agent", "coding-buddy/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: reddit: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: reddit: HTTP %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var wire redditListing
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit response: %w", err)
	}

	items := make([]ResultItem, 0, len(wire.Data.Children))
	for _, child := range wire.Data.Children {
		post := child.Data
		items = append(items, ResultItem{
			Title: post.Title,
			Link:  r.baseURL + post.Permalink,
			Score: post.Score,
			ID:    post.ID,
		})
	}
	return items, nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
	Score     int    `json:"score"`
}

var _ Adapter = (*Reddit)(nil)
