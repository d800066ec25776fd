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

// GitHub searches issues across public repositories via the issue search
// API. Closed issues map to "accepted": a closed issue usually carries its
// resolution in the thread.
type GitHub struct {
	baseURL string
	client  *httpclient.Client
}

// NewGitHub builds the adapter against the given API base URL
// (e.g. "https://api.github.com").
func NewGitHub(baseURL string, client *httpclient.Client) *GitHub {
	if client == nil {
		client = httpclient.New()
	}
	return &GitHub{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (g *GitHub) Name() string { return "github" }

// Search queries /search/issues, newest first.
func (g *GitHub) Search(ctx context.Context, q Query) ([]ResultItem, error) {
	params := url.Values{}
	params.Set("q", searchText(q)+" type:issue")
	params.Set("sort", "created")
	params.Set("order", "desc")
	if q.Limit > 0 {
		params.Set("per_page", strconv.Itoa(q.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search/issues?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GitHub request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: github: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: github: HTTP %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var wire ghSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode GitHub response: %w", err)
	}

	items := make([]ResultItem, 0, len(wire.Items))
	for _, it := range wire.Items {
		items = append(items, ResultItem{
			Title:    it.Title,
			Link:     it.HTMLURL,
			Score:    it.Comments,
			Accepted: it.State == "closed",
			ID:       strconv.FormatInt(it.Number, 10),
		})
	}
	return items, nil
}

type ghSearchResponse struct {
	Items []ghIssue `json:"items"`
}

type ghIssue struct {
	Number   int64  `json:"number"`
	Title    string `json:"title"`
	HTMLURL  string `json:"html_url"`
	State    string `json:"state"`
	Comments int    `json:"comments"`
}

var _ Adapter = (*GitHub)(nil)
