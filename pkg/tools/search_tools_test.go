package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/RoboJunior/Coding-Buddy/pkg/sources"
)

// captureServer records the query params of the last request and answers
// with an empty Stack Exchange result set.
func captureServer(t *testing.T) (*httptest.Server, *url.Values) {
	t.Helper()
	var captured url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestSearchByErrorDefaultWireParams(t *testing.T) {
	srv, captured := captureServer(t)
	tool := NewSearchByErrorTool(sources.NewComposer(), sources.NewStackOverflow(srv.URL, fastClient()))

	result, err := tool.Execute(context.Background(), map[string]any{"error_message": "KeyError"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Execute() failed: %s", result.Error)
	}

	q := *captured
	if q.Has("accepted") {
		t.Errorf("default error search must not filter on accepted answers, sent accepted=%q", q.Get("accepted"))
	}
	if got := q.Get("pagesize"); got != "3" {
		t.Errorf("pagesize = %q, want 3", got)
	}
	if got := q.Get("sort"); got != "votes" {
		t.Errorf("sort = %q, want votes", got)
	}
	if got := q.Get("intitle"); got != "KeyError" {
		t.Errorf("intitle = %q", got)
	}
}

func TestAnalyzeStackTraceSendsMinScore(t *testing.T) {
	srv, captured := captureServer(t)
	tool := NewAnalyzeStackTraceTool(sources.NewComposer(), sources.NewStackOverflow(srv.URL, fastClient()))

	result, err := tool.Execute(context.Background(), map[string]any{
		"stack_trace": "TypeError: x is not a function\n  at main.js:10",
		"min_score":   float64(7),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Execute() failed: %s", result.Error)
	}

	q := *captured
	if got := q.Get("min"); got != "7" {
		t.Errorf("min = %q, want 7", got)
	}
	if got := q.Get("sort"); got != "relevance" {
		t.Errorf("sort = %q, want relevance", got)
	}
	if got := q.Get("pagesize"); got != "3" {
		t.Errorf("pagesize = %q, want 3", got)
	}
}

func TestAdvancedSearchDefaultLimit(t *testing.T) {
	srv, captured := captureServer(t)
	tool := NewAdvancedSearchTool(sources.NewComposer(), sources.NewStackOverflow(srv.URL, fastClient()))

	result, err := tool.Execute(context.Background(), map[string]any{"keywords": "async deadlock"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Execute() failed: %s", result.Error)
	}

	q := *captured
	if got := q.Get("pagesize"); got != "5" {
		t.Errorf("pagesize = %q, want 5", got)
	}
	if q.Has("accepted") {
		t.Errorf("accepted filter must be off by default, sent accepted=%q", q.Get("accepted"))
	}
}

// stubSource is a canned adapter for cross-source composition tests.
type stubSource struct {
	name  string
	items []sources.ResultItem
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(ctx context.Context, q sources.Query) ([]sources.ResultItem, error) {
	return s.items, s.err
}

func TestCrossSourceSearchMergesAcrossSources(t *testing.T) {
	a := &stubSource{name: "a", items: []sources.ResultItem{{Title: "fix one", Link: "http://a/1"}}}
	b := &stubSource{name: "b", items: []sources.ResultItem{{Title: "fix two", Link: "http://b/2"}}}
	tool := NewCrossSourceSearchTool(sources.NewComposer(), a, b)

	result, err := tool.Execute(context.Background(), map[string]any{"query": "deadlock"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Execute() failed: %s", result.Error)
	}

	items, ok := result.Output.([]sources.ResultItem)
	if !ok {
		t.Fatalf("Output = %T, want []sources.ResultItem", result.Output)
	}
	if len(items) != 2 {
		t.Fatalf("merged %d items, want 2", len(items))
	}
}

func TestCrossSourceSearchSurvivesDeadSource(t *testing.T) {
	alive := &stubSource{name: "alive", items: []sources.ResultItem{{Title: "fix", Link: "http://a/1"}}}
	dead := &stubSource{name: "dead", err: errors.New("connection refused")}
	tool := NewCrossSourceSearchTool(sources.NewComposer(), dead, alive)

	result, err := tool.Execute(context.Background(), map[string]any{"query": "deadlock"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("a dead source must not fail the whole search: %s", result.Error)
	}

	items := result.Output.([]sources.ResultItem)
	if len(items) != 1 || items[0].Title != "fix" {
		t.Errorf("items = %+v, want the live source's result", items)
	}
}
