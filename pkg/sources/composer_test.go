package sources

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestComposeTags(t *testing.T) {
	tests := []struct {
		name         string
		language     string
		technologies []string
		expected     string
	}{
		{
			name:     "language only",
			language: "python",
			expected: "python",
		},
		{
			name:         "technologies only",
			technologies: []string{"pandas", "numpy"},
			expected:     "pandas;numpy",
		},
		{
			name:         "language leads technologies",
			language:     "python",
			technologies: []string{"pandas", "numpy"},
			expected:     "python;pandas;numpy",
		},
		{
			name:     "nothing given",
			expected: "",
		},
		{
			name:         "empty technology entries skipped",
			language:     "go",
			technologies: []string{"", "chi"},
			expected:     "go;chi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComposeTags(tt.language, tt.technologies); got != tt.expected {
				t.Errorf("ComposeTags() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name     string
		trace    string
		expected string
	}{
		{
			name:     "multi-line trace",
			trace:    "TypeError: unsupported operand\n  File \"app.py\", line 3\n  ...",
			expected: "TypeError: unsupported operand",
		},
		{
			name:     "single line",
			trace:    "panic: runtime error",
			expected: "panic: runtime error",
		},
		{
			name:     "leading whitespace trimmed",
			trace:    "\n  ValueError: bad input\nmore",
			expected: "ValueError: bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstLine(tt.trace); got != tt.expected {
				t.Errorf("FirstLine() = %q, want %q", got, tt.expected)
			}
		})
	}
}

type fakeAdapter struct {
	name     string
	items    []ResultItem
	err      error
	comments map[string][]Comment
	// commentErr fails Comments for the listed ids.
	commentErr map[string]error
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Search(ctx context.Context, q Query) ([]ResultItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]ResultItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeAdapter) Comments(ctx context.Context, id string) ([]Comment, error) {
	if err, ok := f.commentErr[id]; ok {
		return nil, err
	}
	return f.comments[id], nil
}

func manyItems(n int) []ResultItem {
	items := make([]ResultItem, n)
	for i := range items {
		items[i] = ResultItem{
			Title: fmt.Sprintf("question %d", i),
			Link:  fmt.Sprintf("https://example.com/q/%d", i),
			ID:    fmt.Sprintf("%d", i),
		}
	}
	return items
}

func TestComposerTruncatesToLimit(t *testing.T) {
	adapter := &fakeAdapter{name: "fake", items: manyItems(10)}

	items, err := NewComposer().Search(context.Background(), Query{Keywords: "x", Limit: 3}, adapter)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	// Truncation keeps the head of the ranked order.
	for i, it := range items {
		if want := fmt.Sprintf("question %d", i); it.Title != want {
			t.Errorf("item %d title = %q, want %q", i, it.Title, want)
		}
	}
}

func TestComposerKeepsShortResults(t *testing.T) {
	adapter := &fakeAdapter{name: "fake", items: manyItems(2)}

	items, err := NewComposer().Search(context.Background(), Query{Keywords: "x", Limit: 5}, adapter)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestComposerEnrichmentAlignsComments(t *testing.T) {
	adapter := &fakeAdapter{
		name:  "fake",
		items: manyItems(3),
		comments: map[string][]Comment{
			"0": {{Body: "comment for zero"}},
			"2": {{Body: "comment for two"}, {Body: "another for two"}},
		},
		commentErr: map[string]error{
			"1": errors.New("comments endpoint down"),
		},
	}

	items, err := NewComposer().Search(context.Background(), Query{Keywords: "x", Limit: 3, IncludeComments: true}, adapter)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(items[0].Comments) != 1 || items[0].Comments[0].Body != "comment for zero" {
		t.Errorf("item 0 comments = %+v, want the zero comment", items[0].Comments)
	}
	// The failed fetch degrades that item only.
	if len(items[1].Comments) != 0 {
		t.Errorf("item 1 comments = %+v, want none", items[1].Comments)
	}
	if len(items[2].Comments) != 2 {
		t.Errorf("item 2 comments = %+v, want two", items[2].Comments)
	}
}

func TestComposerSkipsEnrichmentWithoutFlag(t *testing.T) {
	adapter := &fakeAdapter{
		name:     "fake",
		items:    manyItems(1),
		comments: map[string][]Comment{"0": {{Body: "hidden"}}},
	}

	items, err := NewComposer().Search(context.Background(), Query{Keywords: "x", Limit: 1}, adapter)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items[0].Comments) != 0 {
		t.Errorf("comments fetched without IncludeComments: %+v", items[0].Comments)
	}
}

func TestSearchAllToleratesFailingSource(t *testing.T) {
	healthy := &fakeAdapter{name: "healthy", items: manyItems(2)}
	broken := &fakeAdapter{name: "broken", err: ErrSourceUnavailable}

	items := NewComposer().SearchAll(context.Background(), Query{Keywords: "x"}, broken, healthy)
	if len(items) != 2 {
		t.Fatalf("expected the healthy source's 2 items, got %d", len(items))
	}
}

func TestRender(t *testing.T) {
	items := []ResultItem{
		{Title: "How to fix TypeError", Link: "https://example.com/q/1"},
		{Title: "Pandas merge fails", Link: "https://example.com/q/2"},
	}

	t.Run("text yields title-link lines", func(t *testing.T) {
		lines, ok := Render(items, FormatText).([]string)
		if !ok {
			t.Fatalf("expected []string, got %T", Render(items, FormatText))
		}
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0] != "How to fix TypeError: https://example.com/q/1" {
			t.Errorf("line 0 = %q", lines[0])
		}
	})

	t.Run("structured yields records", func(t *testing.T) {
		got, ok := Render(items, FormatStructured).([]ResultItem)
		if !ok || len(got) != 2 {
			t.Fatalf("expected the 2 records back, got %T", Render(items, FormatStructured))
		}
	})

	t.Run("unknown format falls back to structured", func(t *testing.T) {
		if _, ok := Render(items, OutputFormat("yaml")).([]ResultItem); !ok {
			t.Errorf("unknown format should render structured records")
		}
	})
}
