package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/RoboJunior/Coding-Buddy/pkg/observability"
	"go.opentelemetry.io/otel/attribute"
)

// ComposeTags joins the language and technology filters into the
// semicolon-joined conjunctive tag expression the Stack Exchange API
// expects. The language, when present, always leads.
func ComposeTags(language string, technologies []string) string {
	var tags []string
	if language != "" {
		tags = append(tags, language)
	}
	for _, t := range technologies {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return strings.Join(tags, ";")
}

// FirstLine reduces a multi-line stack trace to its first line, which names
// the exception and message. Full traces are too noisy to match titles.
func FirstLine(trace string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(trace), "\n")
	return strings.TrimSpace(line)
}

// searchText returns whichever primary content field the query carries.
func searchText(q Query) string {
	switch {
	case q.ErrorText != "":
		return q.ErrorText
	case q.StackTrace != "":
		return FirstLine(q.StackTrace)
	default:
		return q.Keywords
	}
}

// Composer runs one logical search: it sends the query through an adapter,
// truncates to the requested limit, and optionally enriches each retained
// item with its comments.
type Composer struct{}

// NewComposer builds a Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Search executes the query against one adapter. An adapter failure is a
// hard error; callers surface it as a failed tool result so the agent loop
// can react to it.
func (c *Composer) Search(ctx context.Context, q Query, adapter Adapter) ([]ResultItem, error) {
	tracer := observability.GetTracer("sources")
	ctx, span := tracer.Start(ctx, observability.SpanSourceSearch)
	defer span.End()
	span.SetAttributes(attribute.String("source.name", adapter.Name()))

	items, err := adapter.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}

	if q.IncludeComments {
		if fetcher, ok := adapter.(CommentFetcher); ok {
			c.enrich(ctx, items, fetcher)
		}
	}
	return items, nil
}

// SearchAll fans the query out over several adapters and concatenates the
// results. One unavailable source must not abort the whole composition, so
// its failure is logged and its contribution is empty.
func (c *Composer) SearchAll(ctx context.Context, q Query, adapters ...Adapter) []ResultItem {
	var merged []ResultItem
	for _, adapter := range adapters {
		items, err := c.Search(ctx, q, adapter)
		if err != nil {
			slog.Warn("Source search failed, continuing without it", "source", adapter.Name(), "error", err)
			continue
		}
		merged = append(merged, items...)
	}
	return merged
}

// enrich fetches comments for every item that carries a source identifier,
// concurrently. Results land in the slot of the item that requested them,
// so concurrency never reorders or misattributes comments. A failed fetch
// leaves that item without comments; the rest of the result stands.
func (c *Composer) enrich(ctx context.Context, items []ResultItem, fetcher CommentFetcher) {
	g, ctx := errgroup.WithContext(ctx)

	for i := range items {
		if items[i].ID == "" {
			continue
		}
		g.Go(func() error {
			comments, err := fetcher.Comments(ctx, items[i].ID)
			if err != nil {
				slog.Warn("Comment enrichment failed for item", "id", items[i].ID, "error", err)
				return nil
			}
			items[i].Comments = comments
			return nil
		})
	}

	// Workers swallow their own failures, so Wait can't return an error.
	_ = g.Wait()
}

// Render shapes the result per the requested format. Text yields one
// "<title>: <link>" line per item; anything else yields the structured
// records unchanged.
func Render(items []ResultItem, format OutputFormat) any {
	if format == FormatText {
		lines := make([]string, 0, len(items))
		for _, it := range items {
			lines = append(lines, fmt.Sprintf("%s: %s", it.Title, it.Link))
		}
		return lines
	}
	return items
}
