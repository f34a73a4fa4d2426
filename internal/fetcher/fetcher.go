// Package fetcher retrieves competing search results for a keyword by trying
// an ordered list of strategies. It never fails: when every strategy fails the
// caller receives the single failure record.
package fetcher

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"video-seo-backend/internal/competitors"
	"video-seo-backend/internal/shared/metrics"
	"video-seo-backend/internal/shared/telemetry"
)

// ErrNoResults is returned by a strategy that loaded the page but found no listings.
var ErrNoResults = errors.New("no search results found")

// Strategy is one way of loading search results.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, keyword string) ([]competitors.Record, error)
}

// Fetcher tries Strategies in order until one returns listings.
type Fetcher struct {
	Strategies []Strategy
	// Limit caps the records returned; zero means competitors.MaxRecords.
	Limit int
	// Timeout bounds each strategy attempt; zero means no extra bound.
	Timeout time.Duration
	// Limiter paces outbound attempts across requests. Optional.
	Limiter *rate.Limiter
}

// Fetch returns at most Limit records for keyword, or the failure record.
func (f *Fetcher) Fetch(ctx context.Context, keyword string) []competitors.Record {
	var lastErr error
	for _, s := range f.Strategies {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		if f.Limiter != nil {
			if err := f.Limiter.Wait(ctx); err != nil {
				lastErr = err
				break
			}
		}

		records, err := f.attempt(ctx, s, keyword)
		if err == nil && len(records) == 0 {
			err = ErrNoResults
		}
		if err != nil {
			lastErr = err
			telemetry.Warn("fetch.strategy_failed", map[string]any{
				"strategy": s.Name(),
				"keyword":  keyword,
				"error":    err.Error(),
			})
			continue
		}
		return normalize(records, f.limit())
	}

	fields := map[string]any{"keyword": keyword, "strategies": len(f.Strategies)}
	if lastErr != nil {
		fields["error"] = lastErr.Error()
	}
	telemetry.Error("fetch.sentinel", fields)
	metrics.IncCompetitorFallback()
	return []competitors.Record{competitors.FailureRecord()}
}

func (f *Fetcher) attempt(ctx context.Context, s Strategy, keyword string) ([]competitors.Record, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	return s.Attempt(ctx, keyword)
}

func (f *Fetcher) limit() int {
	if f.Limit <= 0 {
		return competitors.MaxRecords
	}
	return f.Limit
}

func normalize(records []competitors.Record, limit int) []competitors.Record {
	if len(records) > limit {
		records = records[:limit]
	}
	out := make([]competitors.Record, 0, len(records))
	for _, r := range records {
		out = append(out, competitors.Record{
			Title:       orDefault(r.Title, "No Title"),
			URL:         orDefault(r.URL, "No URL"),
			ChannelName: orDefault(r.ChannelName, "No Channel Name"),
			Views:       orDefault(r.Views, competitors.NoViews),
			PublishDate: orDefault(r.PublishDate, competitors.NoDate),
		})
	}
	return out
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// SearchURL builds the results page URL for keyword.
func SearchURL(baseURL, keyword string) string {
	return strings.TrimRight(baseURL, "/") + "/results?search_query=" + url.QueryEscape(strings.TrimSpace(keyword))
}

func absoluteURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/")
}
