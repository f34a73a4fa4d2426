package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"video-seo-backend/internal/competitors"
)

const resultSelector = "ytd-video-renderer"

var blockedResources = []string{"*.png", "*.jpg", "*.jpeg", "*.webp", "*.gif", "*.woff2", "*.mp4"}

// BrowserStrategy renders the results page in headless Chrome and reads the
// listings from the rendered DOM.
type BrowserStrategy struct {
	Options BrowserOptions
	BaseURL string
	// WaitTimeout bounds the wait for the first result to render.
	WaitTimeout time.Duration
}

func (b *BrowserStrategy) Name() string {
	if b.Options.Optimized {
		return "browser-optimized"
	}
	return "browser"
}

func (b *BrowserStrategy) Attempt(ctx context.Context, keyword string) ([]competitors.Record, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, BuildChromeOptions(b.Options)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	wait := b.WaitTimeout
	if wait <= 0 {
		wait = 10 * time.Second
	}

	var html string
	tasks := b.tasks(SearchURL(b.BaseURL, keyword), wait, &html)
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("browser navigation failed: %w", err)
	}

	return ParseRenderedResults(html, b.BaseURL, competitors.MaxRecords)
}

// tasks navigates to url, waits up to wait for the first result and captures
// the rendered page into html.
func (b *BrowserStrategy) tasks(url string, wait time.Duration, html *string) chromedp.Tasks {
	tasks := chromedp.Tasks{}
	if b.Options.BlockImages {
		tasks = append(tasks, network.Enable(), network.SetBlockedURLS(blockedResources))
	}
	return append(tasks,
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, wait)
			defer cancel()
			return chromedp.WaitVisible(resultSelector, chromedp.ByQuery).Do(waitCtx)
		}),
		chromedp.OuterHTML("html", html, chromedp.ByQuery),
	)
}

// ParseRenderedResults reads listings from a rendered results page.
func ParseRenderedResults(html, baseURL string, limit int) ([]competitors.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered page: %w", err)
	}

	var records []competitors.Record
	doc.Find(resultSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(records) >= limit {
			return false
		}
		titleEl := s.Find("#video-title").First()
		title, ok := titleEl.Attr("title")
		if !ok || strings.TrimSpace(title) == "" {
			title = titleEl.Text()
		}
		href, _ := titleEl.Attr("href")

		rec := competitors.Record{
			Title:       strings.TrimSpace(title),
			URL:         absoluteURL(baseURL, href),
			ChannelName: strings.TrimSpace(s.Find("#channel-name .yt-simple-endpoint").First().Text()),
			Views:       competitors.NoViews,
			PublishDate: competitors.NoDate,
		}
		spans := s.Find("#metadata-line span")
		if spans.Length() >= 2 {
			rec.Views = strings.TrimSpace(spans.Eq(0).Text())
			rec.PublishDate = strings.TrimSpace(spans.Eq(1).Text())
		}
		records = append(records, rec)
		return true
	})
	if len(records) == 0 {
		return nil, ErrNoResults
	}
	return records, nil
}
