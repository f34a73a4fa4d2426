package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"video-seo-backend/internal/competitors"
)

const initialDataMarker = "ytInitialData"

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// HTTPStrategy downloads the results page without a browser and reads the
// listings from the embedded initial data blob.
type HTTPStrategy struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

var textPolicy = bluemonday.StrictPolicy()

// NewHTTPStrategy builds an HTTPStrategy with a pooled client.
func NewHTTPStrategy(baseURL, userAgent string, timeout time.Duration) *HTTPStrategy {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPStrategy{
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		BaseURL:   baseURL,
		UserAgent: userAgent,
	}
}

func (h *HTTPStrategy) Name() string { return "http" }

func (h *HTTPStrategy) Attempt(ctx context.Context, keyword string) ([]competitors.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, SearchURL(h.BaseURL, keyword), nil)
	if err != nil {
		return nil, err
	}
	h.setRequestHeaders(req)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("results page request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("results page http status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var blob string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, initialDataMarker) {
			blob = text
			return false
		}
		return true
	})
	if blob == "" {
		return nil, errors.New("results page missing initial data")
	}

	renderers, err := findVideoRenderers(blob, competitors.MaxRecords)
	if err != nil && len(renderers) == 0 {
		return nil, fmt.Errorf("decode initial data: %w", err)
	}
	if len(renderers) == 0 {
		return nil, ErrNoResults
	}

	records := make([]competitors.Record, 0, len(renderers))
	for _, vr := range renderers {
		rec := competitors.Record{
			Title:       html.UnescapeString(textPolicy.Sanitize(vr.Title.String())),
			ChannelName: html.UnescapeString(textPolicy.Sanitize(vr.OwnerText.String())),
			Views:       vr.ShortViewCountText.String(),
			PublishDate: vr.PublishedTimeText.String(),
		}
		if rec.Views == "" {
			rec.Views = vr.ViewCountText.String()
		}
		if vr.VideoID != "" {
			rec.URL = absoluteURL(h.BaseURL, "/watch?v="+vr.VideoID)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (h *HTTPStrategy) setRequestHeaders(req *http.Request) {
	ua := h.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
}

type textRuns struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t textRuns) String() string {
	if t.SimpleText != "" {
		return strings.TrimSpace(t.SimpleText)
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return strings.TrimSpace(b.String())
}

type videoRenderer struct {
	VideoID            string   `json:"videoId"`
	Title              textRuns `json:"title"`
	OwnerText          textRuns `json:"ownerText"`
	ViewCountText      textRuns `json:"viewCountText"`
	ShortViewCountText textRuns `json:"shortViewCountText"`
	PublishedTimeText  textRuns `json:"publishedTimeText"`
}

// findVideoRenderers streams the initial data object in document order and
// decodes every "videoRenderer" value until limit are found.
func findVideoRenderers(script string, limit int) ([]videoRenderer, error) {
	idx := strings.Index(script, initialDataMarker)
	if idx < 0 {
		return nil, errors.New("initial data marker not found")
	}
	start := strings.IndexByte(script[idx:], '{')
	if start < 0 {
		return nil, errors.New("initial data object not found")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(script[idx+start:])))
	type frame struct {
		object  bool
		wantKey bool
	}
	var stack []frame
	valueDone := func() {
		if n := len(stack); n > 0 && stack[n-1].object {
			stack[n-1].wantKey = true
		}
	}

	var out []videoRenderer
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				valueDone()
				stack = append(stack, frame{object: true, wantKey: true})
			case '[':
				valueDone()
				stack = append(stack, frame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return out, nil
				}
			}
		case string:
			top := len(stack) - 1
			if top >= 0 && stack[top].object && stack[top].wantKey {
				stack[top].wantKey = false
				if t != "videoRenderer" {
					continue
				}
				var vr videoRenderer
				if err := dec.Decode(&vr); err != nil {
					return out, err
				}
				out = append(out, vr)
				stack[top].wantKey = true
				if len(out) >= limit {
					return out, nil
				}
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
}
