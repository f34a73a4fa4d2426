package fetcher

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Options configures a Fetcher built from strategy names.
type Options struct {
	BaseURL   string
	UserAgent string
	Limit     int
	Timeout   time.Duration
	// RPS paces attempts; zero disables pacing.
	RPS   float64
	Burst int
}

// New builds a Fetcher from strategy names in order. "browser" expands to an
// optimized and a default headless Chrome launch; "http" parses the raw page.
func New(names []string, opts Options) (*Fetcher, error) {
	var strategies []Strategy
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
			continue
		case "browser":
			optimized := OptimizedBrowserOptions()
			optimized.UserAgent = opts.UserAgent
			standard := DefaultBrowserOptions()
			standard.UserAgent = opts.UserAgent
			strategies = append(strategies,
				&BrowserStrategy{Options: optimized, BaseURL: opts.BaseURL},
				&BrowserStrategy{Options: standard, BaseURL: opts.BaseURL},
			)
		case "http":
			strategies = append(strategies, NewHTTPStrategy(opts.BaseURL, opts.UserAgent, opts.Timeout))
		default:
			return nil, fmt.Errorf("unknown fetch strategy %q", name)
		}
	}

	f := &Fetcher{
		Strategies: strategies,
		Limit:      opts.Limit,
		Timeout:    opts.Timeout,
	}
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		f.Limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return f, nil
}
