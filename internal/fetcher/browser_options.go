package fetcher

import "github.com/chromedp/chromedp"

const (
	defaultWindowWidth  = 1366
	defaultWindowHeight = 900
)

// BrowserOptions contains configuration for headless Chrome.
type BrowserOptions struct {
	Optimized    bool
	BlockImages  bool
	WindowWidth  int
	WindowHeight int
	UserAgent    string
}

// DefaultBrowserOptions returns standard browser options.
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{
		WindowWidth:  defaultWindowWidth,
		WindowHeight: defaultWindowHeight,
	}
}

// OptimizedBrowserOptions skips images and extensions for faster loads.
func OptimizedBrowserOptions() BrowserOptions {
	return BrowserOptions{
		Optimized:    true,
		BlockImages:  true,
		WindowWidth:  defaultWindowWidth,
		WindowHeight: defaultWindowHeight,
	}
}

// BuildChromeOptions creates allocator options from opts.
func BuildChromeOptions(opts BrowserOptions) []chromedp.ExecAllocatorOption {
	chromeOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
	)

	if opts.UserAgent != "" {
		chromeOpts = append(chromeOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if opts.Optimized {
		if opts.BlockImages {
			chromeOpts = append(chromeOpts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
		}
		chromeOpts = append(chromeOpts,
			chromedp.Flag("disable-plugins", true),
			chromedp.Flag("disable-extensions", true),
		)
	}

	return chromeOpts
}
