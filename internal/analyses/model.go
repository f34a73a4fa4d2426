package analyses

import (
	"video-seo-backend/internal/competitors"
	"video-seo-backend/internal/onpage"
	"video-seo-backend/internal/suggestions"
)

// SEOData pairs competitor metrics with the content suggestions they were scored against.
type SEOData struct {
	Metrics competitors.Metrics `json:"metrics"`
	suggestions.ContentSuggestion
}

// Result is the full analysis payload returned to clients.
type Result struct {
	SEOData               SEOData              `json:"seoData"`
	VideoData             []competitors.Record `json:"videoData"`
	OnPageRecommendations onpage.Report        `json:"onPageRecommendations"`
}

// Options tunes a single analysis.
type Options struct {
	// Model requests a provider model; unknown or empty values use the default.
	Model string
}

// CustomContent is caller-written content to score instead of generated suggestions.
type CustomContent struct {
	Keyword       string                    `json:"keyword"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	Tags          []string                  `json:"tags"`
	ScriptOutline suggestions.ScriptOutline `json:"scriptOutline"`
}

func (c CustomContent) suggestion() suggestions.ContentSuggestion {
	content := suggestions.ContentSuggestion{
		Tags:          c.Tags,
		ScriptOutline: c.ScriptOutline,
	}
	if t := c.Title; t != "" {
		content.Titles = []string{t}
	}
	if d := c.Description; d != "" {
		content.Descriptions = []string{d}
	}
	return content.Normalize()
}
