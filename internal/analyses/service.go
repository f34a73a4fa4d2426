package analyses

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"video-seo-backend/internal/competitors"
	"video-seo-backend/internal/history"
	"video-seo-backend/internal/llm"
	"video-seo-backend/internal/onpage"
	"video-seo-backend/internal/shared/metrics"
	"video-seo-backend/internal/shared/telemetry"
	"video-seo-backend/internal/suggestions"
)

const historyTimeout = 5 * time.Second

// CompetitorFetcher loads the top competing listings for a keyword. It never
// fails; on total failure it returns the failure record.
type CompetitorFetcher interface {
	Fetch(ctx context.Context, keyword string) []competitors.Record
}

// Service runs keyword analyses.
type Service struct {
	Fetcher       CompetitorFetcher
	LLM           llm.Client
	Cache         *Cache
	History       history.Repo
	Models        llm.Models
	PromptVersion string
	// Timeout bounds one analysis end to end; zero means no extra bound.
	Timeout time.Duration

	now func() time.Time
}

// Analyze returns the analysis for keyword, serving it from the cache when fresh.
func (s *Service) Analyze(ctx context.Context, keyword string, opts Options) (*Result, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrInvalidKeyword
	}

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(keyword); ok {
			metrics.IncCacheHit()
			telemetry.Info("analysis.cache_hit", map[string]any{"keyword": keyword})
			return cached, nil
		}
		metrics.IncCacheMiss()
	}

	start := s.clock()
	model := s.Models.Resolve(opts.Model)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		records []competitors.Record
		content suggestions.ContentSuggestion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records = s.fetch(gctx, keyword)
		return nil
	})
	g.Go(func() error {
		content = s.generate(gctx, keyword, model)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Warn("analysis.canceled", map[string]any{
			"keyword": keyword,
			"error":   err.Error(),
		})
		return nil, err
	}

	result := assemble(keyword, records, content)
	if s.Cache != nil {
		s.Cache.Set(keyword, result)
	}
	s.complete(ctx, keyword, model, history.SourceGenerated, result, start)
	return result, nil
}

// AnalyzeCustom scores caller-written content against live competitors.
// Results are never cached.
func (s *Service) AnalyzeCustom(ctx context.Context, custom CustomContent) (*Result, error) {
	keyword := strings.TrimSpace(custom.Keyword)
	if keyword == "" {
		return nil, ErrInvalidKeyword
	}

	start := s.clock()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	records := s.fetch(ctx, keyword)
	if err := ctx.Err(); err != nil {
		metrics.IncAnalysisFailed()
		return nil, err
	}

	result := assemble(keyword, records, custom.suggestion())
	s.complete(ctx, keyword, "", history.SourceCustom, result, start)
	return result, nil
}

// ClearCache empties the result cache and reports how many entries were removed.
func (s *Service) ClearCache() int {
	if s.Cache == nil {
		return 0
	}
	n := s.Cache.Clear()
	telemetry.Info("analysis.cache_cleared", map[string]any{"removed": n})
	return n
}

func (s *Service) fetch(ctx context.Context, keyword string) []competitors.Record {
	if s.Fetcher == nil {
		return []competitors.Record{competitors.FailureRecord()}
	}
	return s.Fetcher.Fetch(ctx, keyword)
}

func (s *Service) generate(ctx context.Context, keyword, model string) suggestions.ContentSuggestion {
	if s.LLM == nil {
		return s.fallback(ctx, keyword, model, llm.ErrNotImplemented)
	}
	raw, err := s.LLM.GenerateContent(ctx, llm.ContentInput{
		Keyword:       keyword,
		Model:         model,
		PromptVersion: s.PromptVersion,
	})
	if err != nil {
		return s.fallback(ctx, keyword, model, err)
	}
	content, err := suggestions.Decode(raw)
	if err != nil {
		return s.fallback(ctx, keyword, model, err)
	}
	return content
}

func (s *Service) fallback(ctx context.Context, keyword, model string, cause error) suggestions.ContentSuggestion {
	if ctx.Err() == nil {
		metrics.IncContentFallback()
		telemetry.Warn("analysis.content_fallback", map[string]any{
			"keyword": keyword,
			"model":   model,
			"error":   llm.SanitizeError(cause),
		})
	}
	return suggestions.Fallback(keyword)
}

func (s *Service) complete(ctx context.Context, keyword, model, source string, result *Result, start time.Time) {
	elapsed := s.clock().Sub(start)
	metrics.IncAnalysis()
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("analysis.complete", map[string]any{
		"keyword":       keyword,
		"model":         model,
		"source":        source,
		"competition":   result.SEOData.Metrics.Competition,
		"overall_score": result.OnPageRecommendations.OverallScore,
		"videos":        len(result.VideoData),
		"duration_ms":   elapsed.Milliseconds(),
	})

	if s.History == nil {
		return
	}
	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyTimeout)
	defer cancel()
	entry := history.NewEntry(
		keyword,
		model,
		source,
		result.OnPageRecommendations.OverallScore,
		result.SEOData.Metrics.Competition,
		result.SEOData.Metrics.KeywordDifficulty,
		s.clock(),
	)
	if err := s.History.Create(hctx, entry); err != nil {
		telemetry.Error("history.record_failed", map[string]any{
			"keyword": keyword,
			"error":   err.Error(),
		})
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(ctx, s.Timeout)
	}
	return context.WithCancel(ctx)
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func assemble(keyword string, records []competitors.Record, content suggestions.ContentSuggestion) *Result {
	content = content.Normalize()
	return &Result{
		SEOData: SEOData{
			Metrics:           competitors.Aggregate(records),
			ContentSuggestion: content,
		},
		VideoData:             records,
		OnPageRecommendations: onpage.Analyze(content, keyword),
	}
}
