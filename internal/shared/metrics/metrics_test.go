package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	var cumulative uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
	}
	if cumulative != 2 {
		t.Fatalf("expected 2 bucketed observations, got %d", cumulative)
	}
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot count=%d sum=%v", snap.count, snap.sum)
	}
}

func TestRenderIncludesCounters(t *testing.T) {
	IncCacheHit()
	IncContentFallback()
	ObserveAnalysisDurationMs(120)

	out := Render()
	for _, name := range []string{
		"analysis_total",
		"analysis_cache_hits_total",
		"content_fallback_total",
		"competitor_fetch_fallback_total",
		`analysis_duration_ms_bucket{le="250"}`,
		`analysis_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output:\n%s", name, out)
		}
	}
}
