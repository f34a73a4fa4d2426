package competitors

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	highAverageViews   = 500_000
	mediumAverageViews = 100_000
	highMinEntries     = 5

	growingMaxDays   = 90
	decliningMinDays = 365

	lowCompetitionBonus = 10
	noDataBonus         = 20
)

var contentTypes = []string{"tutorial", "guide", "review", "unboxing", "vlog", "podcast"}

// Aggregate derives competition, difficulty, trend and content-type metrics
// from the competitor records of one keyword. Unparsable fields never drop a
// record; they only keep it out of the view or age statistics.
func Aggregate(records []Record) Metrics {
	var (
		views []int64
		ages  []float64
		total int64
	)
	for _, r := range records {
		sig := Parse(r)
		if sig.ViewCount > 0 {
			views = append(views, sig.ViewCount)
			total = addSaturating(total, sig.ViewCount)
		}
		if sig.HasAge {
			ages = append(ages, sig.DaysSincePublish)
		}
	}

	average := 0.0
	if len(views) > 0 {
		average = float64(total) / float64(len(views))
	}

	level, difficulty := competitionFor(len(views), average)
	score := 100 - difficulty
	if level == CompetitionLow {
		score += lowCompetitionBonus
	}
	if len(views) == 0 {
		score += noDataBonus
	}

	difficulty = clamp(difficulty)
	return Metrics{
		SearchVolume:         FormatVolume(float64(total)),
		Competition:          level,
		OverallScore:         clamp(score),
		Volume:               total,
		GlobalVolume:         FormatVolume(average),
		RankabilityRating:    Rankability(difficulty),
		KeywordDifficulty:    difficulty,
		Trend:                trendFor(ages),
		SuggestedContentType: contentTypeFor(records),
		TotalViews:           total,
		AverageViews:         average,
		SampleSize:           len(records),
	}
}

func addSaturating(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func competitionFor(entries int, average float64) (string, int) {
	switch {
	case entries >= highMinEntries && average >= highAverageViews:
		return CompetitionHigh, 80
	case average >= mediumAverageViews:
		return CompetitionMedium, 60
	default:
		return CompetitionLow, 30
	}
}

func trendFor(ages []float64) string {
	if len(ages) == 0 {
		return TrendStable
	}
	sorted := append([]float64(nil), ages...)
	sort.Float64s(sorted)
	median := sorted[(len(sorted)-1)/2]
	switch {
	case median <= growingMaxDays:
		return TrendGrowing
	case median >= decliningMinDays:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func contentTypeFor(records []Record) string {
	titles := make([]string, 0, len(records))
	for _, r := range records {
		titles = append(titles, strings.ToLower(r.Title))
	}
	joined := strings.Join(titles, " ")

	best, bestCount := "", 0
	for _, kind := range contentTypes {
		if n := strings.Count(joined, kind); n > bestCount {
			best, bestCount = kind, n
		}
	}
	if best == "" {
		return "Video"
	}
	return strings.ToUpper(best[:1]) + best[1:]
}

// Rankability maps keyword difficulty to a qualitative rating.
func Rankability(difficulty int) string {
	switch {
	case difficulty < 30:
		return "Excellent"
	case difficulty < 60:
		return "Good"
	case difficulty < 80:
		return "Fair"
	default:
		return "Difficult"
	}
}

// FormatVolume renders a view total with a one-decimal B/M/K suffix.
func FormatVolume(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.1fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	default:
		return fmt.Sprintf("%d", int64(n))
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
