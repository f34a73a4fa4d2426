package onpage

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-seo-backend/internal/suggestions"
	"video-seo-backend/internal/textmetrics"
)

func TestAnalyzeTitle(t *testing.T) {
	t.Run("ideal title scores 100", func(t *testing.T) {
		title := "Golang Tutorial: Build Your First Web APIs with Go"
		require.Equal(t, 50, utf8.RuneCountInString(title))

		rep := AnalyzeTitle(title, "golang tutorial")
		assert.Equal(t, 100, rep.Score)
		assert.True(t, rep.KeywordInFirst30)
		assert.Equal(t, 50, rep.Length)
	})

	t.Run("short shouting title", func(t *testing.T) {
		rep := AnalyzeTitle("GO!!! TIPS?", "go")
		// length 85, clarity 75
		assert.Equal(t, 80, rep.Score)
		assert.Len(t, rep.Recommendations, 4)
	})

	t.Run("long title without keyword up front", func(t *testing.T) {
		title := strings.Repeat("word ", 15) + "golang"
		rep := AnalyzeTitle(title, "golang")
		assert.False(t, rep.KeywordInFirst30)
		assert.Equal(t, 87, rep.Score)
	})

	t.Run("empty title", func(t *testing.T) {
		rep := AnalyzeTitle("", "golang")
		assert.Equal(t, 85, rep.Score)
	})
}

func TestAnalyzeDescription(t *testing.T) {
	t.Run("short without keyword or call to action", func(t *testing.T) {
		rep := AnalyzeDescription("Short text.", "golang")
		assert.Equal(t, 55, rep.Score)
		assert.False(t, rep.HasCTA)
		assert.Zero(t, rep.KeywordCount)
	})

	t.Run("good description", func(t *testing.T) {
		d := "Learn golang from scratch in this beginner friendly walkthrough covering setup, syntax and your first program. Subscribe for weekly lessons!"
		rep := AnalyzeDescription(d, "golang")
		assert.Equal(t, 100, rep.Score)
		assert.Equal(t, 140, rep.CharacterCount)
		assert.Equal(t, 1, rep.KeywordCount)
		assert.True(t, rep.HasCTA)
	})

	t.Run("long description is advisory only", func(t *testing.T) {
		d := "golang " + strings.Repeat("subscribe ", 30)
		rep := AnalyzeDescription(d, "golang")
		assert.Greater(t, rep.CharacterCount, 200)
		assert.Equal(t, 100, rep.Score)
	})
}

func TestAnalyzeTags(t *testing.T) {
	t.Run("well formed tags", func(t *testing.T) {
		tags := []string{"golang", "golang tutorial", "learn go fast", "go web api", "backend", "programming"}
		rep := AnalyzeTags(tags, "golang")
		assert.Equal(t, 100, rep.Score)
		assert.Equal(t, 3, rep.LongTailCount)
		assert.True(t, rep.HasKeyword)
	})

	t.Run("no tags", func(t *testing.T) {
		rep := AnalyzeTags(nil, "golang")
		assert.Equal(t, 70, rep.Score)
	})

	t.Run("too many single word tags", func(t *testing.T) {
		tags := make([]string, 25)
		for i := range tags {
			tags[i] = "tag"
		}
		rep := AnalyzeTags(tags, "golang")
		assert.Equal(t, 75, rep.Score)
	})
}

func TestAnalyzeScript(t *testing.T) {
	full := suggestions.ScriptOutline{
		Hook:         "Want to learn Golang?",
		Introduction: "Today we build an API.",
		MainPoints:   []string{"Setup", "Routing", "Testing"},
		CallToAction: "Subscribe for more.",
	}
	assert.Equal(t, 100, AnalyzeScript(full, "golang").Score)

	empty := AnalyzeScript(suggestions.ScriptOutline{CallToAction: "   "}, "golang")
	assert.Equal(t, 65, empty.Score)
	assert.False(t, empty.HasCallToAction)
}

func TestAnalyzeEmptyContent(t *testing.T) {
	rep := Analyze(suggestions.ContentSuggestion{}, "golang")

	assert.Equal(t, 85, rep.TitleOptimization.Score)
	assert.Equal(t, 55, rep.DescriptionOptimization.Score)
	assert.Equal(t, 70, rep.TagsOptimization.Score)
	assert.Equal(t, 65, rep.ScriptStructure.Score)
	assert.False(t, rep.TitleReadability.Available)
	assert.Equal(t, 62.5, rep.OverallScore)
	assert.Equal(t, textmetrics.StatusInsufficient, rep.KeywordDensity.Title.Status)
	assert.Len(t, rep.AllRecommendations, 11)
}

func TestAnalyzeRecommendationOrder(t *testing.T) {
	rep := Analyze(suggestions.Fallback("golang"), "golang")

	want := append([]string{}, rep.TitleOptimization.Recommendations...)
	want = append(want, rep.DescriptionOptimization.Recommendations...)
	want = append(want, rep.TagsOptimization.Recommendations...)
	want = append(want, rep.ScriptStructure.Recommendations...)
	assert.Equal(t, want, rep.AllRecommendations)
	assert.Contains(t, rep.KeywordDensity.Summary, "Title: ")
	assert.True(t, rep.TitleReadability.Available)
	assert.Greater(t, rep.OverallScore, 0.0)
	assert.LessOrEqual(t, rep.OverallScore, 100.0)
}
