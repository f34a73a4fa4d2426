package onpage

import (
	"fmt"
	"math"
	"strings"

	"video-seo-backend/internal/suggestions"
	"video-seo-backend/internal/textmetrics"
)

// unmeasuredReadability stands in for a readability score when the text is
// too short to measure.
const unmeasuredReadability = 50

// Analyze scores content for keyword. The first suggested title and
// description are treated as primary; empty content still yields a report.
func Analyze(content suggestions.ContentSuggestion, keyword string) Report {
	title := content.PrimaryTitle()
	description := content.PrimaryDescription()

	rep := Report{
		TitleOptimization:       AnalyzeTitle(title, keyword),
		DescriptionOptimization: AnalyzeDescription(description, keyword),
		TagsOptimization:        AnalyzeTags(content.Tags, keyword),
		ScriptStructure:         AnalyzeScript(content.ScriptOutline, keyword),
		TitleReadability:        textmetrics.ComputeReadability(title),
		DescriptionReadability:  textmetrics.ComputeReadability(description),
	}

	rep.KeywordDensity = DensityReport{
		Title:       textmetrics.KeywordDensity(title, keyword),
		Description: textmetrics.KeywordDensity(description, keyword),
		Tags:        textmetrics.KeywordDensity(strings.Join(content.Tags, " "), keyword),
	}
	rep.KeywordDensity.Summary = fmt.Sprintf("Title: %s, Description: %s, Tags: %s",
		rep.KeywordDensity.Title.Status,
		rep.KeywordDensity.Description.Status,
		rep.KeywordDensity.Tags.Status)

	scores := []float64{
		float64(rep.TitleOptimization.Score),
		float64(rep.DescriptionOptimization.Score),
		float64(rep.TagsOptimization.Score),
		float64(rep.ScriptStructure.Score),
		rep.TitleReadability.ScoreOr(unmeasuredReadability),
		rep.DescriptionReadability.ScoreOr(unmeasuredReadability),
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	rep.OverallScore = math.Round(sum/float64(len(scores))*10) / 10

	all := make([]string, 0,
		len(rep.TitleOptimization.Recommendations)+
			len(rep.DescriptionOptimization.Recommendations)+
			len(rep.TagsOptimization.Recommendations)+
			len(rep.ScriptStructure.Recommendations))
	all = append(all, rep.TitleOptimization.Recommendations...)
	all = append(all, rep.DescriptionOptimization.Recommendations...)
	all = append(all, rep.TagsOptimization.Recommendations...)
	all = append(all, rep.ScriptStructure.Recommendations...)
	rep.AllRecommendations = all

	return rep
}
