// Package onpage scores suggested video metadata (title, description, tags and
// script outline) against keyword placement and readability heuristics.
package onpage

import "video-seo-backend/internal/textmetrics"

type TitleReport struct {
	Score            int      `json:"score"`
	Length           int      `json:"length"`
	KeywordInFirst30 bool     `json:"keywordInFirst30"`
	Recommendations  []string `json:"recommendations"`
}

type DescriptionReport struct {
	Score           int      `json:"score"`
	CharacterCount  int      `json:"characterCount"`
	WordCount       int      `json:"wordCount"`
	KeywordCount    int      `json:"keywordCount"`
	HasCTA          bool     `json:"hasCTA"`
	Recommendations []string `json:"recommendations"`
}

type TagsReport struct {
	Score           int      `json:"score"`
	Count           int      `json:"count"`
	LongTailCount   int      `json:"longTailCount"`
	HasKeyword      bool     `json:"hasKeyword"`
	Recommendations []string `json:"recommendations"`
}

type ScriptReport struct {
	Score            int      `json:"score"`
	HasKeywordInHook bool     `json:"hasKeywordInHook"`
	MainPointsCount  int      `json:"mainPointsCount"`
	HasCallToAction  bool     `json:"hasCallToAction"`
	Recommendations  []string `json:"recommendations"`
}

// DensityReport breaks keyword density down per field.
type DensityReport struct {
	Title       textmetrics.Density `json:"title"`
	Description textmetrics.Density `json:"description"`
	Tags        textmetrics.Density `json:"tags"`
	Summary     string              `json:"summary"`
}

// Report is the full on-page optimization result for one piece of content.
type Report struct {
	TitleOptimization       TitleReport             `json:"titleOptimization"`
	DescriptionOptimization DescriptionReport       `json:"descriptionOptimization"`
	TagsOptimization        TagsReport              `json:"tagsOptimization"`
	ScriptStructure         ScriptReport            `json:"scriptStructure"`
	KeywordDensity          DensityReport           `json:"keywordDensity"`
	TitleReadability        textmetrics.Readability `json:"titleReadability"`
	DescriptionReadability  textmetrics.Readability `json:"descriptionReadability"`
	OverallScore            float64                 `json:"overallScore"`
	AllRecommendations      []string                `json:"allRecommendations"`
}
