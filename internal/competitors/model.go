// Package competitors turns scraped competitor listings into numeric
// competitiveness signals for a keyword.
package competitors

// Markers written by the fetcher when a listing lacks a field.
const (
	NoViews      = "No Views"
	NoDate       = "No Date"
	Unavailable  = "N/A"
	FailureTitle = "Could not fetch videos"
)

// MaxRecords bounds how many competitor listings are considered per keyword.
const MaxRecords = 5

// Record is one competing search result as displayed on the results page.
type Record struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	ChannelName string `json:"channelName"`
	Views       string `json:"views"`
	PublishDate string `json:"publishDate"`
}

// FailureRecord is returned in place of real listings when every fetch
// strategy failed.
func FailureRecord() Record {
	return Record{
		Title:       FailureTitle,
		URL:         "#",
		ChannelName: "Error",
		Views:       Unavailable,
		PublishDate: Unavailable,
	}
}

// IsFailure reports whether records is the fetch-failure placeholder.
func IsFailure(records []Record) bool {
	return len(records) == 1 && records[0].Title == FailureTitle && records[0].URL == "#"
}

// Signal is the parsed numeric form of a Record.
type Signal struct {
	ViewCount        int64
	DaysSincePublish float64
	HasAge           bool
}

// Competition levels.
const (
	CompetitionLow    = "Low"
	CompetitionMedium = "Medium"
	CompetitionHigh   = "High"
)

// Trend labels.
const (
	TrendGrowing   = "Growing"
	TrendStable    = "Stable"
	TrendDeclining = "Declining"
)

// Metrics aggregates the signals of every competitor record for a keyword.
type Metrics struct {
	SearchVolume         string  `json:"searchVolume"`
	Competition          string  `json:"competition"`
	OverallScore         int     `json:"overallScore"`
	Volume               int64   `json:"volume"`
	GlobalVolume         string  `json:"globalVolume"`
	RankabilityRating    string  `json:"rankabilityRating"`
	KeywordDifficulty    int     `json:"keywordDifficulty"`
	Trend                string  `json:"trend"`
	SuggestedContentType string  `json:"suggestedContentType"`
	TotalViews           int64   `json:"totalViews"`
	AverageViews         float64 `json:"averageViews"`
	SampleSize           int     `json:"sampleSize"`
}
