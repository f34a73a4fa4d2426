package textmetrics

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

const notAvailable = "N/A"

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Readability is the Flesch reading-ease and Flesch-Kincaid grade summary of a
// text. When the text has no sentences or words, Available is false and the
// grade and difficulty serialize as "N/A".
type Readability struct {
	Score         float64
	GradeLevel    float64
	Difficulty    string
	SentenceCount int
	WordCount     int
	SyllableCount int
	Available     bool
}

type readabilityJSON struct {
	Score         float64 `json:"score"`
	GradeLevel    any     `json:"gradeLevel"`
	Difficulty    string  `json:"difficulty"`
	SentenceCount int     `json:"sentenceCount"`
	WordCount     int     `json:"wordCount"`
	SyllableCount int     `json:"syllableCount"`
}

func (r Readability) MarshalJSON() ([]byte, error) {
	out := readabilityJSON{
		Score:         r.Score,
		GradeLevel:    r.GradeLevel,
		Difficulty:    r.Difficulty,
		SentenceCount: r.SentenceCount,
		WordCount:     r.WordCount,
		SyllableCount: r.SyllableCount,
	}
	if !r.Available {
		out.GradeLevel = notAvailable
		out.Difficulty = notAvailable
	}
	return json.Marshal(out)
}

// ScoreOr returns the reading-ease score, or fallback when the text was too
// short to measure.
func (r Readability) ScoreOr(fallback float64) float64 {
	if !r.Available {
		return fallback
	}
	return r.Score
}

// ComputeReadability measures text. Scores are rounded to one decimal.
func ComputeReadability(text string) Readability {
	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	words := len(strings.Fields(text))
	if sentences == 0 || words == 0 {
		return Readability{Difficulty: notAvailable, SentenceCount: sentences, WordCount: words}
	}

	syllables := CountSyllables(text)
	wordsPerSentence := float64(words) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(words)

	grade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	if grade < 0 {
		grade = 0
	}
	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	score = math.Max(0, math.Min(100, score))

	return Readability{
		Score:         round(score, 1),
		GradeLevel:    round(grade, 1),
		Difficulty:    difficultyFor(grade),
		SentenceCount: sentences,
		WordCount:     words,
		SyllableCount: syllables,
		Available:     true,
	}
}

func difficultyFor(grade float64) string {
	switch {
	case grade < 6:
		return "Easy (High School)"
	case grade < 9:
		return "Moderate (College)"
	case grade < 13:
		return "Difficult (Graduate)"
	default:
		return "Very Difficult (Professional)"
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
