package textmetrics

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Density statuses.
const (
	StatusInsufficient = "insufficient_data"
	StatusTooLow       = "too_low"
	StatusTooHigh      = "too_high"
	StatusOptimal      = "optimal"
)

const (
	minDensity = 0.5
	maxDensity = 2.5
)

// Density reports how often a keyword appears in a text as a whole word.
type Density struct {
	Density        float64 `json:"density"`
	Count          int     `json:"count"`
	WordCount      int     `json:"wordCount"`
	Status         string  `json:"status"`
	Recommendation string  `json:"recommendation"`
}

// KeywordDensity counts case-insensitive whole-word matches of keyword in
// text. "cat" does not match inside "category".
func KeywordDensity(text, keyword string) Density {
	keyword = strings.TrimSpace(keyword)
	words := len(strings.Fields(text))
	if strings.TrimSpace(text) == "" || keyword == "" || words == 0 {
		return Density{
			Status:         StatusInsufficient,
			Recommendation: "Not enough text to measure keyword usage.",
		}
	}

	count := CountKeyword(text, keyword)
	density := round(100*float64(count)/float64(words), 2)

	d := Density{Density: density, Count: count, WordCount: words}
	switch {
	case density < minDensity:
		d.Status = StatusTooLow
		d.Recommendation = "Use the keyword a little more often so viewers and search can tell what the video is about."
	case density > maxDensity:
		d.Status = StatusTooHigh
		d.Recommendation = "The keyword appears too often and may read as stuffing; replace some uses with natural variations."
	default:
		d.Status = StatusOptimal
		d.Recommendation = "Keyword usage is in the recommended range."
	}
	return d
}

// CountKeyword returns the number of whole-word, case-insensitive matches.
// Letters, digits and underscores in any script count as word characters, so
// "caf" does not match inside "café".
func CountKeyword(text, keyword string) int {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || text == "" {
		return 0
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(keyword))
	if err != nil {
		return 0
	}
	first, _ := utf8.DecodeRuneInString(keyword)
	last, _ := utf8.DecodeLastRuneInString(keyword)

	count, pos := 0, 0
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		startOK := start == 0 || !isWordRune(first) || !isWordRune(before)
		endOK := end == len(text) || !isWordRune(last) || !isWordRune(after)
		if startOK && endOK {
			count++
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
