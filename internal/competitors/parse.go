package competitors

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// MaxViewCount caps a parsed view count; larger readings are clamped to it.
const MaxViewCount int64 = 1e15

// ParseViewCount converts a human view string such as "1.2M views" or
// "12,345 views" into a count. Anything unparsable yields 0.
func ParseViewCount(text string) int64 {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" || strings.Contains(s, "no") {
		return 0
	}
	s = strings.ReplaceAll(s, "views", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult = 1e3
	case strings.HasSuffix(s, "m"):
		mult = 1e6
	case strings.HasSuffix(s, "b"):
		mult = 1e9
	}
	if mult != 1 {
		s = strings.TrimSpace(s[:len(s)-1])
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		n := math.Round(v * mult)
		if n < 0 {
			return 0
		}
		if n >= float64(MaxViewCount) {
			return MaxViewCount
		}
		return int64(n)
	}
	return min(digitsOnly(text), MaxViewCount)
}

func digitsOnly(text string) int64 {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return MaxViewCount
	}
	if err != nil {
		return 0
	}
	return n
}

var ageUnits = []struct {
	name string
	days float64
}{
	{"year", 365},
	{"month", 30},
	{"week", 7},
	{"day", 1},
	{"hour", 1.0 / 24},
	{"minute", 1.0 / 1440},
}

// ParseRelativeAge converts "2 weeks ago" or "Streamed 3 days ago" into days
// since publication. The second result is false when the text cannot be read.
func ParseRelativeAge(text string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" || strings.Contains(s, "no") {
		return 0, false
	}
	s = strings.ReplaceAll(s, "streamed", "")
	s = strings.ReplaceAll(s, "ago", "")

	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	for _, u := range ageUnits {
		if strings.Contains(fields[1], u.name) {
			return n * u.days, true
		}
	}
	return 0, false
}

// Parse reads both numeric signals from a record.
func Parse(r Record) Signal {
	days, ok := ParseRelativeAge(r.PublishDate)
	return Signal{
		ViewCount:        ParseViewCount(r.Views),
		DaysSincePublish: days,
		HasAge:           ok,
	}
}
