package onpage

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"video-seo-backend/internal/suggestions"
	"video-seo-backend/internal/textmetrics"
)

const (
	titleMinLength    = 30
	titleMaxLength    = 70
	titleKeywordSpan  = 30
	titleMaxPunct     = 2
	descMinLength     = 120
	descMaxLength     = 200
	tagsMin           = 5
	tagsMax           = 20
	longTailMin       = 3
	scriptMinPoints   = 3
	clarityPunctChars = "!?;:"
)

var ctaWords = []string{"watch", "subscribe", "click", "learn", "visit", "check", "read", "explore", "discover", "join"}

// AnalyzeTitle scores length, keyword placement and clarity. Length and
// placement share one sub-score, clarity another; the result is their mean.
func AnalyzeTitle(title, keyword string) TitleReport {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	length := utf8.RuneCountInString(title)
	rep := TitleReport{Length: length}

	score := 100
	switch {
	case length < titleMinLength:
		score -= 15
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Title is %d characters; lengthen it to at least %d so it describes the video fully.", length, titleMinLength))
	case length > titleMaxLength:
		score -= 10
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Title is %d characters; shorten it below %d so it is not truncated in search results.", length, titleMaxLength))
	default:
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Title length of %d characters is within the ideal %d-%d range.", length, titleMinLength, titleMaxLength))
	}

	rep.KeywordInFirst30 = strings.Contains(strings.ToLower(prefix(title, titleKeywordSpan)), kw)
	if rep.KeywordInFirst30 {
		rep.Recommendations = append(rep.Recommendations, "Keyword appears in the first 30 characters of the title.")
	} else {
		score -= 15
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Move the keyword %q into the first %d characters of the title.", keyword, titleKeywordSpan))
	}

	clarity := 100
	if punct := strings.Count(title, "!") + strings.Count(title, "?") + strings.Count(title, ";") + strings.Count(title, ":"); punct > titleMaxPunct {
		clarity -= 10
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Title uses %d of the marks %s; keep it to %d or fewer for clarity.", punct, clarityPunctChars, titleMaxPunct))
	}
	if isAllUpper(title) {
		clarity -= 15
		rep.Recommendations = append(rep.Recommendations, "Avoid writing the whole title in capital letters.")
	}

	rep.Score = clamp((clamp(score) + clamp(clarity)) / 2)
	return rep
}

// AnalyzeDescription scores description length, keyword usage and the presence
// of a call to action. Long descriptions are only flagged, never penalized.
func AnalyzeDescription(description, keyword string) DescriptionReport {
	chars := utf8.RuneCountInString(description)
	rep := DescriptionReport{
		CharacterCount: chars,
		WordCount:      len(strings.Fields(description)),
	}

	score := 100
	switch {
	case chars < descMinLength:
		score -= 15
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Description is %d characters; expand it to at least %d.", chars, descMinLength))
	case chars > descMaxLength:
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Description is %d characters; make sure the first %d carry the key message.", chars, descMaxLength))
	default:
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Description length of %d characters is good.", chars))
	}

	rep.KeywordCount = textmetrics.KeywordDensity(description, keyword).Count
	if rep.KeywordCount == 0 {
		score -= 20
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Include the keyword %q in the description.", keyword))
	} else {
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Keyword appears %d time(s) in the description.", rep.KeywordCount))
	}

	lower := strings.ToLower(description)
	for _, w := range ctaWords {
		if strings.Contains(lower, w) {
			rep.HasCTA = true
			break
		}
	}
	if rep.HasCTA {
		rep.Recommendations = append(rep.Recommendations, "Description includes a call to action.")
	} else {
		score -= 10
		rep.Recommendations = append(rep.Recommendations,
			"Add a call to action such as asking viewers to subscribe or watch another video.")
	}

	rep.Score = clamp(score)
	return rep
}

// AnalyzeTags scores tag count, keyword coverage and long-tail tags.
func AnalyzeTags(tags []string, keyword string) TagsReport {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	rep := TagsReport{Count: len(tags)}

	score := 100
	switch {
	case rep.Count < tagsMin:
		score -= 15
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Only %d tags; add more to reach at least %d.", rep.Count, tagsMin))
	case rep.Count > tagsMax:
		score -= 10
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("%d tags is too many; keep the %d most relevant.", rep.Count, tagsMax))
	default:
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Tag count of %d is in the recommended range.", rep.Count))
	}

	for _, tag := range tags {
		if kw != "" && strings.Contains(strings.ToLower(tag), kw) {
			rep.HasKeyword = true
		}
		if len(strings.Fields(tag)) >= 2 {
			rep.LongTailCount++
		}
	}

	if rep.HasKeyword {
		rep.Recommendations = append(rep.Recommendations, "Tags include the target keyword.")
	} else {
		score -= 10
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Add the keyword %q as a tag.", keyword))
	}

	if rep.LongTailCount < longTailMin {
		score -= 5
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Only %d long-tail tags; add multi-word phrases viewers search for.", rep.LongTailCount))
	} else {
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("%d long-tail tags help capture specific searches.", rep.LongTailCount))
	}

	rep.Score = clamp(score)
	return rep
}

// AnalyzeScript scores whether the opening mentions the keyword, the number of
// main points and the presence of a call to action.
func AnalyzeScript(script suggestions.ScriptOutline, keyword string) ScriptReport {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	opening := strings.ToLower(script.Hook + " " + script.Introduction)
	rep := ScriptReport{
		HasKeywordInHook: kw != "" && strings.Contains(opening, kw),
		MainPointsCount:  len(script.MainPoints),
		HasCallToAction:  strings.TrimSpace(script.CallToAction) != "",
	}

	score := 100
	if rep.HasKeywordInHook {
		rep.Recommendations = append(rep.Recommendations, "The hook or introduction mentions the keyword.")
	} else {
		score -= 15
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Mention %q in the hook or introduction so viewers know they are in the right place.", keyword))
	}

	if rep.MainPointsCount >= scriptMinPoints {
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Script covers %d main points.", rep.MainPointsCount))
	} else {
		score -= 10
		rep.Recommendations = append(rep.Recommendations,
			fmt.Sprintf("Script has %d main points; plan at least %d.", rep.MainPointsCount, scriptMinPoints))
	}

	if rep.HasCallToAction {
		rep.Recommendations = append(rep.Recommendations, "Script ends with a call to action.")
	} else {
		score -= 10
		rep.Recommendations = append(rep.Recommendations, "Add a call to action near the end of the script.")
	}

	rep.Score = clamp(score)
	return rep
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
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
