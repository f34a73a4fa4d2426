package llm

import (
	_ "embed"
	"strings"
)

// DefaultPromptVersion is used when a caller does not name one.
const DefaultPromptVersion = "v1"

var (
	//go:embed prompts/content_v1.txt
	contentV1 string
)

// PromptTemplate returns the prompt template text and whether the version was recognized.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "v1":
		return contentV1, true
	default:
		return contentV1, false
	}
}

// BuildContentPrompt renders the content prompt for keyword.
func BuildContentPrompt(version, keyword string) string {
	template, _ := PromptTemplate(strings.TrimSpace(version))
	return strings.ReplaceAll(template, "{{KEYWORD}}", strings.TrimSpace(keyword))
}
