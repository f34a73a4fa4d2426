// Package suggestions holds the content suggestions produced for a keyword and
// decodes them from provider JSON, defaulting every field it cannot read.
package suggestions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotObject = errors.New("content suggestion payload is not a JSON object")

// ScriptOutline is the suggested structure of a video script.
type ScriptOutline struct {
	Hook         string   `json:"hook"`
	Introduction string   `json:"introduction"`
	MainPoints   []string `json:"mainPoints"`
	CallToAction string   `json:"callToAction"`
	Conclusion   string   `json:"conclusion"`
}

// ContentSuggestion is the generated (or caller supplied) content for a keyword.
type ContentSuggestion struct {
	Titles          []string      `json:"titles"`
	Descriptions    []string      `json:"descriptions"`
	Tags            []string      `json:"tags"`
	ScriptOutline   ScriptOutline `json:"scriptOutline"`
	RelatedKeywords []string      `json:"relatedKeywords"`
}

// Normalize replaces nil slices with empty ones so the value always
// serializes as lists.
func (c ContentSuggestion) Normalize() ContentSuggestion {
	c.Titles = orEmpty(c.Titles)
	c.Descriptions = orEmpty(c.Descriptions)
	c.Tags = orEmpty(c.Tags)
	c.RelatedKeywords = orEmpty(c.RelatedKeywords)
	c.ScriptOutline.MainPoints = orEmpty(c.ScriptOutline.MainPoints)
	return c
}

// PrimaryTitle returns the first suggested title or "".
func (c ContentSuggestion) PrimaryTitle() string { return first(c.Titles) }

// PrimaryDescription returns the first suggested description or "".
func (c ContentSuggestion) PrimaryDescription() string { return first(c.Descriptions) }

// Decode reads provider output. Markdown code fences are tolerated. Each field
// is decoded on its own: a missing or mistyped field becomes empty without
// affecting the others. Only a payload that is not a JSON object is an error.
func Decode(raw []byte) (ContentSuggestion, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(stripFences(raw), &fields); err != nil {
		return ContentSuggestion{}.Normalize(), fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if fields == nil {
		return ContentSuggestion{}.Normalize(), ErrNotObject
	}

	out := ContentSuggestion{
		Titles:          stringList(fields["titles"]),
		Descriptions:    stringList(fields["descriptions"]),
		Tags:            stringList(fields["tags"]),
		RelatedKeywords: stringList(fields["relatedKeywords"]),
	}

	var script map[string]json.RawMessage
	if raw, ok := fields["scriptOutline"]; ok && json.Unmarshal(raw, &script) == nil {
		out.ScriptOutline = ScriptOutline{
			Hook:         stringValue(script["hook"]),
			Introduction: stringValue(script["introduction"]),
			MainPoints:   stringList(script["mainPoints"]),
			CallToAction: stringValue(script["callToAction"]),
			Conclusion:   stringValue(script["conclusion"]),
		}
	}
	return out.Normalize(), nil
}

// Fallback builds deterministic templated content for keyword. It is used
// when the provider is unavailable or its output cannot be read.
func Fallback(keyword string) ContentSuggestion {
	kw := strings.TrimSpace(keyword)
	return ContentSuggestion{
		Titles: []string{
			fmt.Sprintf("%s: Complete Guide for Beginners", kw),
			fmt.Sprintf("How to Get Started with %s", kw),
			fmt.Sprintf("%s Tips You Need to Know", kw),
		},
		Descriptions: []string{
			fmt.Sprintf("Learn everything you need to know about %s in this video. We cover the basics, common mistakes and practical tips so you can get results faster. Watch until the end and subscribe for more.", kw),
		},
		Tags: []string{
			kw,
			kw + " tutorial",
			kw + " guide",
			"how to " + kw,
			kw + " for beginners",
		},
		ScriptOutline: ScriptOutline{
			Hook:         fmt.Sprintf("Want to master %s? Here is what most people get wrong.", kw),
			Introduction: fmt.Sprintf("In this video we break down %s step by step.", kw),
			MainPoints: []string{
				fmt.Sprintf("What %s is and why it matters", kw),
				fmt.Sprintf("Getting started with %s", kw),
				fmt.Sprintf("Common %s mistakes to avoid", kw),
			},
			CallToAction: "Subscribe and turn on notifications for more videos like this.",
			Conclusion:   fmt.Sprintf("Now you know the essentials of %s.", kw),
		},
		RelatedKeywords: []string{},
	}
}

func stripFences(raw []byte) []byte {
	b := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = bytes.TrimPrefix(b, []byte("```"))
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}

// stringList keeps the string elements of a JSON array. A bare string is
// treated as a one-element list.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := stringValue(raw); s != "" {
			return []string{s}
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringValue(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
