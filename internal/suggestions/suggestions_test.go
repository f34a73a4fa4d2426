package suggestions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFullPayload(t *testing.T) {
	raw := []byte(`{
		"metrics": {"competition": "Low"},
		"titles": ["Go Tutorial for Beginners", "Learn Go Fast"],
		"descriptions": ["A description."],
		"tags": ["go", "golang tutorial"],
		"scriptOutline": {
			"hook": "Ever wanted to learn Go?",
			"introduction": "Today we cover Go.",
			"mainPoints": ["Install", "Hello world", "Modules"],
			"callToAction": "Subscribe!",
			"conclusion": "Bye"
		},
		"relatedKeywords": ["golang", "go modules"]
	}`)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "Go Tutorial for Beginners", got.PrimaryTitle())
	assert.Equal(t, "A description.", got.PrimaryDescription())
	assert.Equal(t, []string{"go", "golang tutorial"}, got.Tags)
	assert.Equal(t, "Ever wanted to learn Go?", got.ScriptOutline.Hook)
	assert.Len(t, got.ScriptOutline.MainPoints, 3)
	assert.Equal(t, []string{"golang", "go modules"}, got.RelatedKeywords)
}

func TestDecodeDefaultsMissingAndMistypedFields(t *testing.T) {
	raw := []byte(`{"titles": "Only one title", "tags": ["ok", 5, null, ""], "scriptOutline": "not an object", "descriptions": 42}`)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Only one title"}, got.Titles)
	assert.Equal(t, []string{"ok"}, got.Tags)
	assert.Empty(t, got.Descriptions)
	assert.NotNil(t, got.Descriptions)
	assert.Equal(t, ScriptOutline{MainPoints: []string{}}, got.ScriptOutline)
	assert.NotNil(t, got.RelatedKeywords)
}

func TestDecodeCodeFence(t *testing.T) {
	raw := []byte("```json\n{\"titles\": [\"Fenced\"]}\n```")
	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fenced"}, got.Titles)
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{"", "not json", "[1,2,3]", "null", `"text"`} {
		got, err := Decode([]byte(raw))
		assert.ErrorIs(t, err, ErrNotObject, raw)
		assert.NotNil(t, got.Titles)
		assert.NotNil(t, got.ScriptOutline.MainPoints)
	}
}

func TestNormalizeSerializesEmptyLists(t *testing.T) {
	b, err := json.Marshal(ContentSuggestion{}.Normalize())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"titles": [], "descriptions": [], "tags": [],
		"scriptOutline": {"hook": "", "introduction": "", "mainPoints": [], "callToAction": "", "conclusion": ""},
		"relatedKeywords": []
	}`, string(b))
}

func TestFallbackMentionsKeyword(t *testing.T) {
	got := Fallback("sourdough bread")
	require.NotEmpty(t, got.Titles)
	require.NotEmpty(t, got.Descriptions)
	assert.Contains(t, got.PrimaryTitle(), "sourdough bread")
	assert.Contains(t, got.Tags, "sourdough bread")
	assert.Contains(t, got.ScriptOutline.Hook, "sourdough bread")
	assert.Len(t, got.ScriptOutline.MainPoints, 3)
	assert.NotEmpty(t, got.ScriptOutline.CallToAction)
	assert.Empty(t, got.RelatedKeywords)
	assert.NotNil(t, got.RelatedKeywords)
	assert.Equal(t, got, Fallback("sourdough bread"))
}

func TestPrimaryOnEmpty(t *testing.T) {
	var c ContentSuggestion
	assert.Equal(t, "", c.PrimaryTitle())
	assert.Equal(t, "", c.PrimaryDescription())
}
