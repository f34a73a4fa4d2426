package history

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceGenerated = "generated"
	SourceCustom    = "custom"
)

// Entry summarizes one computed keyword analysis.
type Entry struct {
	ID                string    `json:"id"`
	Keyword           string    `json:"keyword"`
	Model             string    `json:"model,omitempty"`
	Source            string    `json:"source"`
	OverallScore      float64   `json:"overallScore"`
	Competition       string    `json:"competition"`
	KeywordDifficulty int       `json:"keywordDifficulty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewEntry builds an Entry with a fresh ID.
func NewEntry(keyword, model, source string, overallScore float64, competition string, difficulty int, at time.Time) Entry {
	return Entry{
		ID:                uuid.NewString(),
		Keyword:           keyword,
		Model:             model,
		Source:            source,
		OverallScore:      overallScore,
		Competition:       competition,
		KeywordDifficulty: difficulty,
		CreatedAt:         at.UTC(),
	}
}
