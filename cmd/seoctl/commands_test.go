package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"video-seo-backend/internal/llm"
)

func TestScoreCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"score",
		"--keyword", "go tutorial",
		"--title", "Go Tutorial for Beginners: Learn Go Fast in 2024 Today",
		"--tag", "go tutorial,golang for beginners",
		"--point", "one", "--point", "two", "--point", "three",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	var report struct {
		TitleOptimization struct {
			Score int `json:"score"`
		} `json:"titleOptimization"`
		ScriptStructure struct {
			MainPointsCount int `json:"mainPointsCount"`
		} `json:"scriptStructure"`
		OverallScore float64 `json:"overallScore"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if report.TitleOptimization.Score != 100 {
		t.Fatalf("expected title score 100, got %d", report.TitleOptimization.Score)
	}
	if report.ScriptStructure.MainPointsCount != 3 {
		t.Fatalf("expected 3 main points, got %d", report.ScriptStructure.MainPointsCount)
	}
}

func TestScoreCommandReadsIntroduction(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"score",
		"--keyword", "sourdough",
		"--hook", "Bread that actually rises.",
		"--intro", "Today we bake sourdough from scratch.",
		"--conclusion", "Enjoy your loaf.",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	var report struct {
		ScriptStructure struct {
			HasKeywordInHook bool `json:"hasKeywordInHook"`
		} `json:"scriptStructure"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if !report.ScriptStructure.HasKeywordInHook {
		t.Fatalf("expected keyword in introduction to count for the opening")
	}
}

func TestScoreCommandRequiresKeyword(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"score", "--title", "x"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error without keyword")
	}
}

type probeClient struct {
	fail map[string]bool
}

func (p probeClient) GenerateContent(ctx context.Context, input llm.ContentInput) (json.RawMessage, error) {
	if p.fail[input.Model] {
		return nil, errors.New("model not found")
	}
	return json.RawMessage(`{"titles":["t"]}`), nil
}

func TestProbeModels(t *testing.T) {
	models := llm.Models{Default: "a", Allowed: []string{"a", "b"}}
	got := probeModels(context.Background(), probeClient{fail: map[string]bool{"b": true}}, models, time.Second)

	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Model != "a" || !got[0].OK {
		t.Fatalf("unexpected first result: %+v", got[0])
	}
	if got[1].Model != "b" || got[1].OK || got[1].Error == "" {
		t.Fatalf("unexpected second result: %+v", got[1])
	}
}
