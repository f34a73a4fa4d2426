package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) GenerateContent(ctx context.Context, input ContentInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	s.calls++
	if s.calls <= len(s.errs) && s.errs[s.calls-1] != nil {
		return nil, s.errs[s.calls-1]
	}
	return json.RawMessage(`{"titles":["ok"]}`), nil
}

func TestRetryOnTimeoutSucceeds(t *testing.T) {
	base := &scriptedClient{errs: []error{context.DeadlineExceeded}}
	client := retryingClient{base: base, delay: time.Millisecond}

	raw, err := client.GenerateContent(context.Background(), ContentInput{Keyword: "golang"})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if string(raw) != `{"titles":["ok"]}` {
		t.Fatalf("unexpected response %s", raw)
	}
	if base.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", base.calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("gemini http status 400: bad request")}}
	client := retryingClient{base: base, delay: time.Millisecond}

	if _, err := client.GenerateContent(context.Background(), ContentInput{}); err == nil {
		t.Fatalf("expected error")
	}
	if base.calls != 1 {
		t.Fatalf("expected 1 call, got %d", base.calls)
	}
}

func TestRetryOnlyOnce(t *testing.T) {
	transient := fmt.Errorf("gemini http status 503: overloaded")
	base := &scriptedClient{errs: []error{transient, transient, transient}}
	client := retryingClient{base: base, delay: time.Millisecond}

	if _, err := client.GenerateContent(context.Background(), ContentInput{}); err == nil {
		t.Fatalf("expected error after retry")
	}
	if base.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", base.calls)
	}
}

func TestRetryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	base := &scriptedClient{errs: []error{errors.New("connection reset by peer")}}
	client := retryingClient{base: base, delay: time.Hour}

	done := make(chan error, 1)
	go func() {
		_, err := client.GenerateContent(ctx, ContentInput{})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("retry did not stop on cancellation")
	}
}

func TestWithRetryNil(t *testing.T) {
	if WithRetry(nil) != nil {
		t.Fatalf("expected nil client")
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadline", err: fmt.Errorf("wrap: %w", context.DeadlineExceeded), want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "placeholder", err: ErrNotImplemented, want: false},
		{name: "server error", err: errors.New("openai http status 502"), want: true},
		{name: "rate limited", err: errors.New("gemini http status 429: RESOURCE_EXHAUSTED"), want: true},
		{name: "bad request", err: errors.New("gemini http status 400"), want: false},
		{name: "eof", err: errors.New("unexpected EOF"), want: true},
		{name: "invalid json", err: errors.New("invalid JSON from Gemini"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRetry(tt.err); got != tt.want {
				t.Fatalf("ShouldRetry(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBuildContentPrompt(t *testing.T) {
	prompt := BuildContentPrompt("", "  sourdough bread ")
	if !strings.Contains(prompt, `"sourdough bread"`) {
		t.Fatalf("expected keyword in prompt")
	}
	if strings.Contains(prompt, "{{KEYWORD}}") {
		t.Fatalf("placeholder not replaced")
	}
	if _, ok := PromptTemplate("v9"); ok {
		t.Fatalf("unknown version should not be recognized")
	}
}

func TestModelsResolve(t *testing.T) {
	m := Models{Default: "gemini-2.5-flash", Allowed: []string{"gemini-2.5-flash", "gemini-2.0-flash", "gemini-1.5-flash"}}

	if got := m.Resolve("gemini-2.0-flash"); got != "gemini-2.0-flash" {
		t.Fatalf("expected allowed model, got %s", got)
	}
	if got := m.Resolve(" GEMINI-1.5-FLASH "); got != "gemini-1.5-flash" {
		t.Fatalf("expected case-insensitive match, got %s", got)
	}
	if got := m.Resolve("gpt-4"); got != "gemini-2.5-flash" {
		t.Fatalf("expected default for unknown model, got %s", got)
	}
	if got := m.Resolve(""); got != "gemini-2.5-flash" {
		t.Fatalf("expected default for empty model, got %s", got)
	}
	if got := m.List(); len(got) != 3 || got[0] != "gemini-2.5-flash" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestPlaceholderClient(t *testing.T) {
	_, err := PlaceholderClient{}.GenerateContent(context.Background(), ContentInput{})
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
