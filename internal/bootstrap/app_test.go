package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"video-seo-backend/internal/llm"
	"video-seo-backend/internal/shared/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:             "8080",
		Env:              "dev",
		LLMProvider:      "none",
		LLMModel:         "gemini-2.5-flash",
		LLMAllowedModels: []string{"gemini-2.0-flash"},
		CacheTTL:         time.Hour,
		AnalysisTimeout:  time.Second,
		FetchStrategies:  []string{"http"},
		FetchLimit:       5,
		FetchTimeout:     time.Second,
		SearchBaseURL:    "http://127.0.0.1:1",
		RateLimitRPS:     10,
		RateLimitBurst:   10,
	}
}

func TestBuildWiresInMemoryApp(t *testing.T) {
	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Fatalf("expected in-memory history without DATABASE_URL")
	}
	if _, ok := app.LLM.(llm.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder client, got %T", app.LLM)
	}
	if app.AnalysesService == nil || app.AnalysesService.Cache != app.Cache {
		t.Fatalf("expected service to share the app cache")
	}
	if len(app.Fetcher.Strategies) != 1 || app.Fetcher.Strategies[0].Name() != "http" {
		t.Fatalf("unexpected strategies: %v", app.Fetcher.Strategies)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", resp.Code)
	}
}

func TestBuildRejectsUnknownStrategy(t *testing.T) {
	cfg := testConfig()
	cfg.FetchStrategies = []string{"telepathy"}
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestBuildLLMRequiresKeyOutsideDev(t *testing.T) {
	cfg := testConfig()
	cfg.Env = "production"
	cfg.LLMProvider = "gemini"
	if _, err := BuildLLM(cfg); err == nil {
		t.Fatalf("expected missing key error in production")
	}

	cfg.Env = "dev"
	client, err := BuildLLM(cfg)
	if err != nil {
		t.Fatalf("BuildLLM dev: %v", err)
	}
	if _, ok := client.(llm.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder in dev, got %T", client)
	}

	cfg.GeminiAPIKey = "key"
	client, err = BuildLLM(cfg)
	if err != nil {
		t.Fatalf("BuildLLM with key: %v", err)
	}
	if _, ok := client.(llm.PlaceholderClient); ok {
		t.Fatalf("expected provider client with key")
	}
}

func TestBuildModelsIncludesDefault(t *testing.T) {
	models := BuildModels(testConfig())
	if models.Default != "gemini-2.5-flash" {
		t.Fatalf("unexpected default %q", models.Default)
	}
	if got := models.Resolve("gemini-2.5-flash"); got != "gemini-2.5-flash" {
		t.Fatalf("expected default allowed, got %q", got)
	}
	if got := models.Resolve("gemini-2.0-flash"); got != "gemini-2.0-flash" {
		t.Fatalf("expected configured model allowed, got %q", got)
	}
}
