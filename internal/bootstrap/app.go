package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"video-seo-backend/internal/analyses"
	"video-seo-backend/internal/fetcher"
	"video-seo-backend/internal/history"
	"video-seo-backend/internal/llm"
	"video-seo-backend/internal/llm/gemini"
	"video-seo-backend/internal/llm/openai"
	"video-seo-backend/internal/services/health"
	"video-seo-backend/internal/shared/config"
	"video-seo-backend/internal/shared/server"
	"video-seo-backend/internal/shared/storage/db"
	"video-seo-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	LLM             llm.Client
	Models          llm.Models
	Fetcher         *fetcher.Fetcher
	Cache           *analyses.Cache
	HistoryRepo     history.Repo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	HistoryHandler  *history.Handler
	Health          *health.Service
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := BuildLLM(cfg)
	if err != nil {
		return nil, err
	}

	f, err := fetcher.New(cfg.FetchStrategies, fetcher.Options{
		BaseURL:   cfg.SearchBaseURL,
		UserAgent: cfg.ScrapeUserAgent,
		Limit:     cfg.FetchLimit,
		Timeout:   cfg.FetchTimeout,
		RPS:       cfg.FetchRPS,
	})
	if err != nil {
		return nil, err
	}

	var historyRepo history.Repo
	if sqlDB != nil {
		historyRepo = &history.PGRepo{DB: sqlDB}
	} else {
		historyRepo = history.NewMemoryRepo()
	}

	models := BuildModels(cfg)
	cache := analyses.NewCache(cfg.CacheTTL, nil)
	svc := &analyses.Service{
		Fetcher:       f,
		LLM:           client,
		Cache:         cache,
		History:       historyRepo,
		Models:        models,
		PromptVersion: llm.DefaultPromptVersion,
		Timeout:       cfg.AnalysisTimeout,
	}

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		LLM:             client,
		Models:          models,
		Fetcher:         f,
		Cache:           cache,
		HistoryRepo:     historyRepo,
		AnalysesService: svc,
		AnalysisHandler: analyses.NewHandler(svc),
		HistoryHandler:  history.NewHandler(historyRepo),
		Health:          health.NewService(sqlDB),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		HistoryHandler:  app.HistoryHandler,
		Health:          app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"llm_provider": cfg.LLMProvider,
		"llm_model":    models.Default,
		"strategies":   cfg.FetchStrategies,
		"history":      historyBackend(sqlDB),
	})
	return app, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// BuildLLM selects the generative provider. Providers are wrapped with a
// single transient-error retry; "none" yields the placeholder client.
func BuildLLM(cfg config.Config) (llm.Client, error) {
	var (
		client llm.Client
		err    error
	)
	switch cfg.LLMProvider {
	case "none":
		return llm.PlaceholderClient{}, nil
	case "openai":
		client, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	default:
		client, err = gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.llm_disabled", map[string]any{"provider": cfg.LLMProvider, "error": err.Error()})
			return llm.PlaceholderClient{}, nil
		}
		return nil, err
	}
	return llm.WithRetry(client), nil
}

// BuildModels returns the model allowlist; the configured model is always allowed.
func BuildModels(cfg config.Config) llm.Models {
	allowed := append([]string{}, cfg.LLMAllowedModels...)
	found := false
	for _, m := range allowed {
		if strings.EqualFold(m, cfg.LLMModel) {
			found = true
			break
		}
	}
	if !found && cfg.LLMModel != "" {
		allowed = append(allowed, cfg.LLMModel)
	}
	return llm.Models{Default: cfg.LLMModel, Allowed: allowed}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.history_memory", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.history_memory", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func historyBackend(sqlDB *sql.DB) string {
	if sqlDB == nil {
		return "memory"
	}
	return "postgres"
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
