package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"video-seo-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string

	LLMProvider      string
	LLMModel         string
	LLMAllowedModels []string
	LLMTimeout       time.Duration
	GeminiAPIKey     string
	OpenAIAPIKey     string

	CacheTTL        time.Duration
	AnalysisTimeout time.Duration

	FetchStrategies []string
	FetchLimit      int
	FetchTimeout    time.Duration
	FetchRPS        float64
	SearchBaseURL   string
	ScrapeUserAgent string

	DatabaseURL    string
	RateLimitRPS   float64
	RateLimitBurst int
}

var defaults = map[string]any{
	"port":               "8080",
	"env":                "dev",
	"cors_allow_origins": "http://localhost:3000,http://127.0.0.1:3000",
	"log_level":          "info",
	"llm_provider":       "gemini",
	"llm_timeout":        "60s",
	"gemini_api_key":     "",
	"openai_api_key":     "",
	"cache_ttl":          "24h",
	"analysis_timeout":   "90s",
	"fetch_strategies":   "browser,http",
	"fetch_limit":        5,
	"fetch_timeout":      "20s",
	"fetch_rps":          1.0,
	"search_base_url":    "https://www.youtube.com",
	"scrape_user_agent":  "",
	"database_url":       "",
	"rate_limit_rps":     2.0,
	"rate_limit_burst":   10,
}

// providerModels holds the default model and allowlist per provider. They
// apply only when LLM_MODEL or LLM_ALLOWED_MODELS is unset.
var providerModels = map[string]struct {
	model   string
	allowed []string
}{
	"gemini": {"gemini-2.5-flash", []string{"gemini-2.5-flash", "gemini-2.0-flash", "gemini-1.5-flash"}},
	"openai": {"gpt-4o-mini", []string{"gpt-4o-mini", "gpt-4o", "gpt-5-mini"}},
	"none":   {"gemini-2.5-flash", []string{"gemini-2.5-flash"}},
}

// Load reads configuration from .env files, an optional YAML file named by
// CONFIG_FILE and the environment, in increasing order of precedence.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("config_file")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	env := normalizeEnv(v.GetString("env"))
	cfg := Config{
		Port:             v.GetString("port"),
		Env:              env,
		CORSAllowOrigin:  stringList(v, "cors_allow_origins"),
		LogLevel:         strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LLMProvider:      normalizeProvider(v.GetString("llm_provider")),
		LLMModel:         strings.TrimSpace(v.GetString("llm_model")),
		LLMAllowedModels: stringList(v, "llm_allowed_models"),
		GeminiAPIKey:     strings.TrimSpace(v.GetString("gemini_api_key")),
		OpenAIAPIKey:     strings.TrimSpace(v.GetString("openai_api_key")),
		FetchStrategies:  stringList(v, "fetch_strategies"),
		FetchLimit:       v.GetInt("fetch_limit"),
		FetchRPS:         v.GetFloat64("fetch_rps"),
		SearchBaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("search_base_url")), "/"),
		ScrapeUserAgent:  strings.TrimSpace(v.GetString("scrape_user_agent")),
		DatabaseURL:      strings.TrimSpace(v.GetString("database_url")),
		RateLimitRPS:     v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:   v.GetInt("rate_limit_burst"),
	}

	if pm, ok := providerModels[cfg.LLMProvider]; ok {
		if cfg.LLMModel == "" {
			cfg.LLMModel = pm.model
		}
		if len(cfg.LLMAllowedModels) == 0 {
			cfg.LLMAllowedModels = append([]string(nil), pm.allowed...)
		}
	}

	var errs []error
	cfg.LLMTimeout = duration(v, "llm_timeout", &errs)
	cfg.CacheTTL = duration(v, "cache_ttl", &errs)
	cfg.AnalysisTimeout = duration(v, "analysis_timeout", &errs)
	cfg.FetchTimeout = duration(v, "fetch_timeout", &errs)

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 5
	}
	if len(cfg.FetchStrategies) == 0 {
		errs = append(errs, errors.New("FETCH_STRATEGIES must name at least one strategy"))
	}
	if env == "production" && cfg.DatabaseURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}
	if cfg.LLMProvider == "gemini" && cfg.GeminiAPIKey == "" {
		telemetry.Warn("config.llm_key_missing", map[string]any{"provider": cfg.LLMProvider})
	}
	if cfg.LLMProvider == "openai" && cfg.OpenAIAPIKey == "" {
		telemetry.Warn("config.llm_key_missing", map[string]any{"provider": cfg.LLMProvider})
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		// Missing files are expected outside local development.
		_ = godotenv.Load(path)
	}
}

func duration(v *viper.Viper, key string, errs *[]error) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err == nil && d <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q: %v", strings.ToUpper(key), raw, err))
		return 0
	}
	return d
}

// stringList accepts either a YAML list or a comma separated string.
func stringList(v *viper.Viper, key string) []string {
	if _, ok := v.Get(key).([]any); ok {
		return splitAndTrim(strings.Join(v.GetStringSlice(key), ","))
	}
	return splitAndTrim(v.GetString(key))
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none", "off", "disabled":
		return "none"
	default:
		return "gemini"
	}
}
