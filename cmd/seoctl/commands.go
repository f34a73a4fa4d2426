package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"video-seo-backend/internal/analyses"
	"video-seo-backend/internal/bootstrap"
	"video-seo-backend/internal/llm"
	"video-seo-backend/internal/onpage"
	"video-seo-backend/internal/shared/config"
	"video-seo-backend/internal/shared/telemetry"
	"video-seo-backend/internal/suggestions"
)

const probeKeyword = "test"

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "seoctl",
		Short:   "Keyword SEO analysis from the command line",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				if err := os.Setenv("CONFIG_FILE", path); err != nil {
					return err
				}
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
				telemetry.SetLevel("error")
			}
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().Bool("verbose", false, "Print pipeline logs to stdout")

	root.AddCommand(newAnalyzeCmd(), newScoreCmd(), newModelsCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [KEYWORD]",
		Short: "Fetch competitors, generate content and score it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, _ := cmd.Flags().GetString("model")

			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.AnalysesService.Analyze(cmd.Context(), args[0], analyses.Options{Model: model})
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String("model", "", "Provider model; defaults to LLM_MODEL")
	return cmd
}

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score your own title, description, tags and script offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword, _ := cmd.Flags().GetString("keyword")
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			tags, _ := cmd.Flags().GetStringSlice("tag")
			hook, _ := cmd.Flags().GetString("hook")
			intro, _ := cmd.Flags().GetString("intro")
			conclusion, _ := cmd.Flags().GetString("conclusion")
			points, _ := cmd.Flags().GetStringArray("point")
			cta, _ := cmd.Flags().GetString("cta")

			if strings.TrimSpace(keyword) == "" {
				return analyses.ErrInvalidKeyword
			}
			content := suggestions.ContentSuggestion{
				Tags: tags,
				ScriptOutline: suggestions.ScriptOutline{
					Hook:         hook,
					Introduction: intro,
					MainPoints:   points,
					CallToAction: cta,
					Conclusion:   conclusion,
				},
			}
			if title != "" {
				content.Titles = []string{title}
			}
			if description != "" {
				content.Descriptions = []string{description}
			}
			return writeJSON(cmd.OutOrStdout(), onpage.Analyze(content.Normalize(), keyword))
		},
	}
	cmd.Flags().String("keyword", "", "Target keyword (required)")
	cmd.Flags().String("title", "", "Video title")
	cmd.Flags().String("description", "", "Video description")
	cmd.Flags().StringSlice("tag", nil, "Tag; repeat or comma separate")
	cmd.Flags().String("hook", "", "Script hook")
	cmd.Flags().StringArray("point", nil, "Script main point; repeat for each")
	cmd.Flags().String("cta", "", "Script call to action")
	cmd.Flags().String("intro", "", "Script introduction")
	cmd.Flags().String("conclusion", "", "Script conclusion")
	return cmd
}

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List allowed models, optionally probing each one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			probe, _ := cmd.Flags().GetBool("probe")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			models := bootstrap.BuildModels(cfg)
			if !probe {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"default": models.Default,
					"models":  models.List(),
				})
			}

			client, err := bootstrap.BuildLLM(cfg)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), probeModels(cmd.Context(), client, models, timeout))
		},
	}
	cmd.Flags().Bool("probe", false, "Send a short request to each model")
	cmd.Flags().Duration("timeout", 30*time.Second, "Per-model probe timeout")
	return cmd
}

type probeResult struct {
	Model string `json:"model"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func probeModels(ctx context.Context, client llm.Client, models llm.Models, timeout time.Duration) []probeResult {
	out := make([]probeResult, 0, len(models.Allowed)+1)
	for _, model := range models.List() {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		raw, err := client.GenerateContent(pctx, llm.ContentInput{
			Keyword:       probeKeyword,
			Model:         model,
			PromptVersion: llm.DefaultPromptVersion,
		})
		cancel()
		if err == nil {
			_, err = suggestions.Decode(raw)
		}
		res := probeResult{Model: model, OK: err == nil}
		if err != nil {
			res.Error = llm.SanitizeError(err)
		}
		out = append(out, res)
	}
	return out
}

func buildApp() (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return bootstrap.Build(cfg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
