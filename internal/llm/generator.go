package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/cache"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// GeneratorOptions configures headline and summary generation
type GeneratorOptions struct {
	HeadlineModel     string
	SummaryModel      string
	HeadlineMaxTokens int
	SummaryMaxTokens  int
	Cache             cache.Cache // nil disables caching
	Logger            *slog.Logger
}

// GeneratorFromConfig maps the generation config section onto options
func GeneratorFromConfig(cfg model.GenerationConfig, c cache.Cache, logger *slog.Logger) GeneratorOptions {
	return GeneratorOptions{
		HeadlineModel:     cfg.HeadlineModel,
		SummaryModel:      cfg.SummaryModel,
		HeadlineMaxTokens: cfg.HeadlineMaxTokens,
		SummaryMaxTokens:  cfg.SummaryMaxTokens,
		Cache:             c,
		Logger:            logger,
	}
}

// Generator writes a headline for a combined record, then a summary that
// expands on that headline.
type Generator struct {
	provider Provider
	opts     GeneratorOptions
	logger   *slog.Logger
}

// NewGenerator creates a generator
func NewGenerator(provider Provider, opts GeneratorOptions) *Generator {
	if opts.HeadlineMaxTokens <= 0 {
		opts.HeadlineMaxTokens = 64
	}
	if opts.SummaryMaxTokens <= 0 {
		opts.SummaryMaxTokens = 4096
	}
	if opts.Cache == nil {
		opts.Cache = cache.NopCache{}
	}
	return &Generator{
		provider: provider,
		opts:     opts,
		logger:   logging.NewComponentLogger(opts.Logger, "generate"),
	}
}

type generated struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
}

// Generate returns the headline and summary for one combined record. Results
// are cached by model and input so a rerun after a crash costs nothing.
func (g *Generator) Generate(ctx context.Context, combined string) (string, string, error) {
	key := cache.CacheKey("generate", g.provider.Name(), g.opts.HeadlineModel, g.opts.SummaryModel, combined)
	if data, ok := g.opts.Cache.Get(key); ok {
		var hit generated
		if err := json.Unmarshal(data, &hit); err == nil && hit.Headline != "" {
			g.logger.Debug("generation cache hit")
			return hit.Headline, hit.Summary, nil
		}
	}

	headline, err := g.provider.Complete(ctx, CompletionRequest{
		Prompt:    BuildHeadlinePrompt(combined),
		Model:     g.opts.HeadlineModel,
		MaxTokens: g.opts.HeadlineMaxTokens,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate headline: %w", err)
	}
	if headline.Text == "" {
		return "", "", fmt.Errorf("generate headline: empty response")
	}

	summary, err := g.provider.Complete(ctx, CompletionRequest{
		Prompt:    BuildSummaryPrompt(headline.Text, combined),
		Model:     g.opts.SummaryModel,
		MaxTokens: g.opts.SummaryMaxTokens,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate summary: %w", err)
	}

	out := generated{Headline: headline.Text, Summary: summary.Text}
	if data, err := json.Marshal(out); err == nil {
		if err := g.opts.Cache.Set(key, data, 0); err != nil {
			g.logger.Warn("generation cache write failed", "error", err)
		}
	}

	return out.Headline, out.Summary, nil
}
