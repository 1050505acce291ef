package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/cache"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/ledger"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/llm"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/logging"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/metrics"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/pipeline"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/store"
)

var (
	startDate string
	endDate   string
)

// addWindowFlags registers the shared --start/--end flags
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&startDate, "start", "", "window start date (YYYYMMDD, inclusive)")
	cmd.Flags().StringVar(&endDate, "end", "", "window end date (YYYYMMDD, inclusive)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func parseWindow() (model.Window, error) {
	return model.ParseWindow(startDate, endDate)
}

// stageNeeds lists the model collaborators a command uses
type stageNeeds struct {
	generator bool
	judge     bool
}

// app holds everything a stage command needs
type app struct {
	cfg      *model.Config
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
	ledger   *ledger.Ledger
	registry *prometheus.Registry
}

func newApp(needs stageNeeds) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg.Logging, os.Stderr)
	if err != nil {
		return nil, err
	}

	m := metrics.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := m.Register(registry); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, registry: registry}
	opts := pipeline.Options{
		Metrics:  m,
		Progress: os.Stderr,
		Logger:   logger,
	}

	if needs.generator || needs.judge {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("create LLM provider: %w", err)
		}
		if needs.generator {
			opts.Generator = llm.NewGenerator(provider, llm.GeneratorFromConfig(cfg.Generation, cache.New(cfg.Cache), logger))
		}
		if needs.judge {
			opts.Judge = llm.NewJudge(provider, cfg.Tournament.JudgeModel, cfg.Tournament.JudgeMaxTokens)
			opts.JudgeName = provider.Name()
			if cfg.Tournament.JudgeModel != "" {
				opts.JudgeName += "/" + cfg.Tournament.JudgeModel
			} else if cfg.LLM.Model != "" {
				opts.JudgeName += "/" + cfg.LLM.Model
			}
		}
		logger.Debug("LLM provider ready", "provider", provider.Name(), "model", cfg.LLM.Model)
	}

	if needs.judge && cfg.Ledger.Enabled {
		l, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return nil, err
		}
		a.ledger = l
		opts.Ledger = l
	}

	a.pipeline = pipeline.New(cfg, store.New(cfg.Paths), opts)
	return a, nil
}

// Close writes the metrics textfile and closes the ledger
func (a *app) Close() error {
	var errs []error
	if err := metrics.WriteTextfile(a.cfg.Metrics.Textfile, a.registry); err != nil {
		errs = append(errs, err)
	}
	if a.ledger != nil {
		if err := a.ledger.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// withApp builds the app, runs fn and closes the app, keeping fn's error first
func withApp(cmd *cobra.Command, needs stageNeeds, fn func(ctx context.Context, a *app, w model.Window) error) error {
	w, err := parseWindow()
	if err != nil {
		return err
	}
	a, err := newApp(needs)
	if err != nil {
		return err
	}

	runErr := fn(cmd.Context(), a, w)
	if err := a.Close(); err != nil {
		if runErr == nil {
			return err
		}
		a.logger.Warn("shutdown failed", "error", err)
	}
	return runErr
}
