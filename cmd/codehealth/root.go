package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codehealth/internal/config"
	"codehealth/internal/engine"
	"codehealth/internal/gitdata"
	"codehealth/internal/logging"
	"codehealth/internal/metrics"
	"codehealth/internal/storage"
	"codehealth/internal/treesitter"
	"codehealth/internal/version"
)

var (
	repoFlag      string
	logLevelFlag  string
	churnDaysFlag int
)

var rootCmd = &cobra.Command{
	Use:   "codehealth",
	Short: "codehealth - source code quality metrics",
	Long: `codehealth computes cyclomatic and cognitive complexity across
multiple languages, combines it with git churn and ownership, and rolls
everything up from files to the repository root.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("codehealth version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Repository root to analyze")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&churnDaysFlag, "churn-days", 0, "Churn window in days (overrides config)")
}

// newLogger builds the run logger from config with the CLI flag and
// CODEHEALTH_LOG_LEVEL taking precedence.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if env := os.Getenv("CODEHEALTH_LOG_LEVEL"); env != "" {
		level = env
	}
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.Level(level),
	})
}

// runAnalysis executes the full pipeline for the configured repository.
func runAnalysis(ctx context.Context) (*engine.Result, *config.Config, *logging.Logger, error) {
	if !treesitter.Available() {
		return nil, nil, nil, fmt.Errorf("this build has no parser: rebuild with cgo enabled")
	}

	cfg, err := config.LoadConfig(repoFlag)
	if err != nil {
		return nil, nil, nil, err
	}
	if churnDaysFlag > 0 {
		cfg.Churn.PeriodDays = churnDaysFlag
	}
	logger := newLogger(cfg)

	registry, err := metrics.DefaultRegistry()
	if err != nil {
		// Registry misconfiguration is fatal before any file is touched.
		return nil, nil, nil, err
	}
	factory := metrics.NewFactory(registry)

	history := loadHistory(cfg, logger)

	eng := engine.New(cfg, factory, treesitter.NewParser(), history, logger)
	res, err := eng.Run(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return res, cfg, logger, nil
}

// loadHistory collects churn data, consulting the snapshot cache when
// enabled. Any failure disables history KPIs for this run only.
func loadHistory(cfg *config.Config, logger *logging.Logger) engine.HistorySource {
	if !cfg.Churn.Enabled {
		return nil
	}

	collector := gitdata.NewCollector(cfg.RepoRoot, logger)

	if !cfg.Churn.CacheEnabled {
		snap, err := collector.Collect(cfg.Churn.PeriodDays)
		if err != nil {
			logger.Warn("churn collection failed, history KPIs will be absent", logging.Fields{
				"error": err.Error(),
			})
			return nil
		}
		return snap
	}

	db, err := storage.Open(cfg.RepoRoot, logger)
	if err != nil {
		logger.Warn("cache unavailable, collecting churn without it", logging.Fields{
			"error": err.Error(),
		})
		snap, err := collector.Collect(cfg.Churn.PeriodDays)
		if err != nil {
			return nil
		}
		return snap
	}
	defer db.Close()

	store := storage.NewChurnStore(db)

	head, err := collector.Head()
	if err == nil {
		if cached, err := store.Get(head, cfg.Churn.PeriodDays); err == nil && cached != nil {
			logger.Debug("using cached churn snapshot", logging.Fields{"head": head})
			return cached
		}
	}

	snap, err := collector.Collect(cfg.Churn.PeriodDays)
	if err != nil {
		logger.Warn("churn collection failed, history KPIs will be absent", logging.Fields{
			"error": err.Error(),
		})
		return nil
	}
	if err := store.Put(snap); err != nil {
		logger.Warn("failed to cache churn snapshot", logging.Fields{"error": err.Error()})
	}
	return snap
}
