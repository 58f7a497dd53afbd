package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codehealth/internal/config"
	"codehealth/internal/gitdata"
	"codehealth/internal/hotspots"
	"codehealth/internal/logging"
	"codehealth/internal/report"
	"codehealth/internal/storage"
)

var (
	analyzeFormat string
	analyzeOutput string
	analyzeExport string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a repository and report complexity, churn, and hotspots",
	Long: `Analyze every supported source file under the repository root,
aggregate KPIs up the directory tree, and render a report.

Examples:
  codehealth analyze
  codehealth analyze --repo ../service --format yaml
  codehealth analyze --format json --output report.json
  codehealth analyze --export report.json.zst`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "Output format (json, yaml, human)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "Write the report to a file instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "Write a zstd-compressed report to this path")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()

	res, cfg, logger, err := runAnalysis(context.Background())
	if err != nil {
		return err
	}

	scorer := hotspots.NewScorer(hotspots.Thresholds{
		LowMax:    cfg.Hotspots.LowMax,
		MediumMax: cfg.Hotspots.MediumMax,
		HighMax:   cfg.Hotspots.HighMax,
	})
	doc := report.Build(res, scorer)

	out := os.Stdout
	if analyzeOutput != "" {
		f, err := os.Create(analyzeOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.Render(out, doc, report.Format(analyzeFormat)); err != nil {
		return err
	}

	if analyzeExport != "" {
		exportFormat := report.Format(analyzeFormat)
		if exportFormat == report.FormatHuman {
			exportFormat = report.FormatJSON
		}
		if err := report.Export(analyzeExport, doc, exportFormat); err != nil {
			return err
		}
		logger.Info("report exported", logging.Fields{"path": analyzeExport})
	}

	recordRun(cfg, logger, res.RunID, len(res.Warnings), res.FilesAnalyzed)

	logger.Debug("analysis completed", logging.Fields{
		"duration": time.Since(start).Milliseconds(),
		"analyzed": res.FilesAnalyzed,
	})
	return nil
}

// recordRun stores run metadata in the local cache database. Failures
// only cost the history entry.
func recordRun(cfg *config.Config, logger *logging.Logger, runID string, warnings, analyzed int) {
	if !cfg.Churn.CacheEnabled {
		return
	}
	db, err := storage.Open(cfg.RepoRoot, logger)
	if err != nil {
		return
	}
	defer db.Close()

	head, err := gitdata.NewCollector(cfg.RepoRoot, logger).Head()
	if err != nil {
		head = ""
	}
	if err := storage.NewChurnStore(db).RecordRun(runID, head, analyzed, warnings); err != nil {
		logger.Debug("failed to record run", logging.Fields{"error": err.Error()})
	}
}
