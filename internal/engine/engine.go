// Package engine orchestrates a full analysis run: scan, parse and
// score files concurrently, attach history KPIs, then aggregate.
package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"codehealth/internal/config"
	"codehealth/internal/errors"
	"codehealth/internal/logging"
	"codehealth/internal/metrics"
	"codehealth/internal/repotree"
	"codehealth/internal/scanner"
	"codehealth/internal/syntax"
)

// SourceParser turns raw source bytes into a generic syntax tree.
type SourceParser interface {
	Parse(ctx context.Context, source []byte, lang metrics.Language) (syntax.Node, error)
}

// HistorySource provides per-file churn and ownership. A nil churn
// value means the file has no recorded history.
type HistorySource interface {
	ChurnFor(path string) *float64
	OwnershipFor(path string, minShare float64) repotree.Ownership
}

// Warning is a non-fatal problem encountered during a run.
type Warning struct {
	Path    string      `json:"path"`
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// Result is the outcome of one analysis run.
type Result struct {
	RunID    string         `json:"runId"`
	RepoName string         `json:"repoName"`
	Tree     *repotree.Tree `json:"tree"`
	Warnings []Warning      `json:"warnings"`

	// FilesAnalyzed counts files that produced complexity metrics.
	FilesAnalyzed int `json:"filesAnalyzed"`
}

// Engine runs the analysis pipeline.
type Engine struct {
	cfg        *config.Config
	factory    *metrics.Factory
	parser     SourceParser
	history    HistorySource // may be nil when churn is disabled
	aggregator *repotree.Aggregator
	logger     *logging.Logger
}

// New creates an engine. history may be nil, in which case churn and
// ownership KPIs stay absent.
func New(cfg *config.Config, factory *metrics.Factory, parser SourceParser, history HistorySource, logger *logging.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		factory:    factory,
		parser:     parser,
		history:    history,
		aggregator: repotree.DefaultAggregator(),
		logger:     logger,
	}
}

type fileResult struct {
	file   scanner.SourceFile
	metric *metrics.FileMetric
	err    error
}

// Run analyzes the repository rooted at cfg.RepoRoot.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	log := e.logger.With(logging.Fields{"runId": runID})

	sc := scanner.NewScanner(e.factory, e.cfg.Analysis.IgnoreDirs)
	files, err := sc.Scan(e.cfg.RepoRoot)
	if err != nil {
		return nil, errors.New(errors.InternalError, "repository scan failed", err)
	}
	log.Info("scan complete", logging.Fields{"files": len(files)})

	results := e.analyzeFiles(ctx, files)

	repoName := filepath.Base(e.cfg.RepoRoot)
	tree := repotree.NewTree(runID, repoName)
	res := &Result{RunID: runID, RepoName: repoName, Tree: tree}

	// Tree assembly is sequential; workers only parse and score.
	for _, fr := range results {
		node := &repotree.File{KPIs: make(map[string]interface{})}

		if fr.err != nil {
			res.Warnings = append(res.Warnings, Warning{
				Path:    fr.file.Path,
				Code:    errors.CodeOf(fr.err),
				Message: fr.err.Error(),
			})
			log.Warn("file skipped", logging.Fields{
				"path": fr.file.Path,
				"code": string(errors.CodeOf(fr.err)),
			})
		} else {
			node.Metric = fr.metric
			node.KPIs[repotree.KPICyclomatic] = float64(fr.metric.TotalCyclomatic)
			node.KPIs[repotree.KPICognitive] = float64(fr.metric.TotalCognitive)
			res.FilesAnalyzed++
		}

		tree.AddFile(fr.file.Path, node)
		e.attachHistory(node)
	}

	e.aggregator.AggregateTree(tree)

	log.Info("run complete", logging.Fields{
		"analyzed": res.FilesAnalyzed,
		"warnings": len(res.Warnings),
	})
	return res, nil
}

// attachHistory sets churn and ownership KPIs when a history source is
// configured. A missing churn value stays absent, never zero.
func (e *Engine) attachHistory(node *repotree.File) {
	if e.history == nil {
		return
	}
	if churn := e.history.ChurnFor(node.Path); churn != nil {
		node.KPIs[repotree.KPIChurn] = *churn
	}
	node.KPIs[repotree.KPIOwnership] = e.history.OwnershipFor(node.Path, e.cfg.Churn.SignificantShare)
}

func (e *Engine) analyzeFiles(ctx context.Context, files []scanner.SourceFile) []fileResult {
	workers := e.cfg.Analysis.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	results := make([]fileResult, len(files))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.analyzeOne(ctx, files[i])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (e *Engine) analyzeOne(ctx context.Context, file scanner.SourceFile) fileResult {
	source, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return fileResult{file: file, err: errors.New(errors.ParseFailure, "failed to read file", err)}
	}

	root, err := e.parser.Parse(ctx, source, file.Language)
	if err != nil {
		return fileResult{file: file, err: err}
	}

	calc, ok := e.factory.ForLanguage(file.Language)
	if !ok {
		return fileResult{file: file, err: errors.Newf(errors.UnsupportedLanguage, "no calculator for %s", file.Language)}
	}

	return fileResult{file: file, metric: calc.AnalyzeFile(file.Path, root)}
}
