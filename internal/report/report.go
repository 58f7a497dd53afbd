// Package report renders analysis results as JSON, YAML, or a
// human-readable listing, and exports them as zstd-compressed archives.
package report

import (
	"time"

	"codehealth/internal/engine"
	"codehealth/internal/hotspots"
	"codehealth/internal/metrics"
	"codehealth/internal/repotree"
)

// FileReport is the serializable view of one analyzed file.
type FileReport struct {
	Path      string                   `json:"path" yaml:"path"`
	Language  string                   `json:"language,omitempty" yaml:"language,omitempty"`
	Functions []metrics.FunctionMetric `json:"functions,omitempty" yaml:"functions,omitempty"`
	KPIs      map[string]interface{}   `json:"kpis" yaml:"kpis"`
	Hotspots  *hotspots.NodeHotspots   `json:"hotspots,omitempty" yaml:"hotspots,omitempty"`
}

// DirReport is the serializable view of one directory aggregate.
type DirReport struct {
	Path     string                 `json:"path" yaml:"path"`
	KPIs     map[string]interface{} `json:"kpis" yaml:"kpis"`
	Hotspots *hotspots.NodeHotspots `json:"hotspots,omitempty" yaml:"hotspots,omitempty"`
}

// Document is a complete run report. Directories and files appear in
// deterministic pre-order so repeated runs diff cleanly.
type Document struct {
	RunID         string           `json:"runId" yaml:"runId"`
	Repo          string           `json:"repo" yaml:"repo"`
	GeneratedAt   string           `json:"generatedAt" yaml:"generatedAt"`
	FilesAnalyzed int              `json:"filesAnalyzed" yaml:"filesAnalyzed"`
	Warnings      []engine.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Dirs          []DirReport      `json:"dirs" yaml:"dirs"`
	Files         []FileReport     `json:"files" yaml:"files"`
}

// Build flattens a run result into a document, deriving hotspot values
// on the way. Absent KPIs are simply missing from the maps.
func Build(res *engine.Result, scorer *hotspots.Scorer) *Document {
	doc := &Document{
		RunID:         res.RunID,
		Repo:          res.RepoName,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		FilesAnalyzed: res.FilesAnalyzed,
		Warnings:      res.Warnings,
	}

	res.Tree.WalkDirs(func(d *repotree.Dir) {
		dr := DirReport{Path: d.Path, KPIs: d.KPIs}
		if h := scorer.Derive(d.KPIs); h.Cyclomatic != nil || h.Cognitive != nil {
			dr.Hotspots = &h
		}
		doc.Dirs = append(doc.Dirs, dr)
	})

	res.Tree.WalkFiles(func(f *repotree.File) {
		fr := FileReport{Path: f.Path, KPIs: f.KPIs}
		if f.Metric != nil {
			fr.Language = string(f.Metric.Language)
			fr.Functions = f.Metric.Functions
		}
		if h := scorer.Derive(f.KPIs); h.Cyclomatic != nil || h.Cognitive != nil {
			fr.Hotspots = &h
		}
		doc.Files = append(doc.Files, fr)
	})

	return doc
}
