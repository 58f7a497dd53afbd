// Package repotree models the analyzed repository as a directory tree
// and rolls file-level KPI values up to every directory, bottom-up.
package repotree

import (
	"path"
	"sort"
	"strings"

	"codehealth/internal/metrics"
)

// Well-known KPI names. The aggregator itself treats all names
// uniformly; these constants exist so producers and renderers agree.
const (
	KPICyclomatic = "complexity.cyclomatic"
	KPICognitive  = "complexity.cognitive"
	KPIChurn      = "churn"
	KPIOwnership  = "ownership"
)

// File is a leaf of the tree: one analyzed source file with its
// complexity metrics and per-KPI values. A KPI absent from KPIs is
// absent, never zero.
type File struct {
	Name string
	Path string

	// Metric holds the per-function complexity results, or nil when
	// the file was skipped (parse failure, unsupported language).
	Metric *metrics.FileMetric

	// KPIs holds the file's own value per KPI name. Values are
	// float64 for scalar KPIs or Ownership for the composite one.
	KPIs map[string]interface{}
}

// Dir is a directory node. Files and Subdirs are keyed by base name;
// iteration order is irrelevant to aggregation.
type Dir struct {
	Name    string
	Path    string
	Files   map[string]*File
	Subdirs map[string]*Dir

	// KPIs is populated only by the aggregator, empty until it runs.
	KPIs map[string]interface{}
}

// NewDir creates an empty directory node.
func NewDir(name, dirPath string) *Dir {
	return &Dir{
		Name:    name,
		Path:    dirPath,
		Files:   make(map[string]*File),
		Subdirs: make(map[string]*Dir),
		KPIs:    make(map[string]interface{}),
	}
}

// Tree owns a whole analyzed repository: the root directory plus run
// identity. Built once per analysis run and immutable after
// aggregation completes; the next run replaces it wholesale.
type Tree struct {
	RunID    string
	RepoName string
	Root     *Dir
}

// NewTree creates a tree with an empty root.
func NewTree(runID, repoName string) *Tree {
	return &Tree{
		RunID:    runID,
		RepoName: repoName,
		Root:     NewDir(repoName, "."),
	}
}

// AddFile inserts a file at its slash-separated relative path,
// creating intermediate directories as needed.
func (t *Tree) AddFile(relPath string, file *File) {
	dir := t.Root
	parts := strings.Split(path.Clean(relPath), "/")
	for _, part := range parts[:len(parts)-1] {
		sub, ok := dir.Subdirs[part]
		if !ok {
			sub = NewDir(part, path.Join(dir.Path, part))
			dir.Subdirs[part] = sub
		}
		dir = sub
	}
	name := parts[len(parts)-1]
	file.Name = name
	file.Path = relPath
	dir.Files[name] = file
}

// WalkDirs visits every directory in the tree, parents before
// children, subdirectories in name order.
func (t *Tree) WalkDirs(visit func(*Dir)) {
	var walk func(*Dir)
	walk = func(d *Dir) {
		visit(d)
		for _, name := range sortedKeys(d.Subdirs) {
			walk(d.Subdirs[name])
		}
	}
	walk(t.Root)
}

// WalkFiles visits every file, directories in name order.
func (t *Tree) WalkFiles(visit func(*File)) {
	t.WalkDirs(func(d *Dir) {
		for _, name := range sortedFileKeys(d.Files) {
			visit(d.Files[name])
		}
	})
}

// FileCount returns the number of files in the tree.
func (t *Tree) FileCount() int {
	count := 0
	t.WalkFiles(func(*File) { count++ })
	return count
}

func sortedKeys(m map[string]*Dir) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFileKeys(m map[string]*File) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
