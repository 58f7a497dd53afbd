// Package scanner walks a repository and selects the source files
// eligible for analysis.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codehealth/internal/metrics"
)

// SourceFile is one candidate for analysis. Path is slash-separated
// and relative to the repository root.
type SourceFile struct {
	Path     string
	AbsPath  string
	Language metrics.Language
}

// Scanner walks a repository root collecting supported source files.
type Scanner struct {
	factory    *metrics.Factory
	ignoreDirs map[string]bool
}

// NewScanner creates a scanner that skips the named directories.
func NewScanner(factory *metrics.Factory, ignoreDirs []string) *Scanner {
	ignore := make(map[string]bool, len(ignoreDirs))
	for _, dir := range ignoreDirs {
		ignore[dir] = true
	}
	return &Scanner{factory: factory, ignoreDirs: ignore}
}

// Scan returns the supported source files under root, sorted by path.
// Unreadable directories are skipped, not fatal.
func (s *Scanner) Scan(root string) ([]SourceFile, error) {
	var files []SourceFile

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if s.ignoreDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		lang, ok := metrics.LanguageFromExtension(filepath.Ext(name))
		if !ok {
			return nil
		}
		if _, ok := s.factory.ForLanguage(lang); !ok {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		files = append(files, SourceFile{
			Path:     filepath.ToSlash(relPath),
			AbsPath:  path,
			Language: lang,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
