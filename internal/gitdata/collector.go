// Package gitdata collects per-file churn and ownership from git
// history in a single log pass.
package gitdata

import (
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"codehealth/internal/errors"
	"codehealth/internal/logging"
	"codehealth/internal/repotree"
)

// FileChurn holds the raw history counts for one file.
type FileChurn struct {
	// Commits is the number of commits touching the file in the period.
	Commits int `json:"commits"`

	// Authors maps author name to the number of commits by that author.
	Authors map[string]int `json:"authors"`
}

// Snapshot is the churn state of a repository at a given HEAD over a
// fixed period. Files absent from the map have no recorded history.
type Snapshot struct {
	Head       string               `json:"head"`
	PeriodDays int                  `json:"periodDays"`
	Files      map[string]FileChurn `json:"files"`
}

// ChurnFor returns the commit count for path, or nil when the file has
// no history in the period. Absence is not zero.
func (s *Snapshot) ChurnFor(path string) *float64 {
	fc, ok := s.Files[path]
	if !ok {
		return nil
	}
	v := float64(fc.Commits)
	return &v
}

// OwnershipFor returns the ownership view for path. Authors whose
// commit share is at least minShare count as significant. Files with
// no history get the not-yet-committed sentinel author.
func (s *Snapshot) OwnershipFor(path string, minShare float64) repotree.Ownership {
	fc, ok := s.Files[path]
	if !ok || fc.Commits == 0 {
		return repotree.Ownership{
			Authors:            []string{repotree.NotYetCommitted},
			SignificantAuthors: 0,
		}
	}

	authors := make([]string, 0, len(fc.Authors))
	significant := 0
	for author, commits := range fc.Authors {
		authors = append(authors, author)
		if float64(commits)/float64(fc.Commits) >= minShare {
			significant++
		}
	}
	sort.Strings(authors)

	return repotree.Ownership{
		Authors:            authors,
		SignificantAuthors: float64(significant),
	}
}

// Collector reads churn data from a git working copy.
type Collector struct {
	repoRoot string
	logger   *logging.Logger
}

// NewCollector creates a collector rooted at repoRoot.
func NewCollector(repoRoot string, logger *logging.Logger) *Collector {
	return &Collector{repoRoot: repoRoot, logger: logger}
}

// Head returns the current HEAD commit hash.
func (c *Collector) Head() (string, error) {
	out, err := c.run("rev-parse", "HEAD")
	if err != nil {
		return "", errors.New(errors.MissingExternalData, "failed to resolve HEAD", err)
	}
	return strings.TrimSpace(out), nil
}

// Collect builds a snapshot of per-file churn over the last periodDays
// days, using a single git log invocation.
func (c *Collector) Collect(periodDays int) (*Snapshot, error) {
	head, err := c.Head()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("collecting churn", logging.Fields{
		"repoRoot":   c.repoRoot,
		"periodDays": periodDays,
	})

	out, err := c.run(
		"log",
		"--format=%H|%an|%aI",
		"--numstat",
		fmt.Sprintf("--since=%d.days.ago", periodDays),
		"HEAD",
	)
	if err != nil {
		return nil, errors.New(errors.MissingExternalData, "git log failed", err)
	}

	return &Snapshot{
		Head:       head,
		PeriodDays: periodDays,
		Files:      parseLog(strings.Split(out, "\n")),
	}, nil
}

// parseLog aggregates numstat output into per-file churn. Each commit
// header line has the form "hash|author|timestamp"; the numstat lines
// that follow belong to that commit.
func parseLog(lines []string) map[string]FileChurn {
	files := make(map[string]FileChurn)
	var author string

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		if strings.Contains(line, "|") {
			parts := strings.SplitN(line, "|", 3)
			if len(parts) == 3 && len(parts[0]) == 40 {
				author = parts[1]
				continue
			}
		}

		// numstat line: "added<tab>deleted<tab>path"
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		// Binary files report "-" for both counts; they still count as
		// a change.
		if _, err := strconv.Atoi(parts[0]); err != nil && parts[0] != "-" {
			continue
		}

		path := normalizeRename(parts[2])
		fc, ok := files[path]
		if !ok {
			fc = FileChurn{Authors: make(map[string]int)}
		}
		fc.Commits++
		if author != "" {
			fc.Authors[author]++
		}
		files[path] = fc
	}

	return files
}

// normalizeRename resolves git's rename notations ("old => new" and
// "prefix{old => new}suffix") to the new path.
func normalizeRename(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}
	if open := strings.Index(path, "{"); open >= 0 {
		if close := strings.Index(path, "}"); close > open {
			inner := path[open+1 : close]
			if arrow := strings.Index(inner, " => "); arrow >= 0 {
				return path[:open] + inner[arrow+4:] + path[close+1:]
			}
		}
	}
	if arrow := strings.Index(path, " => "); arrow >= 0 {
		return path[arrow+4:]
	}
	return path
}

func (c *Collector) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.repoRoot
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}
