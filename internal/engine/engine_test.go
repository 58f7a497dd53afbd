package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codehealth/internal/config"
	"codehealth/internal/errors"
	"codehealth/internal/logging"
	"codehealth/internal/metrics"
	"codehealth/internal/repotree"
	"codehealth/internal/syntax"
)

// fakeNode is a minimal syntax tree for driving the calculator without
// a real parser.
type fakeNode struct {
	kind     string
	text     string
	children []*fakeNode
}

func (n *fakeNode) Kind() string            { return n.kind }
func (n *fakeNode) ChildCount() int         { return len(n.children) }
func (n *fakeNode) Child(i int) syntax.Node { return n.children[i] }
func (n *fakeNode) Text() string            { return n.text }
func (n *fakeNode) StartLine() int          { return 1 }
func (n *fakeNode) EndLine() int            { return 1 }

// fakeParser maps file content markers to canned trees or errors.
type fakeParser struct{}

func (fakeParser) Parse(_ context.Context, source []byte, _ metrics.Language) (syntax.Node, error) {
	text := string(source)
	if strings.Contains(text, "BROKEN") {
		return nil, errors.Newf(errors.ParseFailure, "malformed source")
	}

	// One named function; files marked COMPLEX get an if statement.
	fn := &fakeNode{kind: "function_declaration", children: []*fakeNode{
		{kind: "identifier", text: "f"},
	}}
	if strings.Contains(text, "COMPLEX") {
		fn.children = append(fn.children, &fakeNode{kind: "if_statement"})
	}
	return &fakeNode{kind: "source_file", children: []*fakeNode{fn}}, nil
}

type fakeHistory struct {
	churn map[string]float64
}

func (h fakeHistory) ChurnFor(path string) *float64 {
	v, ok := h.churn[path]
	if !ok {
		return nil
	}
	return &v
}

func (h fakeHistory) OwnershipFor(path string, _ float64) repotree.Ownership {
	if _, ok := h.churn[path]; !ok {
		return repotree.Ownership{Authors: []string{repotree.NotYetCommitted}}
	}
	return repotree.Ownership{Authors: []string{"ada"}, SignificantAuthors: 1}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestEngine(t *testing.T, root string, history HistorySource) *Engine {
	t.Helper()
	registry, err := metrics.DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.RepoRoot = root
	cfg.Analysis.Workers = 2
	logger := logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
	return New(cfg, metrics.NewFactory(registry), fakeParser{}, history, logger)
}

func TestRunBuildsAggregatedTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "COMPLEX")
	writeFile(t, root, "pkg/b.go", "plain")

	res, err := newTestEngine(t, root, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.RunID == "" {
		t.Error("expected a run ID")
	}
	if res.FilesAnalyzed != 2 {
		t.Errorf("expected 2 analyzed files, got %d", res.FilesAnalyzed)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", res.Warnings)
	}

	// a.go has cyclomatic 2, pkg/b.go has 1; root mean is hierarchical:
	// (2 + 1) / 2 = 1.5.
	got, ok := res.Tree.Root.KPIs[repotree.KPICyclomatic]
	if !ok {
		t.Fatal("expected aggregated cyclomatic KPI at root")
	}
	if got.(float64) != 1.5 {
		t.Errorf("expected root cyclomatic 1.5, got %v", got)
	}
}

func TestRunRecordsParseFailureAndContinues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.go", "plain")
	writeFile(t, root, "bad.go", "BROKEN")

	res, err := newTestEngine(t, root, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.FilesAnalyzed != 1 {
		t.Errorf("expected 1 analyzed file, got %d", res.FilesAnalyzed)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %+v", res.Warnings)
	}
	if res.Warnings[0].Code != errors.ParseFailure || res.Warnings[0].Path != "bad.go" {
		t.Errorf("unexpected warning: %+v", res.Warnings[0])
	}

	// The failed file is still in the tree, without complexity KPIs.
	bad := res.Tree.Root.Files["bad.go"]
	if bad == nil {
		t.Fatal("expected bad.go in tree")
	}
	if _, ok := bad.KPIs[repotree.KPICyclomatic]; ok {
		t.Error("parse-failed file must not carry a complexity KPI")
	}
}

func TestRunAttachesHistoryKPIs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "plain")
	writeFile(t, root, "fresh.go", "plain")

	history := fakeHistory{churn: map[string]float64{"a.go": 7}}
	res, err := newTestEngine(t, root, history).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	a := res.Tree.Root.Files["a.go"]
	if a.KPIs[repotree.KPIChurn] != 7.0 {
		t.Errorf("expected churn 7, got %v", a.KPIs[repotree.KPIChurn])
	}

	// A file with no history has no churn KPI at all.
	fresh := res.Tree.Root.Files["fresh.go"]
	if _, ok := fresh.KPIs[repotree.KPIChurn]; ok {
		t.Error("expected churn to be absent for uncommitted file")
	}
	own := fresh.KPIs[repotree.KPIOwnership].(repotree.Ownership)
	if len(own.Authors) != 1 || own.Authors[0] != repotree.NotYetCommitted {
		t.Errorf("expected sentinel ownership, got %+v", own)
	}

	// Root churn aggregates only over files that have the KPI.
	if res.Tree.Root.KPIs[repotree.KPIChurn] != 7.0 {
		t.Errorf("expected root churn 7, got %v", res.Tree.Root.KPIs[repotree.KPIChurn])
	}
}
