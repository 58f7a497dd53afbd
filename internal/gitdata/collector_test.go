package gitdata

import (
	"reflect"
	"strings"
	"testing"

	"codehealth/internal/repotree"
)

const sampleLog = `aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa|ada|2026-08-01T10:00:00+02:00

10	2	pkg/parser.go
3	1	pkg/util.go

bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb|grace|2026-07-20T09:00:00+02:00

5	0	pkg/parser.go
-	-	assets/logo.png

cccccccccccccccccccccccccccccccccccccccc|ada|2026-07-01T08:00:00+02:00

1	1	pkg/parser.go
`

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Head:       "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		PeriodDays: 90,
		Files:      parseLog(strings.Split(sampleLog, "\n")),
	}
}

func TestParseLogAggregatesPerFile(t *testing.T) {
	files := parseLog(strings.Split(sampleLog, "\n"))

	parser, ok := files["pkg/parser.go"]
	if !ok {
		t.Fatal("expected pkg/parser.go in snapshot")
	}
	if parser.Commits != 3 {
		t.Errorf("expected 3 commits, got %d", parser.Commits)
	}
	if parser.Authors["ada"] != 2 || parser.Authors["grace"] != 1 {
		t.Errorf("unexpected author counts: %v", parser.Authors)
	}

	if files["pkg/util.go"].Commits != 1 {
		t.Errorf("expected 1 commit for util.go, got %d", files["pkg/util.go"].Commits)
	}
}

func TestParseLogCountsBinaryFiles(t *testing.T) {
	files := parseLog(strings.Split(sampleLog, "\n"))

	if files["assets/logo.png"].Commits != 1 {
		t.Errorf("expected binary file to count as changed, got %d", files["assets/logo.png"].Commits)
	}
}

func TestChurnForAbsentFileIsNil(t *testing.T) {
	snap := sampleSnapshot()

	if v := snap.ChurnFor("pkg/parser.go"); v == nil || *v != 3 {
		t.Errorf("expected churn 3, got %v", v)
	}
	if v := snap.ChurnFor("pkg/new_file.go"); v != nil {
		t.Errorf("expected nil churn for unknown file, got %v", *v)
	}
}

func TestOwnershipSignificantShare(t *testing.T) {
	snap := sampleSnapshot()

	// ada has 2/3, grace 1/3. With minShare 0.5 only ada is significant.
	own := snap.OwnershipFor("pkg/parser.go", 0.5)
	if !reflect.DeepEqual(own.Authors, []string{"ada", "grace"}) {
		t.Errorf("unexpected authors: %v", own.Authors)
	}
	if own.SignificantAuthors != 1 {
		t.Errorf("expected 1 significant author, got %v", own.SignificantAuthors)
	}

	// With minShare 0.2 both qualify.
	own = snap.OwnershipFor("pkg/parser.go", 0.2)
	if own.SignificantAuthors != 2 {
		t.Errorf("expected 2 significant authors, got %v", own.SignificantAuthors)
	}
}

func TestOwnershipForUncommittedFile(t *testing.T) {
	snap := sampleSnapshot()

	own := snap.OwnershipFor("pkg/brand_new.go", 0.2)
	if !reflect.DeepEqual(own.Authors, []string{repotree.NotYetCommitted}) {
		t.Errorf("expected sentinel author, got %v", own.Authors)
	}
	if own.SignificantAuthors != 0 {
		t.Errorf("expected 0 significant authors, got %v", own.SignificantAuthors)
	}
}

func TestNormalizeRename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"pkg/parser.go", "pkg/parser.go"},
		{"old.go => new.go", "new.go"},
		{"pkg/{old => new}/file.go", "pkg/new/file.go"},
		{"pkg/{ => sub}/file.go", "pkg/sub/file.go"},
	}
	for _, tt := range tests {
		if got := normalizeRename(tt.in); got != tt.want {
			t.Errorf("normalizeRename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
