package hotspots

import (
	"testing"

	"codehealth/internal/repotree"
)

func fp(v float64) *float64 { return &v }

func TestScoreWorkedExample(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	score := s.Score(fp(15), fp(8))
	if score == nil || *score != 120 {
		t.Fatalf("expected score 120, got %v", score)
	}
	if tier := s.Classify(*score); tier != TierHigh {
		t.Errorf("expected high tier for 120, got %s", tier)
	}
}

func TestScoreNullPropagation(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	if s.Score(nil, fp(8)) != nil {
		t.Error("absent complexity must yield absent hotspot")
	}
	if s.Score(fp(15), nil) != nil {
		t.Error("absent churn must yield absent hotspot")
	}
	if s.Score(nil, nil) != nil {
		t.Error("both absent must yield absent hotspot")
	}
}

func TestClassifyBoundaries(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	tests := []struct {
		score float64
		tier  Tier
	}{
		{0, TierLow},
		{25, TierLow},
		{26, TierMedium},
		{75, TierMedium},
		{76, TierHigh},
		{150, TierHigh},
		{151, TierCritical},
		{10000, TierCritical},
	}
	for _, tt := range tests {
		if got := s.Classify(tt.score); got != tt.tier {
			t.Errorf("Classify(%v): expected %s, got %s", tt.score, tt.tier, got)
		}
	}
}

func TestDeriveBothFlavors(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	kpis := map[string]interface{}{
		repotree.KPICyclomatic: 15.0,
		repotree.KPICognitive:  20.0,
		repotree.KPIChurn:      8.0,
	}
	h := s.Derive(kpis)

	if h.Cyclomatic == nil || h.Cyclomatic.Score != 120 || h.Cyclomatic.Tier != TierHigh {
		t.Errorf("unexpected cyclomatic hotspot: %+v", h.Cyclomatic)
	}
	if h.Cognitive == nil || h.Cognitive.Score != 160 || h.Cognitive.Tier != TierCritical {
		t.Errorf("unexpected cognitive hotspot: %+v", h.Cognitive)
	}

	// Without churn, both flavors are absent.
	delete(kpis, repotree.KPIChurn)
	h = s.Derive(kpis)
	if h.Cyclomatic != nil || h.Cognitive != nil {
		t.Errorf("expected absent hotspots without churn, got %+v", h)
	}
}

func TestRank(t *testing.T) {
	tree := repotree.NewTree("run-1", "demo")
	add := func(path string, cyclo, churn float64) {
		tree.AddFile(path, &repotree.File{KPIs: map[string]interface{}{
			repotree.KPICyclomatic: cyclo,
			repotree.KPIChurn:      churn,
		}})
	}
	add("a.go", 10, 2)  // 20
	add("b.go", 30, 10) // 300
	add("c.go", 5, 9)   // 45
	tree.AddFile("d.txt", &repotree.File{KPIs: map[string]interface{}{}})

	s := NewScorer(DefaultThresholds())
	entries := s.Rank(tree, 2)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path != "b.go" || entries[1].Path != "c.go" {
		t.Errorf("unexpected ranking: %s, %s", entries[0].Path, entries[1].Path)
	}
	if entries[0].Hotspots.Cyclomatic.Tier != TierCritical {
		t.Errorf("expected critical tier for 300, got %s", entries[0].Hotspots.Cyclomatic.Tier)
	}
}
