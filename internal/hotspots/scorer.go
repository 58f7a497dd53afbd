// Package hotspots derives risk scores from complexity and churn.
package hotspots

import (
	"sort"

	"codehealth/internal/repotree"
)

// Tier is a named risk band.
type Tier string

const (
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// Thresholds are the inclusive upper bounds of the lower three tiers;
// anything above HighMax is critical. Values are configurable but the
// ordered boundary scan is not.
type Thresholds struct {
	LowMax    float64 `json:"lowMax"`
	MediumMax float64 `json:"mediumMax"`
	HighMax   float64 `json:"highMax"`
}

// DefaultThresholds returns the standard bands: 0-25 low, 26-75
// medium, 76-150 high, 151+ critical.
func DefaultThresholds() Thresholds {
	return Thresholds{LowMax: 25, MediumMax: 75, HighMax: 150}
}

// Scorer combines complexity and churn into hotspot values.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer creates a scorer with the given tier boundaries.
func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{thresholds: thresholds}
}

// Score returns complexity x churn, or nil when either input is
// absent. Undefined complexity is unknown risk, not zero risk.
func (s *Scorer) Score(complexity, churn *float64) *float64 {
	if complexity == nil || churn == nil {
		return nil
	}
	v := *complexity * *churn
	return &v
}

// Classify maps a score onto its tier with an ordered boundary scan.
func (s *Scorer) Classify(score float64) Tier {
	switch {
	case score <= s.thresholds.LowMax:
		return TierLow
	case score <= s.thresholds.MediumMax:
		return TierMedium
	case score <= s.thresholds.HighMax:
		return TierHigh
	default:
		return TierCritical
	}
}

// Value is one derived hotspot: a score plus its tier.
type Value struct {
	Score float64 `json:"score"`
	Tier  Tier    `json:"tier"`
}

// NodeHotspots holds the two independent hotspot flavors of a file or
// directory. Either may be nil when an input was absent.
type NodeHotspots struct {
	Cyclomatic *Value `json:"cyclomatic,omitempty"`
	Cognitive  *Value `json:"cognitive,omitempty"`
}

// Derive computes both hotspot flavors from a node's KPI map. Hotspot
// values are derived on demand, never stored back into the tree.
func (s *Scorer) Derive(kpis map[string]interface{}) NodeHotspots {
	churn := scalarKPI(kpis, repotree.KPIChurn)
	return NodeHotspots{
		Cyclomatic: s.derive(scalarKPI(kpis, repotree.KPICyclomatic), churn),
		Cognitive:  s.derive(scalarKPI(kpis, repotree.KPICognitive), churn),
	}
}

func (s *Scorer) derive(complexity, churn *float64) *Value {
	score := s.Score(complexity, churn)
	if score == nil {
		return nil
	}
	return &Value{Score: *score, Tier: s.Classify(*score)}
}

func scalarKPI(kpis map[string]interface{}, name string) *float64 {
	if kpis == nil {
		return nil
	}
	if v, ok := kpis[name].(float64); ok {
		f := v
		return &f
	}
	return nil
}

// Entry is one ranked hotspot file.
type Entry struct {
	Path     string       `json:"path"`
	Hotspots NodeHotspots `json:"hotspots"`
}

// Rank derives hotspots for every file in the tree and returns the
// entries with a cyclomatic score, highest first, capped at limit.
// Files with absent inputs are left out rather than ranked at zero.
func (s *Scorer) Rank(tree *repotree.Tree, limit int) []Entry {
	var entries []Entry
	tree.WalkFiles(func(f *repotree.File) {
		h := s.Derive(f.KPIs)
		if h.Cyclomatic == nil && h.Cognitive == nil {
			return
		}
		entries = append(entries, Entry{Path: f.Path, Hotspots: h})
	})

	sort.SliceStable(entries, func(i, j int) bool {
		return rankScore(entries[i]) > rankScore(entries[j])
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func rankScore(e Entry) float64 {
	if e.Hotspots.Cyclomatic != nil {
		return e.Hotspots.Cyclomatic.Score
	}
	return e.Hotspots.Cognitive.Score
}
