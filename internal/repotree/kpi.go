package repotree

import (
	"math"
	"sort"
)

// NotYetCommitted is the sentinel author recorded for files that have
// no commit history. Author unions exclude it.
const NotYetCommitted = "<not-yet-committed>"

// Ownership is the composite shared-ownership KPI value: the authors
// of a file or subtree plus the significant-author count (mean of the
// children's counts once aggregated).
type Ownership struct {
	Authors            []string `json:"authors"`
	SignificantAuthors float64  `json:"significantAuthors"`
}

// Reducer combines the non-absent child values of one KPI into the
// parent's aggregate. Reducers must be commutative so the result is
// independent of sibling iteration order.
type Reducer func(values []interface{}) interface{}

// Mean averages scalar values, rounded to one decimal place.
func Mean(values []interface{}) interface{} {
	floats := scalars(values)
	if len(floats) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range floats {
		sum += v
	}
	return round1(sum / float64(len(floats)))
}

// Sum adds scalar values.
func Sum(values []interface{}) interface{} {
	floats := scalars(values)
	if len(floats) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range floats {
		sum += v
	}
	return sum
}

// Max takes the largest scalar value.
func Max(values []interface{}) interface{} {
	floats := scalars(values)
	if len(floats) == 0 {
		return nil
	}
	max := floats[0]
	for _, v := range floats[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// SharedOwnership combines ownership values: the deduplicated author
// union across the subtree (sentinel excluded) together with the
// arithmetic mean of the significant-author counts, as one value.
func SharedOwnership(values []interface{}) interface{} {
	authors := make(map[string]bool)
	sum := 0.0
	count := 0

	for _, v := range values {
		own, ok := v.(Ownership)
		if !ok {
			continue
		}
		for _, a := range own.Authors {
			if a != NotYetCommitted {
				authors[a] = true
			}
		}
		sum += own.SignificantAuthors
		count++
	}
	if count == 0 {
		return nil
	}

	union := make([]string, 0, len(authors))
	for a := range authors {
		union = append(union, a)
	}
	sort.Strings(union)

	return Ownership{
		Authors:            union,
		SignificantAuthors: round1(sum / float64(count)),
	}
}

// scalars filters values down to float64s, dropping anything else.
func scalars(values []interface{}) []float64 {
	floats := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := v.(float64); ok {
			floats = append(floats, f)
		}
	}
	return floats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
