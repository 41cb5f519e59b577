// Package analysis computes aggregate reports over an ordered sequence of
// solids: extremes, descriptive statistics, type distribution and
// volume-to-surface efficiency ranking.
//
// Every function is a pure function of its input slice. Ties are always
// resolved by input order so that repeated runs over the same sequence
// produce identical results.
package analysis

import (
	"math"
	"sort"

	"github.com/chazu/solidkit/pkg/solid"
	"github.com/samber/lo"
)

// Metric extracts one measurement from a solid.
type Metric func(solid.Solid) float64

// Volume measures a solid's volume.
func Volume(s solid.Solid) float64 { return s.Volume() }

// SurfaceArea measures a solid's surface area.
func SurfaceArea(s solid.Solid) float64 { return s.SurfaceArea() }

// Efficiency measures volume divided by surface area.
func Efficiency(s solid.Solid) float64 { return s.Volume() / s.SurfaceArea() }

// Measured pairs a solid with its position in the input and a metric value.
type Measured struct {
	Index int
	Solid solid.Solid
	Value float64
}

// measure evaluates m once per solid, keeping input order.
func measure(solids []solid.Solid, m Metric) []Measured {
	return lo.Map(solids, func(s solid.Solid, i int) Measured {
		return Measured{Index: i, Solid: s, Value: m(s)}
	})
}

// ---------------------------------------------------------------------------
// Extremes
// ---------------------------------------------------------------------------

// Extremum holds the largest and smallest solid under a metric.
type Extremum struct {
	Max Measured
	Min Measured
}

// Extremes returns the solids with the largest and smallest metric value.
// When several solids share an extreme value the earliest one wins. ok is
// false for an empty input.
func Extremes(solids []solid.Solid, m Metric) (ext Extremum, ok bool) {
	if len(solids) == 0 {
		return Extremum{}, false
	}
	ms := measure(solids, m)
	// MaxBy/MinBy only replace the candidate on a strict comparison, so the
	// first occurrence is kept on ties.
	ext.Max = lo.MaxBy(ms, func(a, b Measured) bool { return a.Value > b.Value })
	ext.Min = lo.MinBy(ms, func(a, b Measured) bool { return a.Value < b.Value })
	return ext, true
}

// ---------------------------------------------------------------------------
// Statistics
// ---------------------------------------------------------------------------

// Stats summarizes a metric over a sequence. The zero value is the
// "no data" result returned for empty input.
type Stats struct {
	Count    int
	Sum      float64
	Mean     float64
	Min      float64
	Max      float64
	Variance float64 // population variance
	StdDev   float64
}

// Empty reports whether the stats were computed over no solids.
func (s Stats) Empty() bool { return s.Count == 0 }

// Range returns Max - Min.
func (s Stats) Range() float64 { return s.Max - s.Min }

// Summarize computes count, sum, mean, min, max and spread of m over solids.
func Summarize(solids []solid.Solid, m Metric) Stats {
	if len(solids) == 0 {
		return Stats{}
	}
	values := lo.Map(solids, func(s solid.Solid, _ int) float64 { return m(s) })
	variance, mean := varianceWithMean(values)
	return Stats{
		Count:    len(values),
		Sum:      lo.Sum(values),
		Mean:     mean,
		Min:      lo.Min(values),
		Max:      lo.Max(values),
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
}

// ---------------------------------------------------------------------------
// Distribution
// ---------------------------------------------------------------------------

// KindCount is the number of solids of one kind.
type KindCount struct {
	Kind  solid.Kind
	Count int
}

// Distribution counts solids per kind. Groups are ordered by descending
// count; groups with equal counts keep the order in which their kind first
// appeared in the input.
func Distribution(solids []solid.Solid) []KindCount {
	kinds := lo.Map(solids, func(s solid.Solid, _ int) solid.Kind { return s.Kind() })
	counts := lo.CountValues(kinds)
	out := lo.Map(lo.Uniq(kinds), func(k solid.Kind, _ int) KindCount {
		return KindCount{Kind: k, Count: counts[k]}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ---------------------------------------------------------------------------
// Efficiency
// ---------------------------------------------------------------------------

// RankEfficiency orders solids by volume/surface-area ratio, highest first.
// The sort is stable: solids with equal ratios keep their input order.
// A NaN ratio, left by dimensions whose volume and area both overflow to
// +Inf, sorts after every number.
func RankEfficiency(solids []solid.Solid) []Measured {
	ranked := measure(solids, Efficiency)
	sort.SliceStable(ranked, func(i, j int) bool { return moreEfficient(ranked[i].Value, ranked[j].Value) })
	return ranked
}

func moreEfficient(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

// ---------------------------------------------------------------------------
// Full report
// ---------------------------------------------------------------------------

// Report bundles every analysis of one sequence.
type Report struct {
	Count           int
	VolumeExtremes  Extremum
	SurfaceExtremes Extremum
	VolumeStats     Stats
	SurfaceStats    Stats
	Distribution    []KindCount
	Efficiency      []Measured
}

// Empty reports whether the report covers no solids.
func (r Report) Empty() bool { return r.Count == 0 }

// Analyze runs every analysis over solids. An empty input yields a report
// whose Empty method returns true and whose slices are empty.
func Analyze(solids []solid.Solid) Report {
	r := Report{
		Count:        len(solids),
		VolumeStats:  Summarize(solids, Volume),
		SurfaceStats: Summarize(solids, SurfaceArea),
		Distribution: Distribution(solids),
		Efficiency:   RankEfficiency(solids),
	}
	r.VolumeExtremes, _ = Extremes(solids, Volume)
	r.SurfaceExtremes, _ = Extremes(solids, SurfaceArea)
	return r
}
