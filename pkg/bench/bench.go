// Package bench times the measurement calls of a sequence of solids.
package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chazu/solidkit/pkg/solid"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Defaults used when Options fields are zero.
const (
	DefaultIterations = 100000
	DefaultWarmup     = 1000
)

// Options configures a timing run.
type Options struct {
	Iterations int // calls per metric per solid
	Warmup     int // untimed calls per solid before measuring
	Log        logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.Iterations < 1 {
		o.Iterations = DefaultIterations
	}
	if o.Warmup < 0 {
		o.Warmup = 0
	}
	if o.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Log = l
	}
	return o
}

// Timing is the elapsed time of every timed call per metric for one solid.
type Timing struct {
	Index      int
	Solid      solid.Solid
	Iterations int
	Volume     time.Duration // all Iterations calls to Volume
	Surface    time.Duration // all Iterations calls to SurfaceArea
}

// Total returns the combined elapsed time of both metrics.
func (t Timing) Total() time.Duration { return t.Volume + t.Surface }

// Average returns the per-call cost of d in nanoseconds, without rounding.
func (t Timing) Average(d time.Duration) float64 {
	if t.Iterations < 1 {
		return 0
	}
	return float64(d) / float64(t.Iterations)
}

// Result is the outcome of a timing run.
type Result struct {
	Iterations int
	Timings    []Timing
}

// Fastest returns the solid with the lowest total, the earliest on ties.
// ok is false when nothing was timed.
func (r Result) Fastest() (Timing, bool) {
	if len(r.Timings) == 0 {
		return Timing{}, false
	}
	return lo.MinBy(r.Timings, func(a, b Timing) bool { return a.Total() < b.Total() }), true
}

// Slowest returns the solid with the highest total, the earliest on ties.
func (r Result) Slowest() (Timing, bool) {
	if len(r.Timings) == 0 {
		return Timing{}, false
	}
	return lo.MaxBy(r.Timings, func(a, b Timing) bool { return a.Total() > b.Total() }), true
}

// sink keeps the compiler from discarding the timed calls.
var sink float64

// Run times Volume and SurfaceArea for every solid in order. It checks ctx
// between solids and returns the timings gathered so far on cancellation.
func Run(ctx context.Context, solids []solid.Solid, opts Options) (Result, error) {
	opts = opts.withDefaults()
	res := Result{Iterations: opts.Iterations}

	opts.Log.WithFields(logrus.Fields{
		"solids":     len(solids),
		"iterations": humanize.Comma(int64(opts.Iterations)),
		"warmup":     humanize.Comma(int64(opts.Warmup)),
	}).Info("timing measurements")

	for i, s := range solids {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("bench: %w", err)
		}
		for w := 0; w < opts.Warmup; w++ {
			sink += s.Volume() + s.SurfaceArea()
		}
		t := Timing{
			Index:      i,
			Solid:      s,
			Iterations: opts.Iterations,
			Volume:     timeCalls(s.Volume, opts.Iterations),
			Surface:    timeCalls(s.SurfaceArea, opts.Iterations),
		}
		opts.Log.WithFields(logrus.Fields{
			"index":      i,
			"kind":       s.Kind().String(),
			"volume_ns":  t.Average(t.Volume),
			"surface_ns": t.Average(t.Surface),
		}).Debug("timed solid")
		res.Timings = append(res.Timings, t)
	}
	return res, nil
}

// timeCalls returns the elapsed time of n calls to f.
func timeCalls(f func() float64, n int) time.Duration {
	start := time.Now()
	for i := 0; i < n; i++ {
		sink += f()
	}
	return time.Since(start)
}

// PerSecond formats how many calls costing ns nanoseconds each fit in one
// second, e.g. "12,345,678/s". A zero cost reports as "n/a".
func PerSecond(ns float64) string {
	if ns <= 0 {
		return "n/a"
	}
	return humanize.Comma(int64(float64(time.Second)/ns)) + "/s"
}
