package bench

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chazu/solidkit/pkg/solid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func demo() []solid.Solid {
	return []solid.Solid{solid.DefaultSphere(), solid.DefaultCube(), solid.DefaultCone()}
}

func TestRunTimesEverySolidInOrder(t *testing.T) {
	solids := demo()
	res, err := Run(context.Background(), solids, Options{Iterations: 50, Warmup: 5})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Iterations != 50 {
		t.Errorf("Iterations = %d, want 50", res.Iterations)
	}
	if len(res.Timings) != len(solids) {
		t.Fatalf("got %d timings, want %d", len(res.Timings), len(solids))
	}
	for i, tm := range res.Timings {
		if tm.Index != i || tm.Solid != solids[i] {
			t.Errorf("timing %d refers to index %d", i, tm.Index)
		}
		if tm.Iterations != 50 {
			t.Errorf("timing %d Iterations = %d, want 50", i, tm.Iterations)
		}
		if tm.Volume < 0 || tm.Surface < 0 {
			t.Errorf("timing %d negative: %+v", i, tm)
		}
	}
}

func TestRunDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Iterations != DefaultIterations || o.Log == nil {
		t.Errorf("withDefaults() = %+v", o)
	}
	if o := (Options{Warmup: -3}).withDefaults(); o.Warmup != 0 {
		t.Errorf("negative warmup not clamped: %d", o.Warmup)
	}
}

func TestRunEmpty(t *testing.T) {
	res, err := Run(context.Background(), nil, Options{Iterations: 1})
	if err != nil {
		t.Fatalf("Run(nil) error = %v", err)
	}
	if _, ok := res.Fastest(); ok {
		t.Error("Fastest() ok = true for empty result")
	}
	if _, ok := res.Slowest(); ok {
		t.Error("Slowest() ok = true for empty result")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, demo(), Options{Iterations: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if len(res.Timings) != 0 {
		t.Errorf("got %d timings after cancel, want 0", len(res.Timings))
	}
}

func TestFastestSlowest(t *testing.T) {
	s := demo()
	res := Result{Timings: []Timing{
		{Index: 0, Solid: s[0], Volume: 5, Surface: 5},
		{Index: 1, Solid: s[1], Volume: 1, Surface: 2},
		{Index: 2, Solid: s[2], Volume: 2, Surface: 1},
	}}
	fast, _ := res.Fastest()
	if fast.Index != 1 {
		t.Errorf("Fastest() = %d, want 1 (first of the tied)", fast.Index)
	}
	slow, _ := res.Slowest()
	if slow.Index != 0 {
		t.Errorf("Slowest() = %d, want 0", slow.Index)
	}
	if slow.Total() != 10 {
		t.Errorf("Total() = %v, want 10ns", slow.Total())
	}
}

func TestFastestUsesSubNanosecondDifferences(t *testing.T) {
	s := demo()
	// Both average 9ns per call once rounded down; only the totals differ.
	res := Result{Iterations: 100000, Timings: []Timing{
		{Index: 0, Solid: s[0], Iterations: 100000, Volume: 480000, Surface: 470000},
		{Index: 1, Solid: s[1], Iterations: 100000, Volume: 450000, Surface: 450000},
		{Index: 2, Solid: s[2], Iterations: 100000, Volume: 460000, Surface: 470000},
	}}
	fast, _ := res.Fastest()
	if fast.Index != 1 {
		t.Errorf("Fastest() = %d, want 1", fast.Index)
	}
	slow, _ := res.Slowest()
	if slow.Index != 0 {
		t.Errorf("Slowest() = %d, want 0", slow.Index)
	}
	if got := fast.Average(fast.Total()); got != 9.0 {
		t.Errorf("Average(Total()) = %v, want 9", got)
	}
	if got := slow.Average(slow.Total()); got != 9.5 {
		t.Errorf("Average(Total()) = %v, want 9.5", got)
	}
}

func TestAverage(t *testing.T) {
	tm := Timing{Iterations: 4, Volume: 10}
	if got := tm.Average(tm.Volume); got != 2.5 {
		t.Errorf("Average() = %v, want 2.5", got)
	}
	if got := (Timing{}).Average(10); got != 0 {
		t.Errorf("Average() with no iterations = %v, want 0", got)
	}
}

func TestRunLogs(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	if _, err := Run(context.Background(), demo(), Options{Iterations: 3, Log: logger}); err != nil {
		t.Fatal(err)
	}
	entries := hook.AllEntries()
	if len(entries) != 4 {
		t.Fatalf("got %d log entries, want 4", len(entries))
	}
	if entries[0].Data["iterations"] != "3" {
		t.Errorf("iterations field = %v, want \"3\"", entries[0].Data["iterations"])
	}
	if entries[3].Data["kind"] != "Cone" {
		t.Errorf("last entry kind = %v, want Cone", entries[3].Data["kind"])
	}
}

func TestPerSecond(t *testing.T) {
	tests := []struct {
		ns   float64
		want string
	}{
		{0, "n/a"},
		{float64(time.Millisecond), "1,000/s"},
		{25, "40,000,000/s"},
		{2.5, "400,000,000/s"},
	}
	for _, tt := range tests {
		if got := PerSecond(tt.ns); got != tt.want {
			t.Errorf("PerSecond(%v) = %q, want %q", tt.ns, got, tt.want)
		}
	}
}
