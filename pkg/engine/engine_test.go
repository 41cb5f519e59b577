package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chazu/solidkit/pkg/solid"
)

func TestEvaluateBlankSource(t *testing.T) {
	for _, src := range []string{"", "   \n\t  \n  "} {
		reg := evalOK(t, src)
		if reg.Len() != 0 {
			t.Errorf("Evaluate(%q) created %d solids, want 0", src, reg.Len())
		}
	}
}

func TestEvaluateKeepsSourceOrder(t *testing.T) {
	reg := evalOK(t, `
(def r 3)
(sphere :name "first" :radius r)
(cube :name "second" :side (+ r 1))
(cone :name "third" :radius r :height (* r 2))
`)
	want := []struct {
		name string
		kind solid.Kind
		dims []float64
	}{
		{"first", solid.KindSphere, []float64{3}},
		{"second", solid.KindCube, []float64{4}},
		{"third", solid.KindCone, []float64{3, 6}},
	}
	if reg.Len() != len(want) {
		t.Fatalf("created %d solids, want %d", reg.Len(), len(want))
	}
	for i, w := range want {
		s := reg.At(i)
		if s.Name() != w.name || s.Kind() != w.kind {
			t.Errorf("solid %d = %s %q, want %s %q", i, s.Kind(), s.Name(), w.kind, w.name)
		}
		got := solid.Dimensions(s)
		for j := range w.dims {
			if got[j] != w.dims[j] {
				t.Errorf("solid %d dims = %v, want %v", i, got, w.dims)
				break
			}
		}
	}
}

func TestEvaluateScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unclosed shape", "(sphere :radius 2)\n(cube :side 3"},
		{"unknown shape", `(dodecahedron :side 2)`},
		{"undefined dimension", `(cylinder :radius r :height 4)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := evalFail(t, tt.source)
			if e.Message == "" {
				t.Error("eval error message should not be empty")
			}
		})
	}
}

func TestEvaluateFailureDropsEarlierSolids(t *testing.T) {
	reg, evalErrs, err := NewEngine().Evaluate(`(sphere :name "kept?" :radius 2) (cube :name "bad" :side 0)`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if reg != nil {
		t.Fatalf("registry = %d solids, want nil after a failing script", reg.Len())
	}
	if len(evalErrs) != 1 || !errors.Is(evalErrs[0], solid.ErrInvalidDimension) {
		t.Errorf("eval errors = %v, want one invalid dimension", evalErrs)
	}
}

func TestEvalErrorString(t *testing.T) {
	e := EvalError{Line: 5, Message: "side length must be positive and greater than zero (got 0)"}
	if got := e.Error(); got != "line 5: side length must be positive and greater than zero (got 0)" {
		t.Errorf("Error() = %q", got)
	}
	if got := (EvalError{Message: "no location"}).Error(); strings.Contains(got, "line") {
		t.Errorf("Error() without a line = %q", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine()

	source := `(sphere :radius 3) (cube :side 3) (cylinder :radius 3 :height 4)`
	var first []string
	for i := 0; i < 5; i++ {
		reg, evalErrs, err := eng.Evaluate(source)
		if err != nil {
			t.Fatalf("iteration %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: unexpected eval errors: %v", i, evalErrs)
		}
		if reg == nil || reg.Len() != 3 {
			t.Fatalf("iteration %d: expected 3 solids, got %v", i, reg)
		}
		var got []string
		for _, s := range reg.All() {
			got = append(got, s.String())
		}
		if i == 0 {
			first = got
			continue
		}
		if strings.Join(got, "|") != strings.Join(first, "|") {
			t.Errorf("iteration %d: %v differs from %v", i, got, first)
		}
	}
}

func TestWithTimeout(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want time.Duration
	}{
		{"default", nil, DefaultTimeout},
		{"custom", []Option{WithTimeout(time.Second)}, time.Second},
		{"zero keeps default", []Option{WithTimeout(0)}, DefaultTimeout},
		{"negative keeps default", []Option{WithTimeout(-time.Second)}, DefaultTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewEngine(tt.opts...).Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateTimeout(t *testing.T) {
	eng := NewEngine(WithTimeout(20 * time.Millisecond))
	release := make(chan struct{})
	defer close(release)
	eng.run = func(string) (*solid.Registry, []EvalError, error) {
		<-release
		return solid.NewRegistry(), nil, nil
	}

	start := time.Now()
	reg, evalErrs, err := eng.Evaluate(`(sphere :radius 1)`)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if reg != nil || evalErrs != nil {
		t.Errorf("timed-out run returned %v, %v", reg, evalErrs)
	}
	if !strings.Contains(err.Error(), "20ms") {
		t.Errorf("error %q should name the timeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Evaluate took %s with a 20ms timeout", elapsed)
	}
}

func TestEvaluateSupersededRun(t *testing.T) {
	eng := NewEngine()
	started := make(chan struct{})
	release := make(chan struct{})
	eng.run = func(source string) (*solid.Registry, []EvalError, error) {
		if strings.Contains(source, "slow") {
			close(started)
			<-release
		}
		return eng.evaluate(source)
	}

	slowErr := make(chan error, 1)
	go func() {
		_, _, err := eng.Evaluate(`(sphere :name "slow" :radius 1)`)
		slowErr <- err
	}()
	<-started

	reg := evalOKWith(t, eng, `(cube :name "fast" :side 2)`)
	if reg.Len() != 1 || reg.At(0).Name() != "fast" {
		t.Errorf("newer run = %v, want the fast cube", reg.All())
	}

	close(release)
	if err := <-slowErr; !errors.Is(err, ErrSuperseded) {
		t.Errorf("older run err = %v, want ErrSuperseded", err)
	}
}

func TestEvaluateRecoversPanic(t *testing.T) {
	eng := NewEngine()
	eng.run = func(string) (*solid.Registry, []EvalError, error) {
		panic("kernel exploded")
	}
	reg, _, err := eng.Evaluate(`(cube)`)
	if reg != nil || err == nil || !strings.Contains(err.Error(), "kernel exploded") {
		t.Errorf("Evaluate() = %v, %v; want the recovered panic", reg, err)
	}
}

// evalOKWith is evalOK on a caller-supplied engine.
func evalOKWith(t *testing.T, eng *Engine, source string) *solid.Registry {
	t.Helper()
	reg, evalErrs, err := eng.Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate(%q) = %v, %v", source, evalErrs, err)
	}
	return reg
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"short form", "line 3: radius must be positive", 3, "radius must be positive"},
		{"no line info", "cube: unknown keyword :depth", 0, "cube: unknown keyword :depth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errors.New(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if errs[0].Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestEvalErrorUnwrap(t *testing.T) {
	cause := &solid.InvalidDimensionError{Dimension: "radius", Value: -1}
	e := EvalError{Line: 2, Message: cause.Error(), Err: cause}
	if !errors.Is(e, solid.ErrInvalidDimension) {
		t.Error("errors.Is should see through EvalError")
	}
	if errors.Is(EvalError{Message: "plain"}, solid.ErrInvalidDimension) {
		t.Error("EvalError without a cause should not match")
	}
}
