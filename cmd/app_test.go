package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chazu/solidkit/pkg/config"
	"github.com/chazu/solidkit/pkg/solid"
	"github.com/sirupsen/logrus"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	c := config.Default()
	c.Mesh.Cells = 32
	l := logrus.New()
	l.SetOutput(io.Discard)
	app, err := NewApp(c, l)
	if err != nil {
		t.Fatal(err)
	}
	return app
}

func TestNewAppKernels(t *testing.T) {
	c := config.Default()
	if _, err := NewApp(c, logrus.New()); err != nil {
		t.Errorf("sdfx kernel: %v", err)
	}

	c.Mesh.Kernel = "cgal"
	if _, err := NewApp(c, logrus.New()); err == nil {
		t.Error("unknown kernel should fail")
	}
}

func TestNewAppEvalTimeout(t *testing.T) {
	c := config.Default()
	c.Eval.Timeout = "250ms"
	app, err := NewApp(c, logrus.New())
	if err != nil {
		t.Fatal(err)
	}
	if got := app.engine.Timeout(); got != 250*time.Millisecond {
		t.Errorf("engine timeout = %v, want 250ms", got)
	}

	c.Eval.Timeout = "later"
	if _, err := NewApp(c, logrus.New()); err == nil {
		t.Error("unparseable timeout should fail")
	}
}

// TestE2EDemoScript exercises the full pipeline: Lisp source -> engine ->
// registry, and checks it matches the built-in demo set.
func TestE2EDemoScript(t *testing.T) {
	app := newTestApp(t)

	res, err := app.EvaluateFile("../examples/demo.lisp")
	if err != nil {
		t.Fatalf("EvaluateFile failed: %v", err)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	want, err := demoSolids()
	if err != nil {
		t.Fatal(err)
	}
	got := res.Registry.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d solids, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].String() != want[i].String() {
			t.Errorf("solid %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestE2EEmptySource(t *testing.T) {
	res := newTestApp(t).Evaluate("")

	if !res.OK() {
		t.Errorf("unexpected errors for empty source: %v", res.Errors)
	}
	if res.Registry == nil || res.Registry.Len() != 0 {
		t.Errorf("expected empty registry, got %v", res.Registry)
	}
	if res.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
}

func TestE2ESyntaxError(t *testing.T) {
	res := newTestApp(t).Evaluate("(+ 1 2)\n(sphere :radius 2")

	if res.OK() {
		t.Fatal("expected eval errors for syntax error")
	}
	if res.Registry.Len() != 0 {
		t.Errorf("expected 0 solids on error, got %d", res.Registry.Len())
	}
	if res.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
}

func TestE2EInvalidDimension(t *testing.T) {
	res := newTestApp(t).Evaluate(`(cube :name "bad" :side -2)`)

	if res.OK() {
		t.Fatal("expected eval error for negative side")
	}
	if !errors.Is(res.Errors[0].Err, solid.ErrInvalidDimension) {
		t.Errorf("error %v should match ErrInvalidDimension", res.Errors[0].Err)
	}
}

func TestEvaluateFileMissing(t *testing.T) {
	_, err := newTestApp(t).EvaluateFile(filepath.Join(t.TempDir(), "nope.lisp"))
	if err == nil {
		t.Fatal("expected error for missing script")
	}
	if !strings.Contains(err.Error(), "reading script") {
		t.Errorf("error = %v, want wrapped read error", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v should wrap os.ErrNotExist", err)
	}
}

func TestExport(t *testing.T) {
	app := newTestApp(t)
	res := app.Evaluate(`(cube :name "a" :side 2) (sphere :name "b" :radius 1)`)
	if !res.OK() {
		t.Fatalf("eval errors: %v", res.Errors)
	}
	dir := t.TempDir()

	paths, err := app.Export(res.Registry, dir, true)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := []string{"00-a.stl", "01-b.stl", "scene.stl"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if filepath.Base(p) != want[i] {
			t.Errorf("path[%d] = %s, want %s", i, filepath.Base(p), want[i])
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("stat %s: %v", p, err)
		}
	}

	paths, err = app.Export(res.Registry, t.TempDir(), false)
	if err != nil || len(paths) != 2 {
		t.Errorf("Export without scene = %v, %v", paths, err)
	}
}

func TestRunReportDemo(t *testing.T) {
	solids, err := demoSolids()
	if err != nil {
		t.Fatal(err)
	}
	skipBench = true
	defer func() { skipBench = false }()

	var buf bytes.Buffer
	if err := runReport(demoCmd, &buf, solids, true); err != nil {
		t.Fatalf("runReport failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Created 5 shapes:",
		"Largest Volume: Red Ball",
		"Most Efficient Shape: Red Ball",
		"Processed 5 shapes successfully",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(out, "PERFORMANCE COMPARISON") {
		t.Error("timing should be skipped")
	}
}

func TestRunReportWithTiming(t *testing.T) {
	solids, _ := demoSolids()
	saved := cfg
	cfg = config.Default()
	cfg.Bench.Iterations = 10
	cfg.Bench.Warmup = 1
	defer func() { cfg = saved }()

	var buf bytes.Buffer
	if err := runReport(demoCmd, &buf, solids[:2], false); err != nil {
		t.Fatalf("runReport failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "10 iterations") || !strings.Contains(out, "Fastest:") {
		t.Errorf("timing section missing:\n%s", out)
	}
	if strings.Contains(out, "POLYMORPHISM DEMONSTRATION") {
		t.Error("shape listing should be omitted")
	}
}

func TestReportEvalErrors(t *testing.T) {
	var buf bytes.Buffer
	err := reportEvalErrors(&buf, "s.lisp", EvalResult{Errors: []EvalErrorData{
		{Line: 3, Message: "boom"},
		{Message: "timeout"},
	}})
	if err == nil || err.Error() != "s.lisp: 2 error(s)" {
		t.Errorf("err = %v", err)
	}
	if got := buf.String(); got != "s.lisp:3: boom\ns.lisp: timeout\n" {
		t.Errorf("output = %q", got)
	}
}
