package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/solidkit/pkg/config"
	"github.com/chazu/solidkit/pkg/engine"
	"github.com/chazu/solidkit/pkg/kernel"
	"github.com/chazu/solidkit/pkg/kernel/manifold"
	"github.com/chazu/solidkit/pkg/kernel/sdfx"
	"github.com/chazu/solidkit/pkg/solid"
	"github.com/chazu/solidkit/pkg/tessellate"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// App ties the scripting engine, the geometry kernel and the settings
// together for the commands.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	cfg    *config.Config
	log    logrus.FieldLogger
}

// EvalErrorData is one script error with its position.
type EvalErrorData struct {
	Line    int
	Col     int
	Message string
	Err     error
}

// EvalResult is the outcome of evaluating one script.
type EvalResult struct {
	Registry *solid.Registry
	Errors   []EvalErrorData
}

// OK reports whether the script ran without errors.
func (r EvalResult) OK() bool { return len(r.Errors) == 0 }

// NewApp creates an App with an engine bounded by cfg.Eval.Timeout and the
// geometry kernel named by cfg.Mesh.Kernel.
func NewApp(cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	k, err := newKernel(cfg.Mesh)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.EvalTimeout()
	if err != nil {
		return nil, err
	}
	return &App{
		engine: engine.NewEngine(engine.WithTimeout(timeout)),
		kernel: k,
		cfg:    cfg,
		log:    log,
	}, nil
}

func newKernel(m config.Mesh) (kernel.Kernel, error) {
	switch m.Kernel {
	case config.KernelSdfx, "":
		return sdfx.NewWithCells(m.Cells), nil
	case config.KernelManifold:
		return manifold.New(m.Segments)
	default:
		return nil, fmt.Errorf("unknown geometry kernel %q", m.Kernel)
	}
}

// Evaluate runs a script. Script errors land in the result; the registry is
// always non-nil so callers can report on it unconditionally.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Registry: solid.NewRegistry(),
		Errors:   []EvalErrorData{},
	}

	reg, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.WithError(err).Error("evaluate failed")
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error(), Err: err})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
				Err:     e.Err,
			})
		}
		return result
	}

	result.Registry = reg
	a.log.WithField("solids", reg.Len()).Debug("script evaluated")
	return result
}

// EvaluateFile reads and evaluates the script at path.
func (a *App) EvaluateFile(path string) (EvalResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return EvalResult{}, errors.Wrapf(err, "reading script %s", path)
	}
	return a.Evaluate(string(source)), nil
}

// Export writes one STL per solid into dir, plus scene.stl holding every
// solid laid out side by side when withScene is set.
func (a *App) Export(reg *solid.Registry, dir string, withScene bool) ([]string, error) {
	paths, err := tessellate.ExportSTL(reg, a.kernel, dir, a.log)
	if err != nil {
		return paths, err
	}
	if !withScene {
		return paths, nil
	}

	scene, err := tessellate.Scene(reg, a.kernel, a.cfg.Mesh.Gap)
	if err != nil {
		return paths, err
	}
	path := filepath.Join(dir, "scene.stl")
	if err := a.kernel.SaveSTL(scene, path); err != nil {
		return paths, errors.Wrap(err, "writing scene")
	}
	a.log.WithField("path", path).Debug("wrote scene")
	return append(paths, path), nil
}

// Accuracy compares every solid's mesh with its analytic measurements.
func (a *App) Accuracy(reg *solid.Registry) ([]tessellate.Deviation, error) {
	return tessellate.Compare(reg, a.kernel)
}
