// Package engine provides the Lisp evaluation engine for solid scripts.
// It wraps zygomys in a sandboxed environment and produces a registry of
// solids from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/solidkit/pkg/solid"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string

	// Err is the Go error raised by a builtin, when there was one. It lets
	// callers match solid.ErrInvalidDimension with errors.Is.
	Err error
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e EvalError) Unwrap() error { return e.Err }

// Engine runs solid scripts in the zygomys interpreter. It is safe for
// concurrent use; every Evaluate call gets a fresh sandbox, so runs never
// share state.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration

	// run evaluates one script. Tests swap it to control timing.
	run func(source string) (*solid.Registry, []EvalError, error)
}

// NewEngine returns an Engine with DefaultTimeout, adjusted by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultTimeout}
	e.run = e.evaluate
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout reports how long one script may run.
func (e *Engine) Timeout() time.Duration { return e.timeout }

// Evaluate runs source and returns a new registry holding every solid the
// script created, in creation order.
//
// Script mistakes (syntax, unknown symbols, invalid dimensions) come back
// as EvalErrors with a nil registry and nil error. The error result is
// reserved for runs that never finished: ErrTimeout, ErrSuperseded, or a
// recovered panic.
func (e *Engine) Evaluate(source string) (*solid.Registry, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		reg, evalErrs, err := e.run(source)
		ch <- outcome{registry: reg, errors: evalErrs, err: err}
	}()

	return e.await(ch, gen)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*solid.Registry, []EvalError, error) {
	// Empty source is a valid program that produces an empty registry.
	if strings.TrimSpace(source) == "" {
		return solid.NewRegistry(), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	st := &evalState{reg: solid.NewRegistry()}
	registerBuiltins(env, st)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		evalErrs := parseZygomysError(err)
		evalErrs[0].Err = st.cause
		return nil, evalErrs, nil
	}

	return st.reg, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
