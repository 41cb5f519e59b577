package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/chazu/solidkit/pkg/solid"
)

// DefaultTimeout bounds one script run unless WithTimeout says otherwise.
const DefaultTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine's timeout.
	ErrTimeout = errors.New("evaluation timed out")

	// ErrSuperseded is returned to a caller whose script finished after a
	// later Evaluate call on the same engine had already started.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets how long one script may run. Non-positive values keep
// DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// outcome is what a script run hands back to the waiting caller.
type outcome struct {
	registry *solid.Registry
	errors   []EvalError
	err      error
}

// await blocks until the run numbered gen reports on ch or the timeout
// elapses. A timed-out run keeps going in its goroutine; whatever it sends
// later lands in the buffered channel and is dropped.
func (e *Engine) await(ch <-chan outcome, gen uint64) (*solid.Registry, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		if gen != e.latest() {
			return nil, nil, ErrSuperseded
		}
		return out.registry, out.errors, out.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}
}

func (e *Engine) latest() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}
