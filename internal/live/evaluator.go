package live

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	starjson "go.starlark.net/lib/json"
	starmath "go.starlark.net/lib/math"
	startime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/goliatone/go-airmd/internal/logging"
	"github.com/goliatone/go-airmd/pkg/air"
	"github.com/goliatone/go-airmd/pkg/interfaces"
)

const (
	// DefaultNamespace is the binding name of the component vocabulary.
	DefaultNamespace = "air"
	defaultFilename  = "air-live"
)

// ErrPanic marks a Go panic raised by a binding while a block was running.
var ErrPanic = errors.New("live: evaluation panicked")

// Evaluator runs live block source as Starlark. Every call to Evaluate gets a
// fresh thread and a fresh global scope seeded with the configured bindings,
// so blocks never observe each other's variables.
type Evaluator struct {
	namespace  string
	components map[string]interfaces.ComponentFactory
	globals    starlark.StringDict
	fileOpts   *syntax.FileOptions
	maxSteps   uint64
	sanitizer  interfaces.HTMLSanitizer
	logger     interfaces.Logger
	metrics    interfaces.LiveMetrics
	clock      func() time.Time
}

// Option configures the evaluator.
type Option func(*Evaluator)

// WithNamespace overrides the binding name used for the component vocabulary.
func WithNamespace(name string) Option {
	return func(e *Evaluator) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			e.namespace = trimmed
		}
	}
}

// WithComponents registers extra component factories under the namespace.
// Existing names are replaced.
func WithComponents(factories map[string]interfaces.ComponentFactory) Option {
	return func(e *Evaluator) {
		maps.Copy(e.components, factories)
	}
}

// WithGlobals exposes additional predeclared values to every block. The
// values are frozen when the evaluator is built, so blocks can read them but
// mutation fails.
func WithGlobals(globals starlark.StringDict) Option {
	return func(e *Evaluator) {
		maps.Copy(e.globals, globals)
	}
}

// WithMaxSteps caps the number of Starlark execution steps per block. Zero
// leaves execution unbounded.
func WithMaxSteps(steps uint64) Option {
	return func(e *Evaluator) {
		e.maxSteps = steps
	}
}

// WithSanitizer scrubs captured output and value text before it is returned.
// Component output is trusted and never sanitised.
func WithSanitizer(sanitizer interfaces.HTMLSanitizer) Option {
	return func(e *Evaluator) {
		e.sanitizer = sanitizer
	}
}

// WithLogger injects the logger used for evaluation diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics injects the metrics recorder.
func WithMetrics(metrics interfaces.LiveMetrics) Option {
	return func(e *Evaluator) {
		if metrics != nil {
			e.metrics = metrics
		}
	}
}

// NewEvaluator constructs an evaluator exposing the air vocabulary plus the
// Starlark math, json and time modules.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		namespace:  DefaultNamespace,
		components: air.Vocabulary(),
		globals: starlark.StringDict{
			"math": starmath.Module,
			"json": starjson.Module,
			"time": startime.Module,
		},
		fileOpts: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
		logger:  logging.NoOp(),
		metrics: NoOpMetrics(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, value := range e.globals {
		value.Freeze()
	}
	return e
}

// Evaluate runs code and reports its fragment. A trailing bare expression is
// evaluated against the scope produced by the preceding statements; any other
// trailing statement makes the block yield the text written by print.
func (e *Evaluator) Evaluate(code string) (result interfaces.LiveResult) {
	started := e.clock()
	defer func() {
		if recovered := recover(); recovered != nil {
			result = failure(fmt.Errorf("%w: %v", ErrPanic, recovered))
		}
		if result.Outcome == interfaces.LiveOutcomeError {
			e.logger.Warn("live.block.failed", "error", result.Err)
		}
		e.metrics.ObserveEvaluation(result.Outcome, e.clock().Sub(started))
	}()

	code = strings.TrimSpace(code)
	if code == "" {
		return interfaces.LiveResult{Outcome: interfaces.LiveOutcomeEmpty}
	}

	file, err := e.fileOpts.Parse(defaultFilename, code, 0)
	if err != nil {
		return failure(err)
	}
	if len(file.Stmts) == 0 {
		return interfaces.LiveResult{Outcome: interfaces.LiveOutcomeEmpty}
	}

	var output strings.Builder
	thread := e.newThread(&output)
	globals := e.scope()

	tail, isExpr := file.Stmts[len(file.Stmts)-1].(*syntax.ExprStmt)
	if !isExpr {
		if err := starlark.ExecREPLChunk(file, thread, globals); err != nil {
			return failure(err)
		}
		return e.captured(output.String())
	}

	file.Stmts = file.Stmts[:len(file.Stmts)-1]
	if len(file.Stmts) > 0 {
		if err := starlark.ExecREPLChunk(file, thread, globals); err != nil {
			return failure(err)
		}
	}

	value, err := starlark.EvalExprOptions(e.fileOpts, thread, tail.X, globals)
	if err != nil {
		return failure(err)
	}

	if value == starlark.None {
		return e.captured(output.String())
	}

	component, ok := asComponent(value)
	if !ok {
		component, ok = asComponentSequence(value)
	}
	if ok {
		html, err := component.Render()
		if err != nil {
			return failure(err)
		}
		return interfaces.LiveResult{Outcome: interfaces.LiveOutcomeComponent, HTML: html}
	}

	return interfaces.LiveResult{Outcome: interfaces.LiveOutcomeValue, HTML: e.sanitize(textOf(value))}
}

func (e *Evaluator) newThread(output *strings.Builder) *starlark.Thread {
	thread := &starlark.Thread{
		Name: defaultFilename,
		Print: func(_ *starlark.Thread, msg string) {
			output.WriteString(msg)
			output.WriteByte('\n')
		},
	}
	if e.maxSteps > 0 {
		thread.SetMaxExecutionSteps(e.maxSteps)
	}
	return thread
}

// scope returns a fresh global dictionary for a single block. REPL chunks
// resolve free names against globals, so the bindings live there.
func (e *Evaluator) scope() starlark.StringDict {
	globals := make(starlark.StringDict, len(e.globals)+1)
	maps.Copy(globals, e.globals)
	globals[e.namespace] = namespace(e.namespace, e.components)
	return globals
}

func (e *Evaluator) captured(text string) interfaces.LiveResult {
	if text == "" {
		return interfaces.LiveResult{Outcome: interfaces.LiveOutcomeEmpty}
	}
	return interfaces.LiveResult{Outcome: interfaces.LiveOutcomeOutput, HTML: e.sanitize(text)}
}

func (e *Evaluator) sanitize(text string) string {
	if e.sanitizer == nil {
		return text
	}
	return e.sanitizer.Sanitize(text)
}

func failure(err error) interfaces.LiveResult {
	return interfaces.LiveResult{Outcome: interfaces.LiveOutcomeError, Err: err}
}

var _ interfaces.LiveEvaluator = (*Evaluator)(nil)
