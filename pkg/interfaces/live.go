package interfaces

import "time"

// LiveOutcome enumerates the terminal states of a single live block evaluation.
type LiveOutcome string

const (
	// LiveOutcomeEmpty covers blank blocks and blocks without statements.
	LiveOutcomeEmpty LiveOutcome = "empty"
	// LiveOutcomeComponent is a tail expression that produced a Component.
	LiveOutcomeComponent LiveOutcome = "component"
	// LiveOutcomeValue is a tail expression rendered as text.
	LiveOutcomeValue LiveOutcome = "value"
	// LiveOutcomeOutput is text captured from print during execution.
	LiveOutcomeOutput LiveOutcome = "output"
	// LiveOutcomeError is a parse, resolve or runtime failure.
	LiveOutcomeError LiveOutcome = "error"
)

// LiveResult carries the fragment produced by a live block. Err is set only
// when Outcome is LiveOutcomeError.
type LiveResult struct {
	Outcome LiveOutcome
	HTML    string
	Err     error
}

// LiveEvaluator executes the source of a live block and reports its result.
// Implementations must never panic; every failure is reported through
// LiveResult.Err.
type LiveEvaluator interface {
	Evaluate(code string) LiveResult
}

// LiveMetrics records live block observations.
type LiveMetrics interface {
	ObserveEvaluation(outcome LiveOutcome, duration time.Duration)
	IncrementFailure(language string)
}
