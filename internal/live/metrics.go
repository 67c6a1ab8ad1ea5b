package live

import (
	"time"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// NoOpMetrics returns a metrics recorder that drops every observation.
func NoOpMetrics() interfaces.LiveMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveEvaluation(interfaces.LiveOutcome, time.Duration) {}

func (noopMetrics) IncrementFailure(string) {}
