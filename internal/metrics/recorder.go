package metrics

import "time"

// Outcome enumerates how a configuration load ended.
type Outcome string

const (
	OutcomeValid   Outcome = "valid"   // document accepted
	OutcomeInvalid Outcome = "invalid" // document parsed but failed the schema
	OutcomeError   Outcome = "error"   // document could not be read or parsed
)

// Recorder defines observability hooks for loads and engine runs.
type Recorder interface {
	ObserveLoadDuration(format string, d time.Duration)
	IncLoadOutcome(outcome Outcome)
	AddProblems(kind string, n int)
	ObserveEngineRun(d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(string, time.Duration) {}
func (NoopRecorder) IncLoadOutcome(Outcome)                    {}
func (NoopRecorder) AddProblems(string, int)                   {}
func (NoopRecorder) ObserveEngineRun(time.Duration, bool)      {}
