package metrics

import (
	"testing"
	"time"
)

// countingRecorder is a hand-rolled Recorder used to check call plumbing.
type countingRecorder struct {
	outcomes map[Outcome]int
	problems map[string]int
	loads    int
	engine   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{outcomes: map[Outcome]int{}, problems: map[string]int{}}
}

func (c *countingRecorder) ObserveLoadDuration(string, time.Duration) { c.loads++ }
func (c *countingRecorder) IncLoadOutcome(o Outcome)                  { c.outcomes[o]++ }
func (c *countingRecorder) AddProblems(kind string, n int)            { c.problems[kind] += n }
func (c *countingRecorder) ObserveEngineRun(time.Duration, bool)      { c.engine++ }

func TestRecorderImplementations(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)
	var _ Recorder = newCountingRecorder()

	var r Recorder = NoopRecorder{}
	r.ObserveLoadDuration("yaml", time.Millisecond)
	r.IncLoadOutcome(OutcomeValid)
	r.AddProblems("invariant", 3)
	r.ObserveEngineRun(time.Second, true)

	c := newCountingRecorder()
	r = c
	r.IncLoadOutcome(OutcomeInvalid)
	r.AddProblems("invariant", 3)
	if c.outcomes[OutcomeInvalid] != 1 || c.problems["invariant"] != 3 {
		t.Fatalf("unexpected counts: %+v", c)
	}
}
