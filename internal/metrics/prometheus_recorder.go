package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loadDuration   *prom.HistogramVec
	loadOutcomes   *prom.CounterVec
	problems       *prom.CounterVec
	engineDuration *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loadDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "siteconf",
			Name:      "load_duration_seconds",
			Help:      "Time spent reading, parsing and validating a configuration document",
			Buckets:   prom.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"format"}),
		loadOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "siteconf",
			Name:      "load_outcomes_total",
			Help:      "Configuration loads by outcome",
		}, []string{"outcome"}),
		problems: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "siteconf",
			Name:      "validation_problems_total",
			Help:      "Validation problems reported, by kind",
		}, []string{"kind"}),
		engineDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "siteconf",
			Name:      "engine_run_duration_seconds",
			Help:      "Duration of external site engine runs",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
	}
	reg.MustRegister(pr.loadDuration, pr.loadOutcomes, pr.problems, pr.engineDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(format string, d time.Duration) {
	if p == nil {
		return
	}
	p.loadDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLoadOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.loadOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddProblems(kind string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.problems.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveEngineRun(d time.Duration, success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.engineDuration.WithLabelValues(res).Observe(d.Seconds())
}

// WriteTextfile writes every metric in g to path in the text exposition
// format read by node-exporter's textfile collector. The file is replaced
// atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	return prom.WriteToTextfile(path, g)
}
