// Package metrics records configuration load and engine hand-off metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a real recorder is wired:
//
//	reg := prometheus.NewRegistry()
//	loader := siteconfig.NewLoader().WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The CLI is short-lived, so instead of serving /metrics it writes the
// registry to a node-exporter textfile on exit (see WriteTextfile).
package metrics
