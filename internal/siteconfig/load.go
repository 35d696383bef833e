package siteconfig

import (
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/siteconf/internal/foundation"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
)

// Loader turns configuration sources into validated SiteConfig values.
// The zero value is not usable; construct with NewLoader.
type Loader struct {
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewLoader returns a Loader that records nothing and logs to slog.Default().
func NewLoader() *Loader {
	return &Loader{recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder. A nil recorder disables metrics.
func (l *Loader) WithRecorder(r metrics.Recorder) *Loader {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	l.recorder = r
	return l
}

// WithLogger sets the logger used for load diagnostics.
func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	l.logger = logger
	return l
}

func (l *Loader) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return slog.Default()
}

// Load reads the file at path, choosing the codec from its extension, and
// validates it.
func (l *Loader) Load(path string) (SiteConfig, error) {
	start := time.Now()
	format, _ := FormatFromPath(path)
	doc, err := ReadDocument(path)
	if err != nil {
		l.observe(string(format), path, start, err)
		return SiteConfig{}, err
	}
	cfg, err := l.validate(doc, path)
	l.observe(string(format), path, start, err)
	return cfg, err
}

// Parse validates configuration source bytes in the given format.
func (l *Loader) Parse(data []byte, format Format) (SiteConfig, error) {
	start := time.Now()
	doc, err := ParseDocument(data, format)
	if err != nil {
		l.observe(string(format), "", start, err)
		return SiteConfig{}, err
	}
	cfg, err := l.validate(doc, "")
	l.observe(string(format), "", start, err)
	return cfg, err
}

// LoadDocument validates an already-parsed document.
func (l *Loader) LoadDocument(doc Document) (SiteConfig, error) {
	start := time.Now()
	cfg, err := l.validate(doc, "")
	l.observe("document", "", start, err)
	return cfg, err
}

// validate runs the structural pass over the whole document and then the
// invariant chain over what decoded cleanly. Problems from both passes are
// reported together.
func (l *Loader) validate(doc Document, source string) (SiteConfig, error) {
	d := &decoder{}
	st := d.site(doc)
	result := foundation.Invalid(d.problems...).Combine(invariantChain.Validate(st))
	if len(result.Errors) > 0 {
		return SiteConfig{}, &ConfigError{Source: source, Problems: result.Errors}
	}
	return st.cfg, nil
}

func (l *Loader) observe(format, path string, start time.Time, err error) {
	elapsed := time.Since(start)
	l.recorder.ObserveLoadDuration(format, elapsed)

	attrs := []any{logfields.Format(format), logfields.DurationMS(float64(elapsed.Microseconds()) / 1000)}
	if path != "" {
		attrs = append(attrs, logfields.Path(path))
	}

	var cfgErr *ConfigError
	switch {
	case err == nil:
		l.recorder.IncLoadOutcome(metrics.OutcomeValid)
		l.log().Debug("Configuration loaded", attrs...)
	case errors.As(err, &cfgErr):
		structural, invariant := len(cfgErr.Structural()), len(cfgErr.Invariant())
		l.recorder.IncLoadOutcome(metrics.OutcomeInvalid)
		l.recorder.AddProblems(string(foundation.KindStructural), structural)
		l.recorder.AddProblems(string(foundation.KindInvariant), invariant)
		l.log().Debug("Configuration rejected", append(attrs, logfields.Problems(structural+invariant))...)
	default:
		l.recorder.IncLoadOutcome(metrics.OutcomeError)
		l.log().Debug("Configuration unreadable", append(attrs, logfields.Error(err))...)
	}
}

// Load reads and validates the file at path with a default Loader.
func Load(path string) (SiteConfig, error) { return NewLoader().Load(path) }

// Parse validates source bytes with a default Loader.
func Parse(data []byte, format Format) (SiteConfig, error) { return NewLoader().Parse(data, format) }

// LoadDocument validates an in-memory document with a default Loader.
func LoadDocument(doc Document) (SiteConfig, error) { return NewLoader().LoadDocument(doc) }
