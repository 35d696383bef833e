package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/siteconfig"
)

// Global carries process-wide collaborators into every command.
type Global struct {
	Stdout   io.Writer
	Registry *prom.Registry
	Recorder metrics.Recorder
}

// NewGlobal wires a fresh metrics registry. Commands write user-facing output to stdout.
func NewGlobal(stdout io.Writer) *Global {
	reg := prom.NewRegistry()
	return &Global{
		Stdout:   stdout,
		Registry: reg,
		Recorder: metrics.NewPrometheusRecorder(reg),
	}
}

// Loader returns a configuration loader reporting into g's recorder.
func (g *Global) Loader() *siteconfig.Loader {
	return siteconfig.NewLoader().WithRecorder(g.Recorder).WithLogger(slog.Default())
}

// CLI definition & global flags.
type CLI struct {
	Config          string           `short:"c" help:"Site configuration file (.js, .cjs, .mjs, .json, .jsonc, .yaml, .yml)" default:".vuepress/config.js" type:"path"`
	Verbose         bool             `short:"v" help:"Enable verbose logging"`
	Version         kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsTextfile string           `name:"metrics-textfile" help:"Write Prometheus metrics to this file on exit (node-exporter textfile format)" type:"path"`

	Validate ValidateCmd `cmd:"" help:"Validate the site configuration and report every problem"`
	Export   ExportCmd   `cmd:"" help:"Write the validated configuration in the engine's document format"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Build    BuildCmd    `cmd:"" help:"Validate the configuration and hand it to the site engine"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// WriteMetrics writes g's registry to the configured textfile, if any.
func (c *CLI) WriteMetrics(g *Global) error {
	if c.MetricsTextfile == "" || g == nil || g.Registry == nil {
		return nil
	}
	if err := metrics.WriteTextfile(c.MetricsTextfile, g.Registry); err != nil {
		return err
	}
	slog.Debug("Metrics written", logfields.Path(c.MetricsTextfile))
	return nil
}
