package engine

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/siteconfig"
)

// DefaultCommand is the engine invocation used when none is configured.
var DefaultCommand = []string{"vuepress", "build", "."}

// ConfigRelPath is where the engine expects its configuration module,
// relative to the source directory.
const ConfigRelPath = ".vuepress/config.js"

// ExecEngine runs the engine as a subprocess. Build writes the document to
// <SourceDir>/.vuepress/config.js and then runs Command inside SourceDir.
// With KeepConfig set the file already in place is used as is.
type ExecEngine struct {
	SourceDir  string
	Command    []string
	KeepConfig bool
	Stdout     io.Writer
	Stderr     io.Writer
	Recorder   metrics.Recorder
	Logger     *slog.Logger
}

// ConfigPath is the file the engine reads its configuration from.
func (e *ExecEngine) ConfigPath() string {
	return filepath.Join(e.SourceDir, filepath.FromSlash(ConfigRelPath))
}

// NewExecEngine returns an ExecEngine for sourceDir using DefaultCommand and
// the process's standard streams.
func NewExecEngine(sourceDir string) *ExecEngine {
	return &ExecEngine{
		SourceDir: sourceDir,
		Command:   append([]string(nil), DefaultCommand...),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Recorder:  metrics.NoopRecorder{},
	}
}

// ParseCommand splits a command line on whitespace. Quoting is not supported.
func ParseCommand(line string) []string {
	return strings.Fields(line)
}

func (e *ExecEngine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e *ExecEngine) recorder() metrics.Recorder {
	if e.Recorder != nil {
		return e.Recorder
	}
	return metrics.NoopRecorder{}
}

// Build implements Engine.
func (e *ExecEngine) Build(ctx context.Context, doc siteconfig.Document) error {
	if len(e.Command) == 0 {
		return errors.ConfigError("engine command is empty").Build()
	}
	configPath := e.ConfigPath()
	if !e.KeepConfig {
		if err := e.writeConfig(configPath, doc); err != nil {
			return err
		}
	}

	// #nosec G204 -- the command comes from the operator's own flags
	cmd := exec.CommandContext(ctx, e.Command[0], e.Command[1:]...)
	cmd.Dir = e.SourceDir
	var stderr bytes.Buffer
	cmd.Stdout = e.Stdout
	cmd.Stderr = &stderr
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(e.Stderr, &stderr)
	}

	line := strings.Join(e.Command, " ")
	e.logger().Info("Running site engine",
		logfields.Command(line),
		logfields.Path(configPath))

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)
	e.recorder().ObserveEngineRun(elapsed, err == nil)

	if err != nil {
		b := errors.EngineError(err, "site engine failed").
			WithContext("command", line).
			WithContext("dir", e.SourceDir)
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			b = b.WithContext("exit_code", exitErr.ExitCode())
		}
		if tail := lastLine(stderr.String()); tail != "" {
			b = b.WithContext("stderr", tail)
		}
		if ctx.Err() != nil {
			b = b.WithContext("canceled", true)
		}
		return b.Build()
	}

	e.logger().Info("Site engine finished",
		logfields.Command(line),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	return nil
}

// writeConfig writes the configuration module through a temporary file and
// a rename so the engine never reads a partial file.
func (e *ExecEngine) writeConfig(path string, doc siteconfig.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot create engine config directory").
			WithContext("path", dir).
			Build()
	}

	tmp, err := os.CreateTemp(dir, ".config-*.js")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot create engine config").
			WithContext("path", dir).
			Build()
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := siteconfig.WriteModule(tmp, doc); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write engine config").
			WithContext("path", tmp.Name()).
			Build()
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot install engine config").
			WithContext("path", path).
			Build()
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
