package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/siteconf/internal/engine"
	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SourceDir string `name:"source-dir" help:"Site source directory; the engine config is written to <dir>/.vuepress/config.js" default:"." type:"path"`
	Command   string `help:"Engine command line, run inside the source directory" default:"vuepress build ."`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := g.Loader().Load(root.Config)
	if err != nil {
		return err
	}

	command := engine.ParseCommand(b.Command)
	if len(command) == 0 {
		return errors.ConfigError("--command must not be empty").Build()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.NewExecEngine(b.SourceDir)
	eng.Command = command
	eng.Stdout = g.Stdout
	eng.Recorder = g.Recorder
	eng.KeepConfig = samePath(root.Config, eng.ConfigPath())
	if eng.KeepConfig {
		slog.Debug("Source configuration is the engine's own file; leaving it in place", logfields.Path(root.Config))
	}

	slog.Info("Starting site build", logfields.Path(root.Config), logfields.Command(b.Command))
	if err := engine.Handoff(ctx, eng, cfg); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Built %q\n", cfg.Title())
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
