package commands

import (
	"bytes"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/siteconfig"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Format string `help:"Output format" enum:"module,json,yaml" default:"module"`
	Output string `short:"o" help:"Output file (default stdout)" type:"path"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	cfg, err := g.Loader().Load(root.Config)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := siteconfig.Write(&buf, siteconfig.ToExternalFormat(cfg), siteconfig.Format(e.Format)); err != nil {
		return err
	}

	if e.Output == "" {
		_, err := g.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(e.Output, buf.Bytes(), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write exported configuration").
			WithContext("path", e.Output).
			Build()
	}
	slog.Info("Configuration exported", logfields.Output(e.Output), logfields.Format(e.Format))
	return nil
}
