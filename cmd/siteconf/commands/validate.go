package commands

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/siteconf/internal/foundation"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/siteconfig"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Format string `help:"Report format" enum:"text,json" default:"text"`
}

// validationReport is the JSON shape printed by 'validate --format json'.
type validationReport struct {
	Source   string                  `json:"source"`
	Valid    bool                    `json:"valid"`
	Problems []foundation.FieldError `json:"problems"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := g.Loader().Load(root.Config)

	var cfgErr *siteconfig.ConfigError
	if err != nil && !stderrors.As(err, &cfgErr) {
		// Unreadable or unparseable: nothing to report field by field.
		return err
	}
	if cfgErr != nil {
		for _, p := range cfgErr.Problems {
			slog.Debug("Configuration problem",
				logfields.Field(p.Field),
				logfields.Kind(string(p.Kind)),
				logfields.Code(p.Code))
		}
	}

	if v.Format == "json" {
		report := validationReport{Source: root.Config, Valid: err == nil, Problems: []foundation.FieldError{}}
		if cfgErr != nil {
			report.Problems = cfgErr.Problems
		}
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return encErr
		}
		return err
	}

	if err != nil {
		return err
	}
	tc := cfg.ThemeConfig()
	fmt.Fprintf(g.Stdout, "%s: valid (%q, %d nav items, %d sidebar sections)\n",
		root.Config, cfg.Title(), len(tc.NavItems()), len(tc.SidebarPrefixes()))
	return nil
}
