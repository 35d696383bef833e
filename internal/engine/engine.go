// Package engine hands a validated site configuration to the external
// site-generation engine. The engine itself is opaque: it receives the
// configuration document and either builds the site or reports an error.
package engine

import (
	"context"

	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/siteconfig"
)

// Engine builds a site from a configuration document.
type Engine interface {
	Build(ctx context.Context, doc siteconfig.Document) error
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, doc siteconfig.Document) error

func (f EngineFunc) Build(ctx context.Context, doc siteconfig.Document) error { return f(ctx, doc) }

// Handoff renders cfg into the engine's document form and passes it to eng.
// Unclassified engine failures are returned as engine-category errors with
// the original error as their cause.
func Handoff(ctx context.Context, eng Engine, cfg siteconfig.SiteConfig) error {
	err := eng.Build(ctx, siteconfig.ToExternalFormat(cfg))
	if err == nil {
		return nil
	}
	if errors.IsClassified(err) {
		return err
	}
	return errors.EngineError(err, "site engine failed").
		WithContext("title", cfg.Title()).
		Build()
}
