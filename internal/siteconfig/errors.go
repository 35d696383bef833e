package siteconfig

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/siteconf/internal/foundation"
	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// ConfigError reports every problem found in a configuration document.
// There is no partial success: a document with any problem is rejected.
type ConfigError struct {
	Source   string
	Problems []foundation.FieldError
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&b, "%s: ", e.Source)
	}
	fmt.Fprintf(&b, "invalid configuration (%d problem", len(e.Problems))
	if len(e.Problems) != 1 {
		b.WriteString("s")
	}
	b.WriteString(")")
	for _, p := range e.Problems {
		fmt.Fprintf(&b, "\n  - %s [%s/%s]", p.Error(), p.Kind, p.Code)
	}
	return b.String()
}

// Unwrap exposes the classification so CLI adapters can pick an exit code.
func (e *ConfigError) Unwrap() error {
	b := errors.ValidationError("configuration failed validation").
		WithContext("problems", len(e.Problems)).
		WithContext("structural", len(e.Structural())).
		WithContext("invariant", len(e.Invariant()))
	if e.Source != "" {
		b = b.WithContext("source", e.Source)
	}
	return b.Build()
}

// Structural returns the shape problems.
func (e *ConfigError) Structural() []foundation.FieldError {
	return foundation.Invalid(e.Problems...).ByKind(foundation.KindStructural)
}

// Invariant returns the rule violations.
func (e *ConfigError) Invariant() []foundation.FieldError {
	return foundation.Invalid(e.Problems...).ByKind(foundation.KindInvariant)
}
