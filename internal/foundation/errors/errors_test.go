package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "cannot parse configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "config.js").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "cannot parse configuration" {
			t.Errorf("unexpected message %s", err.Message())
		}

		file, exists := err.Context().Get("file")
		if !exists || file != "config.js" {
			t.Errorf("expected context file=config.js, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		inner := ValidationError("2 problems").Build()
		err := fmt.Errorf("loading site: %w", inner)

		if !IsClassified(err) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryValidation) {
			t.Error("expected error to have validation category")
		}
		if HasCategory(errors.New("plain"), CategoryInternal) {
			t.Error("expected plain errors to carry no category")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := ConfigError("bad").Build()
		derived := base.WithContext("line", 3)

		if _, ok := base.Context().Get("line"); ok {
			t.Error("expected base context to be unchanged")
		}
		if v, _ := derived.Context().Get("line"); v != 3 {
			t.Errorf("expected line=3, got %v", v)
		}
		if !errors.Is(derived, base) {
			t.Error("expected derived error to match base by category and message")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("exit status 1")
		err := EngineError(originalErr, "site engine failed").
			WithSeverity(SeverityWarning).
			WithContext("command", "vuepress build").
			Build()

		if err.Category() != CategoryEngine {
			t.Errorf("expected category %s, got %s", CategoryEngine, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
			{"NewError", NewError(CategoryFileSystem, "test"), CategoryFileSystem, SeverityError},
			{"EngineError", EngineError(errors.New("x"), "test"), CategoryEngine, SeverityError},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	ctx := ErrorContext(nil).Set("key1", "value1")
	ctx = ctx.Set("key1", "overridden")

	if v, ok := ctx.Get("key1"); !ok || v != "overridden" {
		t.Errorf("unexpected context %v", ctx)
	}

	if _, ok := ErrorContext(nil).Get("missing"); ok {
		t.Error("expected nil context lookup to miss")
	}
}
