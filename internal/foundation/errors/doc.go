// Package errors provides the classified error primitives used across siteconf.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, filesystem, engine, internal)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, context and cause
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing text for the command line
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "cannot read configuration").
//		WithContext("path", path).
//		Build()
package errors
