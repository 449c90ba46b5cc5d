// Package errors provides the classified error type used by the highlighter
// outside of its lenient parsing core.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, filesystem, render, lint, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - RetryStrategy: whether repeating the operation can help
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing messages
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "read markdown file").
//		WithContext("file", path).
//		Build()
package errors
