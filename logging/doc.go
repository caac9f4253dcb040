// Package logging builds the slog loggers used across the registry.
// Output goes to the given writer as JSON lines or logfmt text.
package logging
