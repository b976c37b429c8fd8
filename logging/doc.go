// Package logging builds log/slog loggers for the application and the CLI.
// Servers log JSON to stderr; TraceFunc turns a logger into the trace sink
// the extraction pipeline reports its progress to.
package logging
