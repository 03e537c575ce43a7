// Package logger provides structured logging for shardmap tools.
//
// It wraps the standard library log/slog:
//
//   - logger.go: Logger interface, handler selection, global level
//   - context.go: context propagation of the logger and run identifiers
//
// Features:
//
//   - JSON and text output formats
//   - Runtime log level changes (used by the config watcher)
//   - Context propagation of run and phase identifiers
package logger
