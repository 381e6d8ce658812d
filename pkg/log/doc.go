// Package log provides structured logging for stockd services.
//
// Loggers are built on log/slog with typed field constructors and a small
// configuration surface (level and text/json format). Components receive a
// Logger by constructor injection and tag their output with Component:
//
//	logger := log.NewLogger(log.WithLevel(log.InfoLevel))
//	svc := inventory.NewWithLogger(store, bus, logger.With(log.Component("inventory")))
//
// ApplyConfig builds a process-wide logger from string level/format values
// (typically sourced from flags or STOCKD_* env vars), and RedirectStdLog
// routes standard-library log output (Pebble uses it) through the
// structured pipeline.
package log
