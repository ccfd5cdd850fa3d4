// Package log provides structured logging for the command script engine.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, field-based logging with JSON, text, console and
//              logfmt output. Loggers are immutable: every With* call returns
//              a derived copy, so a component logger can be handed to
//              concurrently running sessions without coordination.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-17 v0.2.0: Removed async buffering and audit level, stable field order
//
// Usage:
//
//	logger := log.New().
//		WithLevel(log.LevelDebug).
//		WithFormat(log.FormatText).
//		WithField("component", "interp")
//
//	logger.Debug("scheduled", log.Fields{"node": "CMD", "queue": 3})
//
//	timer := logger.StartTimer("run")
//	// ... run a script
//	timer.Stop()
package log
