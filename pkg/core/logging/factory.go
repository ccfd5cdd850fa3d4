// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from config
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format (json, text, console, logfmt; default: text)
	Format string

	// File receives log output instead of Output when set
	File string

	// Output writer (default: stderr)
	Output io.Writer

	// Additional outputs besides the main one
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
	}
}

// FromConfig derives the logger configuration from the application config
func FromConfig(cfg *config.Config) LoggerConfig {
	lc := DefaultLoggerConfig(cfg.General.Name)
	if cfg.General.LogLevel != "" {
		lc.Level = cfg.General.LogLevel
	}
	if cfg.General.LogFormat != "" {
		lc.Format = cfg.General.LogFormat
	}
	lc.File = cfg.General.LogFile
	return lc
}

// NewLogger creates a foundation logger. The returned closer releases the
// log file, if one was opened.
func NewLogger(cfg LoggerConfig) (*cslog.Logger, io.Closer, error) {
	level, err := cslog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, cserror.Wrap(err, "invalid log level").
			WithCode(cserror.CodeInvalidConfig).
			WithOperation("logging.NewLogger")
	}
	format := cslog.FormatText
	if cfg.Format != "" {
		if format, err = cslog.ParseFormat(cfg.Format); err != nil {
			return nil, nil, cserror.Wrap(err, "invalid log format").
				WithCode(cserror.CodeInvalidConfig).
				WithOperation("logging.NewLogger")
		}
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		file, err := openLogFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		output, closer = file, file
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := cslog.NewWithConfig(cslog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
	return logger, closer, nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *cslog.Logger {
	logger, _, err := NewLogger(DefaultLoggerConfig(serviceName))
	if err != nil {
		return cslog.GetDefault()
	}
	return logger
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, cserror.Wrap(err, "failed to create log directory").
			WithCode(cserror.CodeConfigError).
			WithOperation("logging.NewLogger")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, cserror.Wrap(err, "failed to open log file").
			WithCode(cserror.CodeConfigError).
			WithOperation("logging.NewLogger").
			WithDetail("path", path)
	}
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
