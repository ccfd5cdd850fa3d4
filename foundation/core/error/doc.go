// Package error provides the structured error type shared by the script
// engine, its collaborators and the command line tools.
//
// Package: error
// Title: Structured Errors
// Description: Errors carry a Code, a Severity, the operation that failed and
//              free-form details. The interpreter reports every failure with
//              a code so callers can react without parsing messages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Usage:
//
//	err := error.New("Variable [x] is not set").
//		WithCode(error.CodeUnboundVariable).
//		WithOperation("interp.deref").
//		WithDetail("name", "x")
//
//	if error.HasCode(err, error.CodeUnboundVariable) { ... }
//
// Errors returned by collaborators (repositories, services) are passed through
// unchanged; GetCode reports CodeUnknown for plain Go errors.
package error
