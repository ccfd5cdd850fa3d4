// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures of the
//              command language: syntax, semantic and runtime errors as well
//              as collaborator and configuration failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Reduced to the codes used by the script engine

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Script language
	CodeSyntax             Code = "SCRIPT_SYNTAX"
	CodeSemantic           Code = "SCRIPT_SEMANTIC"
	CodeUnknownCommand     Code = "SCRIPT_UNKNOWN_COMMAND"
	CodeUnboundVariable    Code = "SCRIPT_UNBOUND_VARIABLE"
	CodeMissingKey         Code = "SCRIPT_MISSING_KEY"
	CodeMissingParameters  Code = "SCRIPT_MISSING_PARAMETERS"
	CodeInvalidParameter   Code = "SCRIPT_INVALID_PARAMETER"
	CodeExecution          Code = "SCRIPT_EXECUTION"
	CodeCancelled          Code = "SCRIPT_CANCELLED"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeSyntax, CodeSemantic, CodeUnknownCommand, CodeUnboundVariable,
		CodeMissingKey, CodeMissingParameters, CodeInvalidParameter, CodeExecution, CodeCancelled,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeValidationFailed, CodeRequiredField:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSyntax:
		return "syntax"
	case CodeSemantic, CodeUnknownCommand, CodeUnboundVariable:
		return "semantic"
	case CodeMissingKey, CodeMissingParameters, CodeInvalidParameter, CodeExecution, CodeCancelled:
		return "runtime"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeValidationFailed, CodeRequiredField:
		return "validation"
	default:
		return "generic"
	}
}
