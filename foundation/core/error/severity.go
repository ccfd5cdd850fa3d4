// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that log output can be
//              routed to an appropriate level.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-17 v0.2.0: Severity mapping for script error codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a user error in a script (syntax, unbound variable)
	SeverityLow Severity = iota

	// SeverityMedium is a failed command that leaves the engine usable
	SeverityMedium

	// SeverityHigh is a broken configuration or collaborator
	SeverityHigh

	// SeverityCritical is an engine bug (recovered panic)
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return SeverityHigh
	case CodeSyntax, CodeSemantic, CodeUnknownCommand, CodeUnboundVariable,
		CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeRequiredField,
		CodeMissingKey, CodeMissingParameters, CodeInvalidParameter:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
