// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     catalog
// Description: Error definitions for the catalog
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package catalog

import "errors"

var (
	// Validation errors
	ErrMissingID   = errors.New("definition id is required")
	ErrUnknownKind = errors.New("unknown service kind, expected echo or value")

	// Loading errors
	ErrInvalidYAML = errors.New("invalid YAML syntax")
)
