// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     version
// Description: Central version management for the tool and its components
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Tool version
	Tool = "0.1.0"

	// Language version, bumped when the grammar changes
	Language = "1.0.0"

	// Component versions
	Interpreter = "0.1.0"
	Catalog     = "0.1.0"
	Console     = "0.1.0"
)

// Commit is set at build time via -ldflags
var Commit = "dev"

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "language":
		return Language
	case "interpreter":
		return Interpreter
	case "catalog":
		return Catalog
	case "console":
		return Console
	default:
		return Tool
	}
}

// String returns the full version line
func String() string {
	return fmt.Sprintf("cmdscript %s (language %s, commit %s, %s %s/%s)",
		Tool, Language, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
