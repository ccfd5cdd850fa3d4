// Package stringx provides the string helpers shared by the script tooling.
//
// Package: stringx
// Title: String Helpers
// Description: Unicode-aware truncation and padding used for tabular and
//              terminal output, plus line splitting for script sources.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core string utilities
// - 2025-01-26 v0.2.0: Enhanced documentation
// - 2026-10-17 v0.3.0: Reduced to the helpers used by the CLI and console
package stringx
