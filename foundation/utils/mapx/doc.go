// Package mapx provides the generic map helpers shared by the script tooling.
//
// Package: mapx
// Title: Map Helpers
// Description: Sorted key listing for deterministic output, plus merging and
//              cloning of parameter and binding maps.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive map utilities
// - 2026-10-17 v0.2.0: Reduced to the helpers used by the interpreter and catalog
package mapx
