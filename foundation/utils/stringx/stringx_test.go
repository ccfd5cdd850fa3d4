// File: stringx_test.go
// Title: Unit Tests for String Helpers
// Description: Table tests for blank checks, truncation, padding and line
//              splitting, including multi-byte input.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-17

package stringx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"empty string", "", true},
		{"mixed whitespace", " \t\n\r ", true},
		{"string with content", " hello ", false},
		{"unicode content", "こんにちは", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlank(tt.input); got != tt.expected {
				t.Errorf("IsBlank(%q) = %v; want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFirstNonBlank(t *testing.T) {
	if got := FirstNonBlank("", "  ", "x", "y"); got != "x" {
		t.Errorf("FirstNonBlank() = %q; want x", got)
	}
	if got := FirstNonBlank(" "); got != "" {
		t.Errorf("FirstNonBlank() = %q; want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		ellipsis string
		expected string
	}{
		{"fits", "hello", 10, "...", "hello"},
		{"cut with ellipsis", "hello world", 8, "...", "hello..."},
		{"ellipsis too long", "hello", 2, "...", "he"},
		{"multi-byte", "こんにちは世界", 4, "…", "こんに…"},
		{"zero length", "hello", 0, "...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen, tt.ellipsis); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q; want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestPad(t *testing.T) {
	if got := PadRight("IDT", 5, ' '); got != "IDT  " {
		t.Errorf("PadRight() = %q", got)
	}
	if got := PadLeft("7", 3, '0'); got != "007" {
		t.Errorf("PadLeft() = %q", got)
	}
	if got := PadRight("überlang", 3, ' '); got != "überlang" {
		t.Errorf("PadRight() should not cut: %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\rc\n")
	want := []string{"a", "b", "c", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitLines() mismatch (-want +got):\n%s", diff)
	}
}
