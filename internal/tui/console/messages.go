// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     console
// Description: Message types for async operations in the console
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

import (
	"time"

	"github.com/msto63/cmdscript/foundation/script/interp"
)

// EntryKind classifies transcript entries
type EntryKind int

const (
	EntryInput EntryKind = iota
	EntryEvent
	EntryError
	EntrySystem
)

// Entry is one line block of the transcript
type Entry struct {
	Kind      EntryKind
	Text      string
	Event     interp.Event
	Timestamp time.Time
}

// Message types for tea.Cmd async operations

// runDoneMsg is sent when a submitted line finished running
type runDoneMsg struct {
	summary interp.Summary
	err     error
}
