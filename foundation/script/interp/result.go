// File: result.go
// Title: Results and Events
// Description: The outcome of a runner, the per-expression event reported
//              to callers and the summary of a whole run.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interp

import (
	"time"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
)

// CodeOK is the event code of a successful expression
const CodeOK cserror.Code = "OK"

// Result is the outcome of a runner: a value or an error
type Result struct {
	Value any
	Err   error
}

// Failed reports whether the result carries an error
func (r Result) Failed() bool {
	return r.Err != nil
}

// Continuation receives the Result of a runner
type Continuation func(Result)

// Event reports the outcome of one top-level expression. Index is the
// position of the expression in the program, -1 when the run failed before
// any expression could start.
type Event struct {
	Index    int
	OK       bool
	Code     cserror.Code
	Severity cserror.Severity
	Message  string
	Results  []any
	Err      error
}

func newEvent(index int, r Result) Event {
	if r.Err != nil {
		return Event{
			Index:    index,
			OK:       false,
			Code:     cserror.GetCode(r.Err),
			Severity: cserror.GetSeverity(r.Err),
			Message:  r.Err.Error(),
			Err:      r.Err,
		}
	}
	return Event{
		Index:    index,
		OK:       true,
		Code:     CodeOK,
		Severity: cserror.SeverityLow,
		Message:  "OK",
		Results:  []any{r.Value},
	}
}

// Value returns the single result value of a successful event
func (e Event) Value() any {
	if len(e.Results) == 0 {
		return nil
	}
	return e.Results[0]
}

// Summary describes a completed run
type Summary struct {
	RunID    string
	Events   []Event
	Executed int
	Failed   int
	// Value is the result of the last successful expression
	Value    any
	Err      error
	Duration time.Duration
}

// OK reports whether every executed expression succeeded
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Err == nil
}
