// Package interp walks command script syntax trees.
//
// Package: interp
// Title: Command Script Interpreter
// Description: A cooperative, strictly ordered tree-walking interpreter.
//              Runners for the individual node kinds hand off to one another
//              through a Scheduler; every outcome, success or failure, is a
//              Result delivered to a continuation and reported to the caller
//              as an Event.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Execution model:
//
// Start only queues work. All queued tasks run one after another on the
// goroutine that calls Scheduler.Drain, so bindings need no locking.
// Top-level expressions run strictly in sequence: expression i+1 is queued
// from the completion of expression i. In lhs <- rhs the right side runs
// first and its value becomes the incoming Pipe of the left side.
//
// Runtime errors never escape as panics or return values of Start; they
// arrive as failed Results and Events. Run returns an error only when the
// scheduler itself could not drain, for example on context cancellation.
package interp
