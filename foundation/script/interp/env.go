// File: env.go
// Title: Bindings and Pipe
// Description: Variable bindings of a run and the value piped into a runner.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interp

import (
	"github.com/msto63/cmdscript/foundation/utils/mapx"
)

// Env holds the variable bindings of a run. It is mutated only by scheduled
// tasks and is not safe for concurrent use.
type Env struct {
	bindings map[string]any
}

// NewEnv creates an empty environment
func NewEnv() *Env {
	return &Env{bindings: make(map[string]any)}
}

// NewEnvFrom creates an environment holding a copy of values
func NewEnvFrom(values map[string]any) *Env {
	env := NewEnv()
	for k, v := range values {
		env.bindings[k] = v
	}
	return env
}

// Get returns the value bound to name
func (e *Env) Get(name string) (any, bool) {
	v, ok := e.bindings[name]
	return v, ok
}

// Set binds name to value, replacing any previous binding
func (e *Env) Set(name string, value any) {
	e.bindings[name] = value
}

// Delete removes a binding
func (e *Env) Delete(name string) {
	delete(e.bindings, name)
}

// Len returns the number of bindings
func (e *Env) Len() int {
	return len(e.bindings)
}

// Names returns the bound names in sorted order
func (e *Env) Names() []string {
	return mapx.SortedKeys(e.bindings)
}

// Snapshot returns a copy of the bindings
func (e *Env) Snapshot() map[string]any {
	return mapx.Clone(e.bindings)
}

// Pipe is the value flowing into a runner from the right side of <-.
// Set distinguishes "no pipe" from a piped nil.
type Pipe struct {
	Value any
	Set   bool
}

// NoPipe is the empty pipe
var NoPipe = Pipe{}

// PipeOf returns a pipe carrying v
func PipeOf(v any) Pipe {
	return Pipe{Value: v, Set: true}
}

// IsMap reports whether the piped value is a parameter map
func (p Pipe) IsMap() bool {
	if !p.Set {
		return false
	}
	_, ok := p.Value.(map[string]any)
	return ok
}
