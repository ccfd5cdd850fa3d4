// File: io.go
// Title: Pipe Runner
// Description: Evaluates lhs <- rhs. The right side runs first and its value
//              becomes the incoming pipe of the left side.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interp

import (
	"context"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
)

type ioPhase int

const (
	phaseSource ioPhase = iota + 1
	phaseTarget
)

func (p ioPhase) String() string {
	if p == phaseSource {
		return "source"
	}
	return "target"
}

type ioRunner struct {
	base
	rt *runtime
}

func newIORunner(rt *runtime) *ioRunner {
	r := &ioRunner{
		base: newBase("io", rt.sched, rt.logger, ast.AIO),
		rt:   rt,
	}
	r.hook = r.pipe
	return r
}

func (r *ioRunner) pipe(ctx context.Context, node *ast.Node, env *Env, in Pipe, complete Continuation) error {
	lhs, rhs := node.NodeAt(0), node.NodeAt(1)
	if len(node.Items()) != 2 || lhs == nil || rhs == nil {
		return cserror.New("PARSER ERROR: Invalid Pipe").
			WithCode(cserror.CodeSemantic).
			WithOperation("interp.io")
	}

	phase := phaseSource
	r.logger.Debug("Pipe phase", cslog.Fields{"run_id": runID(ctx), "phase": phase.String()})

	r.rt.expression().Run(ctx, rhs, env, in, r.guard(complete, func(src Result) {
		if src.Failed() {
			complete(src)
			return
		}
		phase = phaseTarget
		r.logger.Debug("Pipe phase", cslog.Fields{"run_id": runID(ctx), "phase": phase.String()})
		r.rt.expression().Run(ctx, lhs, env, PipeOf(src.Value), complete)
	}))
	return nil
}
