// File: assignment.go
// Title: Assignment Runner
// Description: Evaluates x = expr, binds the value and forwards it.
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

type assignmentRunner struct {
	base
	rt *runtime
}

func newAssignmentRunner(rt *runtime) *assignmentRunner {
	r := &assignmentRunner{
		base: newBase("assignment", rt.sched, rt.logger, ast.ASS),
		rt:   rt,
	}
	r.hook = r.assign
	return r
}

func (r *assignmentRunner) assign(ctx context.Context, node *ast.Node, env *Env, in Pipe, complete Continuation) error {
	lhs, rhs := node.NodeAt(0), node.NodeAt(1)
	if len(node.Items()) != 2 || !lhs.Is(ast.IDT) || lhs.Token() == nil || rhs == nil {
		return cserror.New("PARSER ERROR: Invalid Assignment").
			WithCode(cserror.CodeSemantic).
			WithOperation("interp.assignment")
	}
	name := lhs.Token().Text

	bind := func(v any) {
		env.Set(name, v)
		r.logger.Debug("Bound variable", cslog.Fields{"run_id": runID(ctx), "name": name})
		complete(Result{Value: v})
	}

	if isSimple(rhs) {
		v, err := valueOf(rhs, env)
		if err != nil {
			return err
		}
		bind(v)
		return nil
	}

	r.rt.expression().Run(ctx, rhs, env, in, r.guard(complete, func(res Result) {
		if res.Failed() {
			complete(res)
			return
		}
		bind(res.Value)
	}))
	return nil
}
