// File: expression.go
// Title: Expression Runner
// Description: Routes an expression node to the runner for its kind and
//              owns the lazily created sub-runners.
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

	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
	"github.com/msto63/cmdscript/foundation/script/repository"
)

// runtime is shared by all runners of one Interpreter
type runtime struct {
	sched     *Scheduler
	logger    *cslog.Logger
	repo      repository.Repository
	displayer repository.Displayer
	commands  map[string]CommandHandler

	expr   *expressionRunner
	cmd    *commandRunner
	assign *assignmentRunner
	io     *ioRunner
}

func (rt *runtime) expression() *expressionRunner {
	if rt.expr == nil {
		rt.expr = newExpressionRunner(rt)
	}
	return rt.expr
}

func (rt *runtime) command() *commandRunner {
	if rt.cmd == nil {
		rt.cmd = newCommandRunner(rt)
	}
	return rt.cmd
}

func (rt *runtime) assignment() *assignmentRunner {
	if rt.assign == nil {
		rt.assign = newAssignmentRunner(rt)
	}
	return rt.assign
}

func (rt *runtime) pipe() *ioRunner {
	if rt.io == nil {
		rt.io = newIORunner(rt)
	}
	return rt.io
}

type expressionRunner struct {
	base
	rt *runtime
}

func newExpressionRunner(rt *runtime) *expressionRunner {
	r := &expressionRunner{
		base: newBase("expression", rt.sched, rt.logger,
			ast.CMD, ast.ASS, ast.AIO, ast.IDT, ast.STR, ast.NUM, ast.BOL, ast.MAP),
		rt: rt,
	}
	r.hook = r.route
	return r
}

func (r *expressionRunner) route(ctx context.Context, node *ast.Node, env *Env, in Pipe, complete Continuation) error {
	switch node.Type() {
	case ast.CMD:
		r.rt.command().Run(ctx, node, env, in, complete)
	case ast.ASS:
		r.rt.assignment().Run(ctx, node, env, in, complete)
	case ast.AIO:
		r.rt.pipe().Run(ctx, node, env, in, complete)
	default:
		v, err := valueOf(node, env)
		if err != nil {
			return err
		}
		complete(Result{Value: v})
	}
	return nil
}
