// File: runner.go
// Title: Runner Base
// Description: Shared dispatch for all runners: node checks, scheduling,
//              single completion and panic recovery.
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
	"fmt"
	"strings"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
)

// Runner evaluates one node and reports its Result to k. Run only queues
// work; k is always called from a scheduled task, exactly once.
type Runner interface {
	Run(ctx context.Context, node *ast.Node, env *Env, in Pipe, k Continuation)
}

// hookFunc does the node-specific work. It either calls complete or
// returns an error.
type hookFunc func(ctx context.Context, node *ast.Node, env *Env, in Pipe, complete Continuation) error

type base struct {
	name    string
	accepts []ast.NodeType
	hook    hookFunc
	sched   *Scheduler
	logger  *cslog.Logger
}

func newBase(name string, sched *Scheduler, logger *cslog.Logger, accepts ...ast.NodeType) base {
	return base{
		name:    name,
		accepts: accepts,
		sched:   sched,
		logger:  logger.WithField("runner", name),
	}
}

// Run queues the evaluation of node
func (b *base) Run(ctx context.Context, node *ast.Node, env *Env, in Pipe, k Continuation) {
	b.sched.Schedule(func() {
		b.run(ctx, node, env, in, k)
	})
}

func (b *base) run(ctx context.Context, node *ast.Node, env *Env, in Pipe, k Continuation) {
	done := false
	complete := func(r Result) {
		if done {
			b.logger.Warn("Ignoring second completion", cslog.Fields{"run_id": runID(ctx)})
			return
		}
		done = true
		b.sched.Schedule(func() { k(r) })
	}
	defer b.recoverTo(complete)

	if node == nil {
		complete(Result{Err: cserror.New("no syntax tree to run").
			WithCode(cserror.CodeSemantic).
			WithOperation(b.operation())})
		return
	}
	if !node.Is(b.accepts...) {
		complete(Result{Err: b.unexpected(node)})
		return
	}
	if env == nil {
		env = NewEnv()
	}

	b.logger.Trace("Running node", cslog.Fields{
		"run_id": runID(ctx),
		"node":   node.Type().String(),
		"piped":  in.Set,
	})

	if err := b.hook(ctx, node, env, in, complete); err != nil {
		complete(Result{Err: err})
	}
}

// guard wraps continuation logic of a runner. A panic inside fn completes
// the runner with an internal error.
func (b *base) guard(complete Continuation, fn Continuation) Continuation {
	return func(r Result) {
		defer b.recoverTo(complete)
		fn(r)
	}
}

func (b *base) recoverTo(complete Continuation) {
	if rec := recover(); rec != nil {
		b.logger.Error("Recovered panic", cslog.Fields{"panic": fmt.Sprint(rec)})
		complete(Result{Err: cserror.Newf("internal error: %v", rec).
			WithCode(cserror.CodeInternal).
			WithOperation(b.operation())})
	}
}

func (b *base) unexpected(node *ast.Node) error {
	names := make([]string, len(b.accepts))
	for i, t := range b.accepts {
		names[i] = t.String()
	}
	return cserror.Newf("Expecting one of [%s] found [%s]", strings.Join(names, ","), node.Type()).
		WithCode(cserror.CodeSemantic).
		WithOperation(b.operation())
}

func (b *base) operation() string {
	return "interp." + b.name
}

type runIDKey struct{}

func withRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func runID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
