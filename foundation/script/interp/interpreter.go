// File: interpreter.go
// Title: Interpreter
// Description: Root runner. Runs the expressions of a program strictly in
//              order and reports one Event per expression.
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
	"time"

	"github.com/google/uuid"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
	"github.com/msto63/cmdscript/foundation/script/repository"
)

// Options configures an Interpreter
type Options struct {
	Logger     *cslog.Logger
	Repository repository.Repository
	Displayer  repository.Displayer

	// ContinueOnError keeps running after a failed expression
	ContinueOnError bool

	// StepDelay is waited before every scheduled task
	StepDelay time.Duration

	// OnEvent receives every Event as it is produced
	OnEvent func(Event)
}

// Interpreter evaluates ROOT nodes. An Interpreter is driven by one
// goroutine at a time; use one Interpreter per concurrent run.
type Interpreter struct {
	options Options
	logger  *cslog.Logger
	rt      *runtime
}

// New creates an interpreter
func New(opts Options) *Interpreter {
	if opts.Logger == nil {
		opts.Logger = cslog.GetDefault()
	}
	logger := opts.Logger.WithField("component", "interpreter")
	return &Interpreter{
		options: opts,
		logger:  logger,
		rt: &runtime{
			sched:     NewScheduler(opts.StepDelay, opts.Logger),
			logger:    logger,
			repo:      opts.Repository,
			displayer: opts.Displayer,
			commands:  make(map[string]CommandHandler),
		},
	}
}

// RegisterCommand adds or replaces the handler for a command keyword
func (i *Interpreter) RegisterCommand(name string, handler CommandHandler) error {
	if strings.TrimSpace(name) == "" || handler == nil {
		return cserror.New("command name and handler are required").
			WithCode(cserror.CodeRequiredField).
			WithOperation("interp.RegisterCommand")
	}
	i.rt.commands[name] = handler
	if i.rt.cmd != nil {
		i.rt.cmd.handlers[name] = handler
	}
	return nil
}

// Scheduler returns the scheduler the interpreter queues work on
func (i *Interpreter) Scheduler() *Scheduler {
	return i.rt.sched
}

// Start queues the evaluation of root and returns the run id. Nothing runs
// until the scheduler is drained. done receives the summary when the run
// completes.
func (i *Interpreter) Start(ctx context.Context, root *ast.Node, env *Env, done func(Summary)) string {
	return i.start(ctx, root, env, done).summary.RunID
}

// Run evaluates root on the calling goroutine and returns its summary.
// Failing expressions are reported in the summary; the error is set only
// when the run could not finish, for example because ctx was cancelled.
func (i *Interpreter) Run(ctx context.Context, root *ast.Node, env *Env) (Summary, error) {
	var summary Summary
	finished := false
	run := i.start(ctx, root, env, func(s Summary) {
		summary = s
		finished = true
	})

	if err := i.rt.sched.Drain(ctx); err != nil {
		if finished {
			return summary, nil
		}
		partial := run.result(err)
		run.logger.WarnWithErr("Script run aborted", err, cslog.Fields{"executed": partial.Executed})
		return partial, err
	}
	if !finished {
		err := cserror.New("script run did not complete").
			WithCode(cserror.CodeInternal).
			WithOperation("interp.Run")
		return run.result(err), err
	}
	return summary, nil
}

func (i *Interpreter) start(ctx context.Context, root *ast.Node, env *Env, done func(Summary)) *rootRun {
	if env == nil {
		env = NewEnv()
	}
	id := uuid.NewString()
	logger := i.logger.WithRequestID(id)

	run := &rootRun{
		rt:              i.rt,
		logger:          logger,
		onEvent:         i.options.OnEvent,
		continueOnError: i.options.ContinueOnError,
		started:         time.Now(),
		summary:         Summary{RunID: id},
	}
	run.base = newBase("root", i.rt.sched, logger, ast.ROOT)
	run.hook = run.sequence

	if root != nil {
		logger.Debug("Script run started", cslog.Fields{"expressions": len(root.Expressions())})
	}
	run.Run(withRunID(ctx, id), root, env, NoPipe, func(r Result) {
		if r.Err != nil && !run.handled {
			run.emit(-1, r)
		}
		summary := run.result(nil)
		summary.Value = r.Value
		logger.Debug("Script run finished", cslog.Fields{
			"executed":    summary.Executed,
			"failed":      summary.Failed,
			"duration_ms": float64(summary.Duration.Nanoseconds()) / 1e6,
		})
		if done != nil {
			done(summary)
		}
	})
	return run
}

// rootRun is the state of one program run
type rootRun struct {
	base
	rt              *runtime
	logger          *cslog.Logger
	onEvent         func(Event)
	continueOnError bool
	started         time.Time
	summary         Summary
	handled         bool
}

func (r *rootRun) sequence(ctx context.Context, node *ast.Node, env *Env, in Pipe, complete Continuation) error {
	exprs := node.Expressions()
	var last any

	var step func(idx int)
	step = func(idx int) {
		if idx >= len(exprs) {
			r.handled = true
			complete(Result{Value: last, Err: r.summary.Err})
			return
		}

		next := r.guard(complete, func(res Result) {
			r.emit(idx, res)
			if res.Failed() {
				if !r.continueOnError {
					r.handled = true
					complete(res)
					return
				}
			} else {
				last = res.Value
			}
			step(idx + 1)
		})

		expr := exprs[idx]
		if isSimple(expr) {
			v, err := valueOf(expr, env)
			r.sched.Schedule(func() { next(Result{Value: v, Err: err}) })
			return
		}
		r.rt.expression().Run(ctx, expr, env, NoPipe, next)
	}

	step(0)
	return nil
}

func (r *rootRun) emit(index int, res Result) {
	event := newEvent(index, res)
	r.summary.Events = append(r.summary.Events, event)
	if index >= 0 {
		r.summary.Executed++
	}
	if !event.OK {
		r.summary.Failed++
		if r.summary.Err == nil {
			r.summary.Err = res.Err
		}
		r.logger.Debug("Expression failed", cslog.Fields{"index": index, "code": string(event.Code), "severity": event.Severity.String()})
	}
	if r.onEvent != nil {
		r.notify(event)
	}
}

func (r *rootRun) notify(event Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Event callback panicked", cslog.Fields{"index": event.Index, "panic": fmt.Sprint(rec)})
		}
	}()
	r.onEvent(event)
}

func (r *rootRun) result(err error) Summary {
	s := r.summary
	s.Events = append([]Event(nil), r.summary.Events...)
	s.Duration = time.Since(r.started)
	if err != nil && s.Err == nil {
		s.Err = err
	}
	return s
}
