// File: command.go
// Title: Command Runner
// Description: Dispatches CMD nodes to the create, display, execute and
//              with handlers and drives services through the repository.
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

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
	"github.com/msto63/cmdscript/foundation/script/repository"
	"github.com/msto63/cmdscript/foundation/utils/mapx"
)

// CommandHandler evaluates a CMD node whose first element names the command
type CommandHandler func(ctx context.Context, node *ast.Node, env *Env, in Pipe) (any, error)

type commandRunner struct {
	base
	rt       *runtime
	handlers map[string]CommandHandler
}

func newCommandRunner(rt *runtime) *commandRunner {
	r := &commandRunner{
		base: newBase("command", rt.sched, rt.logger, ast.CMD),
		rt:   rt,
	}
	r.handlers = map[string]CommandHandler{
		"create":  r.create,
		"display": r.display,
		"execute": r.execute,
		"with":    r.with,
	}
	for name, h := range rt.commands {
		r.handlers[name] = h
	}
	r.hook = r.dispatch
	return r
}

func (r *commandRunner) dispatch(ctx context.Context, node *ast.Node, env *Env, in Pipe, complete Continuation) error {
	name := commandName(node)
	handler, ok := r.handlers[name]
	if !ok {
		return cserror.Newf("Unknown command [%s]", name).
			WithCode(cserror.CodeUnknownCommand).
			WithOperation("interp.command")
	}

	r.logger.Debug("Dispatching command", cslog.Fields{"run_id": runID(ctx), "command": name})
	value, err := handler(ctx, node, env, in)
	if err != nil {
		return err
	}
	complete(Result{Value: value})
	return nil
}

// commandName returns the first element of a command list, or the token
// itself for a single-token command
func commandName(node *ast.Node) string {
	if tok := node.TokenAt(0); tok != nil {
		return tok.Text
	}
	if tok := node.Token(); tok != nil {
		return tok.Text
	}
	return ""
}

func (r *commandRunner) repository() (repository.Repository, error) {
	if r.rt.repo == nil {
		return nil, cserror.New("no repository configured").
			WithCode(cserror.CodeConfigError).
			WithOperation("interp.command")
	}
	return r.rt.repo, nil
}

// create service X | create [connected] form X
func (r *commandRunner) create(ctx context.Context, node *ast.Node, env *Env, in Pipe) (any, error) {
	repo, err := r.repository()
	if err != nil {
		return nil, err
	}
	target := node.TokenAt(1)
	id, ok := nameOf(node.NodeAt(2))
	if target == nil || !ok {
		return nil, invalidCommand("create")
	}

	switch target.Text {
	case "service":
		return repo.GetService(ctx, id)
	case "form":
		connected, err := valueOf(node.NodeAt(3), env)
		if err != nil {
			return nil, err
		}
		flag, _ := connected.(bool)
		return repo.GetForm(ctx, id, flag)
	}
	return nil, cserror.Newf("Unknown command [%s]", target.Text).
		WithCode(cserror.CodeUnknownCommand).
		WithOperation("interp.create")
}

// display form X (allowed, ...)
func (r *commandRunner) display(ctx context.Context, node *ast.Node, env *Env, in Pipe) (any, error) {
	repo, err := r.repository()
	if err != nil {
		return nil, err
	}
	if r.rt.displayer == nil {
		return nil, cserror.New("no form displayer configured").
			WithCode(cserror.CodeConfigError).
			WithOperation("interp.display")
	}
	id, ok := nameOf(node.NodeAt(2))
	if !ok {
		return nil, invalidCommand("display")
	}

	form, err := repo.GetForm(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return r.rt.displayer.Display(ctx, form, allowedServices(node.NodeAt(3)))
}

// allowedServices reads the service names of a display parameter list.
// Identifiers name services directly; empty slots are skipped.
func allowedServices(list *ast.Node) []string {
	if list == nil {
		return nil
	}
	allowed := []string{}
	for i := range list.Items() {
		if tok := list.NodeAt(i).Token(); tok != nil {
			allowed = append(allowed, tok.Text)
		}
	}
	return allowed
}

// execute service X (key) {params}
func (r *commandRunner) execute(ctx context.Context, node *ast.Node, env *Env, in Pipe) (any, error) {
	id, ok := nameOf(node.NodeAt(2))
	if !ok {
		return nil, invalidCommand("execute")
	}
	call, err := newServiceCall(id, node.NodeAt(3), node.NodeAt(4), env)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, call, in)
}

// with E (key) {params} do A (key) {params}
func (r *commandRunner) with(ctx context.Context, node *ast.Node, env *Env, in Pipe) (any, error) {
	entity, action := node.NodeAt(1), node.NodeAt(2)
	if !entity.Is(ast.ENT) || !action.Is(ast.ACT) {
		return nil, invalidCommand("with")
	}
	entityName, ok1 := nameOf(entity.NodeAt(0))
	actionName, ok2 := nameOf(action.NodeAt(0))
	if !ok1 || !ok2 {
		return nil, invalidCommand("with")
	}

	ent, err := newServiceCall(entityName, entity.NodeAt(1), entity.NodeAt(2), env)
	if err != nil {
		return nil, err
	}
	act, err := newServiceCall(actionName, action.NodeAt(1), action.NodeAt(2), env)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, ent.join(act), in)
}

// serviceCall is a service id with the key and parameters given in source.
// A nil key or nil parameters mean none were given.
type serviceCall struct {
	id     string
	key    []any
	params map[string]any
}

func newServiceCall(id string, keyNode, paramsNode *ast.Node, env *Env) (serviceCall, error) {
	call := serviceCall{id: id}
	if keyNode != nil {
		key, err := listValue(keyNode, env)
		if err != nil {
			return call, err
		}
		call.key = key
	}
	if paramsNode != nil {
		params, err := mapValue(paramsNode, env)
		if err != nil {
			return call, err
		}
		call.params = params
	}
	return call, nil
}

// join combines an entity and an action reference into the call of
// service entity:action. The action key wins; action parameters override
// entity parameters.
func (c serviceCall) join(action serviceCall) serviceCall {
	joined := serviceCall{id: c.id + ":" + action.id, key: c.key}
	if action.key != nil {
		joined.key = action.key
	}
	if c.params != nil || action.params != nil {
		joined.params = mapx.Merge(c.params, action.params)
	}
	return joined
}

func (r *commandRunner) run(ctx context.Context, call serviceCall, in Pipe) (any, error) {
	repo, err := r.repository()
	if err != nil {
		return nil, err
	}
	svc, err := repo.GetService(ctx, call.id)
	if err != nil {
		return nil, err
	}

	svc.Reset()
	key, params, strict := call.key, call.params, true
	if in.Set && in.Value != nil {
		if in.IsMap() {
			if params == nil {
				params, strict = in.Value.(map[string]any), false
			}
		} else if key == nil {
			key = pipedKey(in.Value)
		}
	}

	if key != nil {
		if err := svc.SetKey(key); err != nil {
			return nil, err
		}
	}
	if params != nil {
		if err := svc.SetParameters(params, strict); err != nil {
			return nil, err
		}
	}

	if svc.RequireKey() && len(key) == 0 {
		return nil, cserror.Newf("Service [%s] requires a key", svc.ID()).
			WithCode(cserror.CodeMissingKey).
			WithOperation("interp.execute").
			WithDetail("key_fields", svc.KeyFields())
	}
	if svc.RequireParameters() && len(params) == 0 {
		return nil, cserror.Newf("Service [%s] requires parameters", svc.ID()).
			WithCode(cserror.CodeMissingParameters).
			WithOperation("interp.execute")
	}

	timer := r.logger.StartTimer("service " + svc.ID()).WithField("run_id", runID(ctx))
	value, err := svc.Execute(ctx)
	if err != nil {
		timer.Cancel()
		r.logger.Debug("Service failed", cslog.Fields{"run_id": runID(ctx), "service": svc.ID(), "error": err})
		if cserror.GetCode(err) == cserror.CodeUnknown {
			return nil, cserror.Wrap(err, fmt.Sprintf("Service [%s] failed", svc.ID())).
				WithCode(cserror.CodeExecution).
				WithOperation("interp.execute")
		}
		return nil, err
	}
	timer.Stop()

	if value == nil && in.Set {
		return in.Value, nil
	}
	return value, nil
}

// pipedKey turns a piped value into a service key. Lists are used as is,
// other values become a single-element key.
func pipedKey(v any) []any {
	switch key := v.(type) {
	case []any:
		return key
	case []string:
		out := make([]any, len(key))
		for i, s := range key {
			out[i] = s
		}
		return out
	}
	return []any{v}
}

func invalidCommand(name string) error {
	return cserror.Newf("PARSER ERROR: Invalid %s command", name).
		WithCode(cserror.CodeSemantic).
		WithOperation("interp." + name)
}
