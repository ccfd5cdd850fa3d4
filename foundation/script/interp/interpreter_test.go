// File: interpreter_test.go
// Title: Interpreter Unit Tests
// Description: End-to-end runs over parsed programs: ordering, pipes, the
//              command handlers, error events and run control.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17

package interp

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
	"github.com/msto63/cmdscript/foundation/script/lexer"
	"github.com/msto63/cmdscript/foundation/script/parser"
	"github.com/msto63/cmdscript/foundation/script/repository"
)

type fixture struct {
	reg   *repository.Registry
	calls []repository.Call
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{reg: repository.NewRegistry(repository.Options{Logger: cslog.Discard()})}

	echo := func(ctx context.Context, call repository.Call) (any, error) {
		f.calls = append(f.calls, call)
		return map[string]any{"service": call.ServiceID, "key": call.Key, "parameters": call.Parameters}, nil
	}
	specs := []repository.ServiceSpec{
		{ID: "foo", Run: echo},
		{ID: "customer:show", Run: echo},
		{ID: "req", KeyFields: []string{"id"}, RequireKey: true, Run: echo},
		{ID: "strict", Parameters: []string{"verbose"}, Run: echo},
		{ID: "list", Run: func(ctx context.Context, call repository.Call) (any, error) {
			f.calls = append(f.calls, call)
			return []any{"c1", "c2"}, nil
		}},
		{ID: "noop", Run: func(ctx context.Context, call repository.Call) (any, error) {
			f.calls = append(f.calls, call)
			return nil, nil
		}},
		{ID: "bad", Run: func(ctx context.Context, call repository.Call) (any, error) {
			return nil, errors.New("boom")
		}},
		{ID: "panic", Run: func(ctx context.Context, call repository.Call) (any, error) {
			panic("kaboom")
		}},
	}
	for _, spec := range specs {
		spec := spec
		if err := f.reg.RegisterService(spec.ID, func() repository.Service { return repository.NewService(spec) }); err != nil {
			t.Fatalf("RegisterService(%s) error = %v", spec.ID, err)
		}
	}
	if err := f.reg.RegisterForm("customer", func(connected bool) repository.Form {
		return repository.NewForm(repository.FormSpec{ID: "customer", Title: "Customer", Fields: []string{"id", "name"}}, connected)
	}); err != nil {
		t.Fatalf("RegisterForm() error = %v", err)
	}
	return f
}

func (f *fixture) interpreter(opts Options) *Interpreter {
	if opts.Logger == nil {
		opts.Logger = cslog.Discard()
	}
	opts.Repository = f.reg
	if opts.Displayer == nil {
		opts.Displayer = repository.SummaryDisplayer{}
	}
	return New(opts)
}

func (f *fixture) run(t *testing.T, opts Options, src string) (Summary, *Env) {
	t.Helper()
	root, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString(%q) error = %v", src, err)
	}
	env := NewEnv()
	summary, err := f.interpreter(opts).Run(context.Background(), root, env)
	if err != nil {
		t.Fatalf("Run(%q) error = %v", src, err)
	}
	return summary, env
}

func TestRunAssignmentAndExecute(t *testing.T) {
	f := newFixture(t)
	summary, env := f.run(t, Options{}, "x = 10; execute service foo(x) { a: 'b' };")

	want := []Event{
		{Index: 0, OK: true, Code: CodeOK, Message: "OK", Results: []any{int64(10)}},
		{Index: 1, OK: true, Code: CodeOK, Message: "OK", Results: []any{map[string]any{
			"service":    "foo",
			"key":        []any{int64(10)},
			"parameters": map[string]any{"a": "b"},
		}}},
	}
	if diff := cmp.Diff(want, summary.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	wantCalls := []repository.Call{{ServiceID: "foo", Key: []any{int64(10)}, Parameters: map[string]any{"a": "b"}}}
	if diff := cmp.Diff(wantCalls, f.calls); diff != "" {
		t.Errorf("service calls mismatch (-want +got):\n%s", diff)
	}
	if v, _ := env.Get("x"); v != int64(10) {
		t.Errorf("x = %v; want 10", v)
	}
	if !summary.OK() || summary.Executed != 2 || summary.RunID == "" {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunIsSequential(t *testing.T) {
	f := newFixture(t)
	f.run(t, Options{}, "execute service foo('1'); execute service noop('2'); execute service foo('3');")

	var got []string
	for _, call := range f.calls {
		got = append(got, call.ServiceID+"/"+call.Key[0].(string))
	}
	if diff := cmp.Diff([]string{"foo/1", "noop/2", "foo/3"}, got); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunLiterals(t *testing.T) {
	f := newFixture(t)
	_, env := f.run(t, Options{}, `a = 1.5; b = 2; c = 1e3; d = true; e = "text"; g = {k: b, n: }; h = a;`)

	want := map[string]any{
		"a": 1.5,
		"b": int64(2),
		"c": float64(1000),
		"d": true,
		"e": "text",
		"g": map[string]any{"k": int64(2), "n": nil},
		"h": 1.5,
	}
	if diff := cmp.Diff(want, env.Snapshot()); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestRunPipes(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		calls []repository.Call
	}{
		{
			name: "list becomes key",
			src:  "execute service foo <- execute service list;",
			calls: []repository.Call{
				{ServiceID: "list"},
				{ServiceID: "foo", Key: []any{"c1", "c2"}},
			},
		},
		{
			name:  "scalar is wrapped",
			src:   "x = 5; execute service foo <- x;",
			calls: []repository.Call{{ServiceID: "foo", Key: []any{int64(5)}}},
		},
		{
			name:  "map becomes non-strict parameters",
			src:   "execute service strict <- {verbose: true, extra: 1};",
			calls: []repository.Call{{ServiceID: "strict", Parameters: map[string]any{"verbose": true, "extra": int64(1)}}},
		},
		{
			name:  "explicit key wins over piped scalar",
			src:   "execute service foo('k') <- 5;",
			calls: []repository.Call{{ServiceID: "foo", Key: []any{"k"}}},
		},
		{
			name:  "explicit key with piped map",
			src:   "execute service foo('k') <- {a: 1};",
			calls: []repository.Call{{ServiceID: "foo", Key: []any{"k"}, Parameters: map[string]any{"a": int64(1)}}},
		},
		{
			name: "nil result passes the pipe through",
			src:  "execute service foo <- execute service noop <- 3;",
			calls: []repository.Call{
				{ServiceID: "noop", Key: []any{int64(3)}},
				{ServiceID: "foo", Key: []any{int64(3)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			summary, _ := f.run(t, Options{}, tt.src)
			if !summary.OK() {
				t.Fatalf("run failed: %v", summary.Err)
			}
			if diff := cmp.Diff(tt.calls, f.calls); diff != "" {
				t.Errorf("service calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunPassThroughValue(t *testing.T) {
	f := newFixture(t)
	summary, env := f.run(t, Options{}, "y = execute service noop <- 7;")

	if v, _ := env.Get("y"); v != int64(7) {
		t.Errorf("y = %v; want 7", v)
	}
	if got := summary.Events[0].Value(); got != int64(7) {
		t.Errorf("event value = %v; want 7", got)
	}
}

func TestRunWith(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want repository.Call
	}{
		{
			name: "entity key and merged parameters",
			src:  "with customer(7) {a: 1} do show {b: 2};",
			want: repository.Call{ServiceID: "customer:show", Key: []any{int64(7)}, Parameters: map[string]any{"a": int64(1), "b": int64(2)}},
		},
		{
			name: "action overrides entity",
			src:  "with customer(7) {a: 1} do show (8) {a: 2};",
			want: repository.Call{ServiceID: "customer:show", Key: []any{int64(8)}, Parameters: map[string]any{"a": int64(2)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			summary, _ := f.run(t, Options{}, tt.src)
			if !summary.OK() {
				t.Fatalf("run failed: %v", summary.Err)
			}
			if diff := cmp.Diff([]repository.Call{tt.want}, f.calls); diff != "" {
				t.Errorf("service calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunCreateAndDisplay(t *testing.T) {
	f := newFixture(t)
	_, env := f.run(t, Options{}, "s = create service foo;")
	svc, ok := mustGet(t, env, "s").(repository.Service)
	if !ok || svc.ID() != "foo" {
		t.Errorf("s = %#v; want service foo", mustGet(t, env, "s"))
	}

	_, env = f.run(t, Options{}, "c = create connected form customer; p = create form customer;")
	if form, ok := mustGet(t, env, "c").(*repository.BasicForm); !ok || !form.Connected() {
		t.Errorf("c = %#v; want connected form", mustGet(t, env, "c"))
	}
	if form, ok := mustGet(t, env, "p").(*repository.BasicForm); !ok || form.Connected() {
		t.Errorf("p = %#v; want plain form", mustGet(t, env, "p"))
	}

	_, env = f.run(t, Options{}, "d = display form customer('customer:show', orders);")
	want := map[string]any{
		"form":    "customer",
		"title":   "Customer",
		"fields":  []string{"id", "name"},
		"allowed": []string{"customer:show", "orders"},
	}
	if diff := cmp.Diff(want, mustGet(t, env, "d")); diff != "" {
		t.Errorf("display result mismatch (-want +got):\n%s", diff)
	}
}

func TestRunDisplayCancelled(t *testing.T) {
	f := newFixture(t)
	cancelled := repository.DisplayFunc(func(ctx context.Context, form repository.Form, allowed []string) (any, error) {
		return nil, nil
	})
	summary, env := f.run(t, Options{Displayer: cancelled}, "d = display form customer;")
	if !summary.OK() {
		t.Fatalf("run failed: %v", summary.Err)
	}
	if v, ok := env.Get("d"); !ok || v != nil {
		t.Errorf("d = %v, bound %v; want nil and bound", v, ok)
	}
}

func mustGet(t *testing.T, env *Env, name string) any {
	t.Helper()
	v, ok := env.Get(name)
	if !ok {
		t.Fatalf("%s is not bound", name)
	}
	return v
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode cserror.Code
		wantMsg  string
	}{
		{"unbound key variable", "execute service foo(z);", cserror.CodeUnboundVariable, "Variable [z] is not set"},
		{"unbound assignment source", "y = z;", cserror.CodeUnboundVariable, "Variable [z] is not set"},
		{"unknown service", "execute service nope;", cserror.CodeNotFound, "Unknown service [nope]"},
		{"unknown form", "display form nope;", cserror.CodeNotFound, "Unknown form [nope]"},
		{"missing key", "execute service req;", cserror.CodeMissingKey, "Service [req] requires a key"},
		{"strict parameters", "execute service strict {extra: 1};", cserror.CodeInvalidParameter, "service [strict] does not accept parameters [extra]"},
		{"service error", "execute service bad;", cserror.CodeExecution, "Service [bad] failed: boom"},
		{"service panic", "execute service panic;", cserror.CodeInternal, "internal error: kaboom"},
		{"failing pipe source", "execute service foo <- execute service bad;", cserror.CodeExecution, "Service [bad] failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			summary, _ := f.run(t, Options{}, tt.src)

			if len(summary.Events) != 1 {
				t.Fatalf("got %d events; want 1", len(summary.Events))
			}
			event := summary.Events[0]
			if event.OK || event.Code != tt.wantCode || event.Message != tt.wantMsg {
				t.Errorf("event = {OK:%v Code:%s Message:%q}; want {false %s %q}", event.OK, event.Code, event.Message, tt.wantCode, tt.wantMsg)
			}
			if event.Results != nil {
				t.Errorf("failed event carries results %v", event.Results)
			}
			if summary.OK() || summary.Failed != 1 {
				t.Errorf("summary = %+v; want one failure", summary)
			}
		})
	}
}

func TestFailureSeverity(t *testing.T) {
	tests := []struct {
		src  string
		want cserror.Severity
	}{
		{"y = z;", cserror.SeverityLow},
		{"execute service bad;", cserror.SeverityMedium},
		{"execute service panic;", cserror.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			summary, _ := newFixture(t).run(t, Options{}, tt.src)
			if len(summary.Events) != 1 || summary.Events[0].Severity != tt.want {
				t.Errorf("events = %+v; want severity %s", summary.Events, tt.want)
			}
		})
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t)
	summary, env := f.run(t, Options{}, "execute service nope; x = 1;")

	if len(summary.Events) != 1 || summary.Executed != 1 {
		t.Errorf("events = %d, executed = %d; want 1, 1", len(summary.Events), summary.Executed)
	}
	if _, ok := env.Get("x"); ok {
		t.Error("x is bound after an earlier failure")
	}
	if !cserror.HasCode(summary.Err, cserror.CodeNotFound) {
		t.Errorf("summary.Err = %v; want code %s", summary.Err, cserror.CodeNotFound)
	}
}

func TestRunContinueOnError(t *testing.T) {
	f := newFixture(t)
	var seen []int
	opts := Options{ContinueOnError: true, OnEvent: func(e Event) { seen = append(seen, e.Index) }}
	summary, env := f.run(t, opts, "execute service nope; x = 1; y = z; w = 2;")

	if diff := cmp.Diff([]int{0, 1, 2, 3}, seen); diff != "" {
		t.Errorf("event indexes mismatch (-want +got):\n%s", diff)
	}
	if summary.Failed != 2 || summary.Executed != 4 {
		t.Errorf("failed = %d, executed = %d; want 2, 4", summary.Failed, summary.Executed)
	}
	if summary.Value != int64(2) {
		t.Errorf("summary.Value = %v; want 2", summary.Value)
	}
	if diff := cmp.Diff([]string{"w", "x"}, env.Names()); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
	if !cserror.HasCode(summary.Err, cserror.CodeNotFound) {
		t.Errorf("summary.Err = %v; want first failure", summary.Err)
	}
}

func TestRunEmptyProgram(t *testing.T) {
	f := newFixture(t)
	summary, _ := f.run(t, Options{}, ";;")
	if len(summary.Events) != 0 || !summary.OK() {
		t.Errorf("summary = %+v; want no events", summary)
	}
}

func TestRunRejectsBadTrees(t *testing.T) {
	cmdTok := &lexer.Token{Type: lexer.CMD, Text: "frobnicate"}
	tests := []struct {
		name     string
		root     *ast.Node
		index    int
		wantCode cserror.Code
		wantMsg  string
	}{
		{
			name:     "nil root",
			root:     nil,
			index:    -1,
			wantCode: cserror.CodeSemantic,
			wantMsg:  "no syntax tree to run",
		},
		{
			name:     "wrong root type",
			root:     ast.NewNode(ast.CMD, []any{cmdTok}),
			index:    -1,
			wantCode: cserror.CodeSemantic,
			wantMsg:  "Expecting one of [ROOT] found [CMD]",
		},
		{
			name:     "unknown command",
			root:     ast.NewNode(ast.ROOT, []*ast.Node{ast.NewNode(ast.CMD, []any{cmdTok})}),
			index:    0,
			wantCode: cserror.CodeUnknownCommand,
			wantMsg:  "Unknown command [frobnicate]",
		},
		{
			name: "invalid assignment",
			root: ast.NewNode(ast.ROOT, []*ast.Node{ast.NewNode(ast.ASS, []any{
				ast.Leaf(ast.STR, &lexer.Token{Type: lexer.STR, Text: "x"}),
				ast.Leaf(ast.NUM, &lexer.Token{Type: lexer.NUM, Text: "1"}),
			})}),
			index:    0,
			wantCode: cserror.CodeSemantic,
			wantMsg:  "PARSER ERROR: Invalid Assignment",
		},
		{
			name:     "plain list at top level",
			root:     ast.NewNode(ast.ROOT, []*ast.Node{ast.NewNode(ast.ENT, []any{})}),
			index:    0,
			wantCode: cserror.CodeSemantic,
			wantMsg:  "Expecting one of [CMD,ASS,AIO,IDT,STR,NUM,BOL,MAP] found [ENT]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			summary, err := f.interpreter(Options{}).Run(context.Background(), tt.root, nil)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(summary.Events) != 1 {
				t.Fatalf("got %d events; want 1", len(summary.Events))
			}
			event := summary.Events[0]
			if event.Index != tt.index || event.Code != tt.wantCode || event.Message != tt.wantMsg {
				t.Errorf("event = {%d %s %q}; want {%d %s %q}", event.Index, event.Code, event.Message, tt.index, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestStartDefersWork(t *testing.T) {
	f := newFixture(t)
	root, err := parser.ParseString("execute service foo;")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	i := f.interpreter(Options{})
	var summary *Summary
	id := i.Start(context.Background(), root, nil, func(s Summary) { summary = &s })

	if id == "" {
		t.Error("Start() returned an empty run id")
	}
	if summary != nil || len(f.calls) != 0 {
		t.Fatal("Start() ran work inline")
	}
	if i.Scheduler().Pending() == 0 {
		t.Fatal("Start() queued no work")
	}

	if err := i.Scheduler().Drain(context.Background()); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if summary == nil || summary.RunID != id || len(f.calls) != 1 {
		t.Errorf("summary = %+v, calls = %d", summary, len(f.calls))
	}
}

func TestRunCancelled(t *testing.T) {
	f := newFixture(t)
	root, err := parser.ParseString("execute service foo; execute service foo;")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := f.interpreter(Options{}).Run(ctx, root, nil)
	if !cserror.HasCode(err, cserror.CodeCancelled) {
		t.Fatalf("Run() error = %v; want code %s", err, cserror.CodeCancelled)
	}
	if summary.Executed != 0 || len(f.calls) != 0 {
		t.Errorf("executed = %d, calls = %d after cancel", summary.Executed, len(f.calls))
	}
}

func TestRegisterCommand(t *testing.T) {
	f := newFixture(t)
	i := f.interpreter(Options{})

	if err := i.RegisterCommand("", nil); !cserror.HasCode(err, cserror.CodeRequiredField) {
		t.Errorf("RegisterCommand(\"\") error = %v", err)
	}
	err := i.RegisterCommand("echo", func(ctx context.Context, node *ast.Node, env *Env, in Pipe) (any, error) {
		return valueOf(node.NodeAt(1), env)
	})
	if err != nil {
		t.Fatalf("RegisterCommand() error = %v", err)
	}

	echo := ast.NewNode(ast.CMD, []any{
		&lexer.Token{Type: lexer.CMD, Text: "echo"},
		ast.Leaf(ast.STR, &lexer.Token{Type: lexer.STR, Text: "hi"}),
	})
	summary, err := i.Run(context.Background(), ast.NewNode(ast.ROOT, []*ast.Node{echo}), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.OK() || summary.Value != "hi" {
		t.Errorf("summary = %+v; want value hi", summary)
	}
}
