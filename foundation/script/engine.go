// File: engine.go
// Title: Command Script Engine
// Description: High-level facade: parse, tokenize, inspect and execute
//              command scripts.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package script

import (
	"context"
	"strings"
	"time"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
	"github.com/msto63/cmdscript/foundation/script/interp"
	"github.com/msto63/cmdscript/foundation/script/lexer"
	"github.com/msto63/cmdscript/foundation/script/parser"
	"github.com/msto63/cmdscript/foundation/script/repository"
	"github.com/msto63/cmdscript/foundation/utils/stringx"
)

// Options configures an Engine
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *cslog.Logger

	// Repository resolves services and forms
	Repository repository.Repository

	// Displayer opens forms (optional, display fails without one)
	Displayer repository.Displayer

	// MaxInputLength limits the source size (default: parser.DefaultMaxInputLength)
	MaxInputLength int

	// ContinueOnError keeps running after a failed expression
	ContinueOnError bool

	// StepDelay is waited before every interpreter step (default: 0)
	StepDelay time.Duration
}

// command is a user-defined command keyword
type command struct {
	parse parser.CommandFunc
	run   interp.CommandHandler
}

// Engine parses and runs command scripts. It is safe for concurrent use;
// every call builds its own parser and interpreter.
type Engine struct {
	options  Options
	logger   *cslog.Logger
	commands map[string]command
}

// NewEngine creates an engine
func NewEngine(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = cslog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = parser.DefaultMaxInputLength
	}

	logger := opts.Logger.WithField("component", "script-engine")
	logger.Debug("Script engine initialized", cslog.Fields{
		"maxInputLength":  opts.MaxInputLength,
		"continueOnError": opts.ContinueOnError,
		"stepDelay":       opts.StepDelay.String(),
	})

	return &Engine{
		options:  opts,
		logger:   logger,
		commands: make(map[string]command),
	}
}

// RegisterCommand adds a command keyword with its parse and run handlers.
// It must be called before the engine is used concurrently.
func (e *Engine) RegisterCommand(name string, parse parser.CommandFunc, run interp.CommandHandler) error {
	if stringx.IsBlank(name) || parse == nil || run == nil {
		return cserror.New("command name, parse and run handlers are required").
			WithCode(cserror.CodeRequiredField).
			WithOperation("engine.RegisterCommand")
	}
	e.commands[strings.TrimSpace(name)] = command{parse: parse, run: run}
	return nil
}

// Parse parses source text into a ROOT node
func (e *Engine) Parse(src string) (*ast.Node, error) {
	return e.ParseLines(stringx.SplitLines(src)...)
}

// ParseLines parses source lines into a ROOT node
func (e *Engine) ParseLines(lines ...string) (*ast.Node, error) {
	p := parser.New(parser.Options{
		Logger:         e.options.Logger,
		MaxInputLength: e.options.MaxInputLength,
	})
	for name, cmd := range e.commands {
		p.RegisterCommand(name, cmd.parse)
	}
	p.SetLines(lines...)
	return p.Parse()
}

// Tokens returns the token stream of src as the parser sees it. With raw
// set, whitespace and line ends are kept.
func (e *Engine) Tokens(src string, raw bool) []*lexer.Token {
	lx := lexer.New()
	lx.SetLines(stringx.SplitLines(src)...)

	opts := lexer.CommandLexerOptions{KeepWhitespace: raw, SkipEOL: !raw}
	cl := lexer.NewCommandLexer(lx, opts)
	for name := range e.commands {
		cl.AddCommands(name)
	}

	var tokens []*lexer.Token
	for {
		tok := cl.Next()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOI {
			return tokens
		}
	}
}

// Interpreter creates an interpreter configured like the engine
func (e *Engine) Interpreter(onEvent func(interp.Event)) *interp.Interpreter {
	i := interp.New(interp.Options{
		Logger:          e.options.Logger,
		Repository:      e.options.Repository,
		Displayer:       e.options.Displayer,
		ContinueOnError: e.options.ContinueOnError,
		StepDelay:       e.options.StepDelay,
		OnEvent:         onEvent,
	})
	for name, cmd := range e.commands {
		// name and handler were validated by RegisterCommand
		_ = i.RegisterCommand(name, cmd.run)
	}
	return i
}

// Execute parses and runs src. Bindings in env survive the run; a nil env
// runs in a fresh one. onEvent, when set, sees every event as it happens.
// Failed expressions are reported in the summary; the error covers syntax
// errors and runs that could not finish.
func (e *Engine) Execute(ctx context.Context, src string, env *interp.Env, onEvent func(interp.Event)) (interp.Summary, error) {
	timer := e.logger.StartTimer("script execution")

	root, err := e.Parse(src)
	if err != nil {
		timer.Cancel()
		e.logger.Debug("Script parsing failed", cslog.Fields{"error": err.Error()})
		return interp.Summary{}, err
	}
	return e.run(ctx, root, env, onEvent, timer)
}

// Run runs an already parsed program
func (e *Engine) Run(ctx context.Context, root *ast.Node, env *interp.Env, onEvent func(interp.Event)) (interp.Summary, error) {
	return e.run(ctx, root, env, onEvent, e.logger.StartTimer("script execution"))
}

func (e *Engine) run(ctx context.Context, root *ast.Node, env *interp.Env, onEvent func(interp.Event), timer *cslog.Timer) (interp.Summary, error) {
	summary, err := e.Interpreter(onEvent).Run(ctx, root, env)
	if err != nil {
		timer.StopWithError(err)
		return summary, err
	}

	timer.WithField("run_id", summary.RunID).
		WithField("executed", summary.Executed).
		WithField("failed", summary.Failed).
		Stop()
	return summary, nil
}
