// File: parser.go
// Title: Command Script Parser
// Description: Recursive descent over the CommandLexer token stream. One
//              Parser may be reused for many inputs but is not safe for
//              concurrent use.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package parser

import (
	"errors"
	"fmt"
	"strings"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
	"github.com/msto63/cmdscript/foundation/script/lexer"
	"github.com/msto63/cmdscript/foundation/utils/stringx"
)

// DefaultMaxInputLength limits the total number of bytes of one input
const DefaultMaxInputLength = 16384

// CommandFunc parses the remainder of a command whose keyword token has
// already been consumed.
type CommandFunc func(p *Parser, keyword *lexer.Token) (*ast.Node, error)

// Options configures parser behavior
type Options struct {
	Logger         *cslog.Logger
	MaxInputLength int
	Lexer          lexer.CommandLexerOptions
}

// Parser implements recursive descent parsing for command scripts
type Parser struct {
	base     *lexer.Lexer
	lex      *lexer.CommandLexer
	logger   *cslog.Logger
	options  Options
	commands map[string]CommandFunc
	targets  map[string]targetFunc
}

// targetFunc parses the rest of a create command after its target word
type targetFunc func(p *Parser, keyword, target *lexer.Token) (*ast.Node, error)

// New creates a parser with the built-in commands registered
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = cslog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	opts.Lexer.SkipEOL = true

	base := lexer.New()
	p := &Parser{
		base:     base,
		lex:      lexer.NewCommandLexer(base, opts.Lexer),
		logger:   opts.Logger.WithField("component", "parser"),
		options:  opts,
		commands: make(map[string]CommandFunc),
		targets:  make(map[string]targetFunc),
	}

	p.commands["create"] = parseCreate
	p.commands["display"] = parseDisplay
	p.commands["execute"] = parseExecute
	p.commands["with"] = parseWith

	p.targets["service"] = parseCreateService
	p.targets["form"] = parseCreateForm
	p.targets["connected"] = parseCreateForm

	return p
}

// RegisterCommand adds or replaces the handler for a command keyword
func (p *Parser) RegisterCommand(name string, fn CommandFunc) {
	p.commands[name] = fn
	p.lex.AddCommands(name)
}

// SetLines sets the input and returns the previous one. Blank lines are
// dropped. A single remaining line without a trailing ';' gets one; empty
// input becomes a lone ';'.
func (p *Parser) SetLines(lines ...string) []string {
	var kept []string
	for _, line := range lines {
		if !stringx.IsBlank(line) {
			kept = append(kept, line)
		}
	}
	switch {
	case len(kept) == 0:
		kept = []string{";"}
	case len(kept) == 1 && !strings.HasSuffix(strings.TrimSpace(kept[0]), ";"):
		kept[0] += ";"
	}
	return p.lex.SetLines(kept...)
}

// Parse parses the current input into a ROOT node
func (p *Parser) Parse() (*ast.Node, error) {
	timer := p.logger.StartTimer("parse")

	root, err := p.parse()
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			pe = &ParseError{Message: err.Error(), Code: cserror.CodeSyntax}
		}
		p.logger.Debug("Parsing failed", cslog.Fields{
			"error": pe.Error(),
			"line":  pe.Line,
		})
		timer.Cancel()
		return nil, toError(pe)
	}

	timer.WithField("expressions", len(root.Expressions())).Stop()
	return root, nil
}

func (p *Parser) parse() (*ast.Node, error) {
	size := 0
	for _, line := range p.base.Lines() {
		size += len(line)
	}
	if size > p.options.MaxInputLength {
		return nil, &ParseError{
			Message: fmt.Sprintf("input exceeds maximum length: %d > %d", size, p.options.MaxInputLength),
			Code:    cserror.CodeInvalidInput,
		}
	}

	p.lex.Reset()

	var expressions []*ast.Node
	for {
		tok := p.Peek()
		if tok.Type == lexer.EOI {
			break
		}
		if tok.Is(lexer.LIT, ";") {
			p.Next()
			continue
		}

		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(lexer.LIT, ";"); err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)
	}

	if len(expressions) == 0 {
		return ast.NewNode(ast.ROOT, nil), nil
	}
	return ast.NewNode(ast.ROOT, expressions), nil
}

// Next consumes and returns the next token
func (p *Parser) Next() *lexer.Token {
	return p.lex.Next()
}

// Peek returns the next token without consuming it
func (p *Parser) Peek() *lexer.Token {
	p.lex.Mark()
	tok := p.lex.Next()
	p.lex.Rewind()
	return tok
}

// Expect consumes the next token and fails unless it has type tt and,
// when texts are given, one of those texts.
func (p *Parser) Expect(tt lexer.TokenType, texts ...string) (*lexer.Token, error) {
	tok := p.Next()
	if !tok.Is(tt, texts...) {
		expected := texts
		if len(expected) == 0 {
			expected = []string{tt.String()}
		}
		return nil, unexpected(tok, expected...)
	}
	return tok, nil
}

// accept consumes the next token if it matches
func (p *Parser) accept(tt lexer.TokenType, text string) bool {
	if p.Peek().Is(tt, text) {
		p.Next()
		return true
	}
	return false
}

// ParseExpression parses one expression
func (p *Parser) ParseExpression() (*ast.Node, error) {
	tok := p.Peek()

	switch {
	case tok.Type == lexer.CMD:
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if !p.accept(lexer.LIT, "<-") {
			return cmd, nil
		}
		rhs, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewNode(ast.AIO, []any{cmd, rhs}), nil

	case tok.Type == lexer.IDT:
		p.Next()
		if !p.accept(lexer.LIT, "=") {
			return valueNode(tok), nil
		}
		rhs, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewNode(ast.ASS, []any{ast.Leaf(ast.IDT, tok), rhs}), nil

	case tok.Type == lexer.STR, tok.Type == lexer.NUM:
		p.Next()
		return valueNode(tok), nil

	case tok.Is(lexer.LIT, "{"):
		return p.ParseMap()
	}

	p.Next()
	return nil, unexpected(tok, "CMD", "IDT", "STR", "NUM", "{")
}

func (p *Parser) parseCommand() (*ast.Node, error) {
	keyword := p.Next()
	fn, ok := p.commands[keyword.Text]
	if !ok {
		return nil, unknownCommand(keyword)
	}
	return fn(p, keyword)
}

// ParseName parses an IDT or STR naming a service, form or entity
func (p *Parser) ParseName() (*ast.Node, error) {
	tok := p.Next()
	switch tok.Type {
	case lexer.IDT:
		return ast.Leaf(ast.IDT, tok), nil
	case lexer.STR:
		return ast.Leaf(ast.STR, tok), nil
	}
	return nil, unexpected(tok, "IDT", "STR")
}

// ParseParameterList parses '(' ... ')'. The opening parenthesis must be
// the next token.
func (p *Parser) ParseParameterList() (*ast.Node, error) {
	if _, err := p.Expect(lexer.LIT, "("); err != nil {
		return nil, err
	}

	items := []any{}
	if p.accept(lexer.LIT, ")") {
		return ast.NewNode(ast.PLS, items), nil
	}

	for {
		tok := p.Peek()
		if tok.Is(lexer.LIT, ",", ")") {
			items = append(items, nil)
		} else {
			p.Next()
			if !isValueToken(tok) {
				return nil, unexpected(tok, "IDT", "STR", "NUM", ",", ")")
			}
			items = append(items, valueNode(tok))
		}

		sep := p.Next()
		switch {
		case sep.Is(lexer.LIT, ")"):
			return ast.NewNode(ast.PLS, items), nil
		case sep.Is(lexer.LIT, ","):
		default:
			return nil, unexpected(sep, ",", ")")
		}
	}
}

// ParseMap parses '{' ... '}'. The opening brace must be the next token.
func (p *Parser) ParseMap() (*ast.Node, error) {
	if _, err := p.Expect(lexer.LIT, "{"); err != nil {
		return nil, err
	}

	tuples := make(map[string]*lexer.Token)
	if p.accept(lexer.LIT, "}") {
		return ast.NewNode(ast.MAP, tuples), nil
	}

	for {
		key, err := p.ParseName()
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(lexer.LIT, ":"); err != nil {
			return nil, err
		}

		var value *lexer.Token
		if tok := p.Peek(); !tok.Is(lexer.LIT, ",", "}") {
			p.Next()
			if !isValueToken(tok) {
				return nil, unexpected(tok, "IDT", "STR", "NUM", ",", "}")
			}
			value = valueToken(tok)
		}
		tuples[key.Token().Text] = value

		sep := p.Next()
		switch {
		case sep.Is(lexer.LIT, "}"):
			return ast.NewNode(ast.MAP, tuples), nil
		case sep.Is(lexer.LIT, ","):
		default:
			return nil, unexpected(sep, ",", "}")
		}
	}
}

func isValueToken(tok *lexer.Token) bool {
	switch tok.Type {
	case lexer.IDT, lexer.STR, lexer.NUM, lexer.BOL:
		return true
	}
	return false
}

// valueToken turns the identifiers true and false into BOL tokens
func valueToken(tok *lexer.Token) *lexer.Token {
	if tok.Type == lexer.IDT && (tok.Text == "true" || tok.Text == "false") {
		bol := *tok
		bol.Type = lexer.BOL
		return &bol
	}
	return tok
}

func valueNode(tok *lexer.Token) *ast.Node {
	tok = valueToken(tok)
	switch tok.Type {
	case lexer.BOL:
		return ast.Leaf(ast.BOL, tok)
	case lexer.STR:
		return ast.Leaf(ast.STR, tok)
	case lexer.NUM:
		return ast.Leaf(ast.NUM, tok)
	default:
		return ast.Leaf(ast.IDT, tok)
	}
}

// ParseString parses src, which may span several lines
func ParseString(src string) (*ast.Node, error) {
	p := New(Options{})
	p.SetLines(stringx.SplitLines(src)...)
	return p.Parse()
}
