// File: commands.go
// Title: Built-in Command Parsers
// Description: Parsers for create, display, execute and with. Each receives
//              the already consumed command keyword.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package parser

import (
	"github.com/msto63/cmdscript/foundation/script/ast"
	"github.com/msto63/cmdscript/foundation/script/lexer"
)

// create service X | create [connected] form X
func parseCreate(p *Parser, keyword *lexer.Token) (*ast.Node, error) {
	target := p.Next()
	if target.Type != lexer.RSV && target.Type != lexer.IDT {
		return nil, unexpected(target, "service", "form", "connected")
	}
	fn, ok := p.targets[target.Text]
	if !ok {
		return nil, unknownCommand(target)
	}
	return fn(p, keyword, target)
}

func parseCreateService(p *Parser, keyword, target *lexer.Token) (*ast.Node, error) {
	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	return ast.NewNode(ast.CMD, []any{keyword, target, name}), nil
}

func parseCreateForm(p *Parser, keyword, target *lexer.Token) (*ast.Node, error) {
	connected := &lexer.Token{Type: lexer.BOL, Text: "false", Line: target.Line, Pos: target.Pos}
	if target.Text == "connected" {
		connected.Text = "true"
		form, err := p.Expect(lexer.RSV, "form")
		if err != nil {
			return nil, err
		}
		target = form
	}

	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	return ast.NewNode(ast.CMD, []any{keyword, target, name, ast.Leaf(ast.BOL, connected)}), nil
}

// display form X (allowed, ...)
func parseDisplay(p *Parser, keyword *lexer.Token) (*ast.Node, error) {
	form, err := p.Expect(lexer.RSV, "form")
	if err != nil {
		return nil, err
	}
	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	params, err := p.optionalParameterList()
	if err != nil {
		return nil, err
	}
	return ast.NewNode(ast.CMD, []any{keyword, form, name, ast.OrNil(params)}), nil
}

// execute service X (key, ...) {name: value, ...}
func parseExecute(p *Parser, keyword *lexer.Token) (*ast.Node, error) {
	service, err := p.Expect(lexer.RSV, "service")
	if err != nil {
		return nil, err
	}
	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	params, tuples, err := p.keyAndParameters()
	if err != nil {
		return nil, err
	}
	return ast.NewNode(ast.CMD, []any{keyword, service, name, ast.OrNil(params), ast.OrNil(tuples)}), nil
}

// with E (key) {params} do A (key) {params}
func parseWith(p *Parser, keyword *lexer.Token) (*ast.Node, error) {
	entity, err := p.parseReference(ast.ENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(lexer.RSV, "do"); err != nil {
		return nil, err
	}
	action, err := p.parseReference(ast.ACT)
	if err != nil {
		return nil, err
	}
	return ast.NewNode(ast.CMD, []any{keyword, entity, action}), nil
}

// parseReference parses name (key)? {params}? into an ENT or ACT node
func (p *Parser) parseReference(typ ast.NodeType) (*ast.Node, error) {
	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	params, tuples, err := p.keyAndParameters()
	if err != nil {
		return nil, err
	}
	return ast.NewNode(typ, []any{name, ast.OrNil(params), ast.OrNil(tuples)}), nil
}

func (p *Parser) keyAndParameters() (*ast.Node, *ast.Node, error) {
	params, err := p.optionalParameterList()
	if err != nil {
		return nil, nil, err
	}
	var tuples *ast.Node
	if p.Peek().Is(lexer.LIT, "{") {
		if tuples, err = p.ParseMap(); err != nil {
			return nil, nil, err
		}
	}
	return params, tuples, nil
}

func (p *Parser) optionalParameterList() (*ast.Node, error) {
	if !p.Peek().Is(lexer.LIT, "(") {
		return nil, nil
	}
	return p.ParseParameterList()
}
