// File: values.go
// Title: Literal Values
// Description: Conversion of leaf, map and parameter list nodes to Go values.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interp

import (
	"fmt"
	"strconv"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	"github.com/msto63/cmdscript/foundation/script/ast"
	"github.com/msto63/cmdscript/foundation/script/lexer"
)

// isSimple reports whether node resolves without a runner
func isSimple(node *ast.Node) bool {
	return node != nil && (node.Type().IsLeaf() || node.Is(ast.MAP, ast.PLS))
}

// valueOf resolves a leaf, MAP or PLS node. IDT nodes are dereferenced.
func valueOf(node *ast.Node, env *Env) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type() {
	case ast.IDT, ast.STR, ast.NUM, ast.BOL:
		return tokenValue(node.Token(), env)
	case ast.MAP:
		return mapValue(node, env)
	case ast.PLS:
		return listValue(node, env)
	}
	return nil, cserror.Newf("Expecting one of [IDT,STR,NUM,BOL,MAP,PLS] found [%s]", node.Type()).
		WithCode(cserror.CodeSemantic).
		WithOperation("interp.valueOf")
}

func tokenValue(tok *lexer.Token, env *Env) (any, error) {
	if tok == nil {
		return nil, nil
	}
	switch tok.Type {
	case lexer.IDT:
		v, ok := env.Get(tok.Text)
		if !ok {
			return nil, cserror.Newf("Variable [%s] is not set", tok.Text).
				WithCode(cserror.CodeUnboundVariable).
				WithOperation("interp.deref").
				WithDetail("line", tok.Line).
				WithDetail("position", tok.Pos)
		}
		return v, nil
	case lexer.STR:
		return tok.Text, nil
	case lexer.NUM:
		return parseNumber(tok.Text)
	case lexer.BOL:
		return tok.Text == "true", nil
	}
	return nil, cserror.Newf("Unexpected value token [%s,%s]", tok.Type, tok.Text).
		WithCode(cserror.CodeSemantic).
		WithOperation("interp.tokenValue")
}

// parseNumber returns an int64 for integral literals, a float64 otherwise
func parseNumber(text string) (any, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, cserror.Wrap(err, fmt.Sprintf("invalid number [%s]", text)).
			WithCode(cserror.CodeSemantic).
			WithOperation("interp.parseNumber")
	}
	return f, nil
}

func mapValue(node *ast.Node, env *Env) (map[string]any, error) {
	tuples := node.Tuples()
	out := make(map[string]any, len(tuples))
	for key, tok := range tuples {
		v, err := tokenValue(tok, env)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func listValue(node *ast.Node, env *Env) ([]any, error) {
	items := node.Items()
	out := make([]any, len(items))
	for i := range items {
		v, err := valueOf(node.NodeAt(i), env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// nameOf returns the literal text of a name node (IDT or STR)
func nameOf(node *ast.Node) (string, bool) {
	if !node.Is(ast.IDT, ast.STR) || node.Token() == nil {
		return "", false
	}
	return node.Token().Text, true
}
