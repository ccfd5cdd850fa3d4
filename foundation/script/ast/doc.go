// Package ast defines the syntax tree produced by the script parser.
//
// Package: ast
// Title: Command Script Abstract Syntax Tree
// Description: A single immutable Node type carrying a node kind and a
//              value whose shape is fixed by the kind, a structural dumper
//              for diagnostics and a pre-order walker.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Value shapes by node type:
//
//	ROOT             []*Node of expressions, nil for an empty program
//	CMD              []any, element 0 is the CMD token
//	ASS              []any{IDT node, expression node}
//	AIO              []any{command node, expression node}
//	ENT, ACT         []any{name node, PLS node or nil, MAP node or nil}
//	PLS              []any of leaf nodes, nil for empty slots
//	MAP              map[string]*lexer.Token, nil for a missing value
//	IDT, STR,
//	NUM, BOL         *lexer.Token
package ast
