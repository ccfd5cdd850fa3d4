// Package parser builds syntax trees from command script source.
//
// Package: parser
// Title: Command Script Recursive Descent Parser
// Description: Consumes the CommandLexer token stream and produces an
//              ast.Node tree. Commands are dispatched through an explicit
//              table that callers may extend. The first grammar violation
//              aborts the parse; there is no recovery.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Grammar:
//
//	commands       ::= (expression? ';')*
//	expression     ::= command ('<-' expression)?
//	                 | IDT ('=' expression)?
//	                 | STR | NUM | BOL | map
//	command        ::= 'create' ('service' name | 'connected'? 'form' name)
//	                 | 'display' 'form' name parameter-list?
//	                 | 'execute' 'service' name parameter-list? map?
//	                 | 'with' reference 'do' reference
//	reference      ::= name parameter-list? map?
//	name           ::= IDT | STR
//	parameter-list ::= '(' (param? (',' param?)*)? ')'
//	param          ::= IDT | STR | NUM | BOL
//	map            ::= '{' (tuple (',' tuple)*)? '}'
//	tuple          ::= name ':' param?
//
// The identifiers true and false are BOL in value positions. Every empty
// slot of a parameter list yields one nil entry: () has none, (,) has two.
package parser
