// File: errors.go
// Title: Parser Errors
// Description: ParseError carries the expectation message and the position
//              of the offending token.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package parser

import (
	"fmt"
	"strings"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	"github.com/msto63/cmdscript/foundation/script/lexer"
)

// ParseError represents a grammar violation
type ParseError struct {
	Message  string
	Code     cserror.Code
	Expected []string
	Found    *lexer.Token
	Line     int
	Pos      int
}

func (pe *ParseError) Error() string {
	if pe.Found == nil {
		return pe.Message
	}
	return fmt.Sprintf("%s at line %d, position %d", pe.Message, pe.Line, pe.Pos)
}

func unexpected(found *lexer.Token, expected ...string) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf("Expecting one of [%s] found [%s,%s]", strings.Join(expected, ","), found.Type, found.Text),
		Code:     cserror.CodeSyntax,
		Expected: expected,
		Found:    found,
		Line:     found.Line,
		Pos:      found.Pos,
	}
}

func unknownCommand(tok *lexer.Token) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("Unknown command [%s]", tok.Text),
		Code:    cserror.CodeUnknownCommand,
		Found:   tok,
		Line:    tok.Line,
		Pos:     tok.Pos,
	}
}

// toError converts a ParseError into the structured error returned by Parse
func toError(pe *ParseError) error {
	message := "syntax error"
	if pe.Code == cserror.CodeUnknownCommand {
		message = "unknown command"
	}
	return cserror.New(message).
		WithCode(pe.Code).
		WithOperation("parser.Parse").
		WithDetail("line", pe.Line).
		WithDetail("position", pe.Pos).
		WithCause(pe)
}
