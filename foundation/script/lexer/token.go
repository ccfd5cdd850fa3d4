// File: token.go
// Title: Token Definitions
// Description: Token kinds produced by the lexer and the Token record.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package lexer

import (
	"fmt"
)

// TokenType represents the kind of a lexical token
type TokenType int

const (
	BOI TokenType = iota // before input
	EOI                  // end of input
	EOL                  // end of line
	WSP                  // whitespace run
	IDT                  // identifier
	STR                  // quoted string
	NUM                  // number
	BOL                  // boolean
	MAP                  // map literal
	LIT                  // punctuation / operator
	CMD                  // command keyword
	RSV                  // reserved word
	UNK                  // unknown character
	ERR                  // malformed token
)

var tokenTypeNames = [...]string{
	BOI: "BOI",
	EOI: "EOI",
	EOL: "EOL",
	WSP: "WSP",
	IDT: "IDT",
	STR: "STR",
	NUM: "NUM",
	BOL: "BOL",
	MAP: "MAP",
	LIT: "LIT",
	CMD: "CMD",
	RSV: "RSV",
	UNK: "UNK",
	ERR: "ERR",
}

// String returns the three letter name of the token type
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenTypeNames) {
		return tokenTypeNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical token. Text excludes the quotes of a STR token;
// Quote records which quote character was used.
type Token struct {
	Type  TokenType
	Text  string
	Quote rune
	Line  int
	Pos   int
}

// String returns a compact representation such as IDT(foo)
func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Type {
	case BOI, EOI:
		return t.Type.String()
	case STR:
		return fmt.Sprintf("STR(%c%s%c)", t.Quote, t.Text, t.Quote)
	default:
		return fmt.Sprintf("%s(%s)", t.Type, t.Text)
	}
}

// Is reports whether the token has type tt and, when texts are given, one
// of those texts.
func (t *Token) Is(tt TokenType, texts ...string) bool {
	if t == nil || t.Type != tt {
		return false
	}
	if len(texts) == 0 {
		return true
	}
	for _, text := range texts {
		if t.Text == text {
			return true
		}
	}
	return false
}

// Source returns the text as it appeared in the input
func (t *Token) Source() string {
	if t.Type == STR {
		return string(t.Quote) + t.Text + string(t.Quote)
	}
	return t.Text
}
