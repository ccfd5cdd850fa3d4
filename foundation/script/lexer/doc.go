// Package lexer tokenizes command script source.
//
// Package: lexer
// Title: Command Script Lexical Analyzer
// Description: A line-oriented tokenizer with a marker stack for arbitrary
//              lookahead, and a CommandLexer decorator that filters
//              whitespace and reclassifies keywords for the parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// The cursor is a (line, position) pair. Line 0 is the state before the
// first line; Next returns a BOI token exactly once from there. Every line
// ends with an EOL token and after the last line Next keeps returning EOI.
//
//	l := lexer.New()
//	l.SetLines("x = 10;")
//	for tok := l.Next(); tok.Type != lexer.EOI; tok = l.Next() {
//		fmt.Println(tok)
//	}
package lexer
