// File: lexer.go
// Title: Command Script Lexer
// Description: Converts input lines into tokens one at a time. Tokens never
//              span lines. A marker stack allows the parser to look ahead
//              and rewind.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/cmdscript/foundation/utils/stringx"
)

// Marker is a saved cursor position
type Marker struct {
	Line int
	Pos  int
}

// Source is the token stream contract shared by Lexer and its decorators
type Source interface {
	SetLines(lines ...string) []string
	Reset()
	Next() *Token
	Current() *Token
	Mark() Marker
	Rewind() (Marker, bool)
	DropMarks(n int) []Marker
	IsBOI() bool
	IsEOI() bool
	Position() Marker
}

type savedMark struct {
	Marker
	current *Token
}

// Lexer tokenizes a fixed set of lines
type Lexer struct {
	lines   []string
	line    int
	pos     int
	current *Token
	marks   []savedMark
}

var _ Source = (*Lexer)(nil)

// New creates a lexer without input
func New() *Lexer {
	return &Lexer{}
}

// SetLines replaces the input and resets the cursor. Blank lines are
// dropped, so a single blank string means no input. The previous lines are
// returned.
func (l *Lexer) SetLines(lines ...string) []string {
	prev := l.lines
	l.lines = nil
	for _, line := range lines {
		if !stringx.IsBlank(line) {
			l.lines = append(l.lines, line)
		}
	}
	l.Reset()
	return prev
}

// Lines returns the current input
func (l *Lexer) Lines() []string {
	return l.lines
}

// Reset moves the cursor before the first line and clears all markers
func (l *Lexer) Reset() {
	l.line = 0
	l.pos = 0
	l.current = nil
	l.marks = l.marks[:0]
}

// Current returns the token last returned by Next, nil before the first call
func (l *Lexer) Current() *Token {
	return l.current
}

// IsBOI reports whether the cursor is before the first line
func (l *Lexer) IsBOI() bool {
	return l.line == 0
}

// IsEOI reports whether the cursor is past the last line
func (l *Lexer) IsEOI() bool {
	return l.line > len(l.lines)
}

// Position returns the cursor
func (l *Lexer) Position() Marker {
	return Marker{Line: l.line, Pos: l.pos}
}

// Mark pushes the cursor on the marker stack
func (l *Lexer) Mark() Marker {
	m := Marker{Line: l.line, Pos: l.pos}
	l.marks = append(l.marks, savedMark{Marker: m, current: l.current})
	return m
}

// Rewind pops the last marker and moves the cursor back to it
func (l *Lexer) Rewind() (Marker, bool) {
	if len(l.marks) == 0 {
		return Marker{}, false
	}
	top := l.marks[len(l.marks)-1]
	l.marks = l.marks[:len(l.marks)-1]
	l.line, l.pos, l.current = top.Line, top.Pos, top.current
	return top.Marker, true
}

// DropMarks pops up to n markers (at least one) without moving the cursor
// and returns them, most recent first.
func (l *Lexer) DropMarks(n int) []Marker {
	if n < 1 {
		n = 1
	}
	if n > len(l.marks) {
		n = len(l.marks)
	}
	dropped := make([]Marker, 0, n)
	for i := 0; i < n; i++ {
		top := l.marks[len(l.marks)-1]
		l.marks = l.marks[:len(l.marks)-1]
		dropped = append(dropped, top.Marker)
	}
	return dropped
}

// Next returns the next token and advances the cursor
func (l *Lexer) Next() *Token {
	l.current = l.scan()
	return l.current
}

func (l *Lexer) scan() *Token {
	if l.IsBOI() {
		l.line, l.pos = 1, 0
		return &Token{Type: BOI}
	}
	if l.IsEOI() {
		return &Token{Type: EOI, Line: l.line}
	}

	text := l.lines[l.line-1]
	if l.pos >= len(text) {
		tok := &Token{Type: EOL, Line: l.line, Pos: l.pos}
		l.line, l.pos = l.line+1, 0
		return tok
	}

	rest := text[l.pos:]
	ch := rest[0]

	switch {
	case ch == '\n':
		return l.emit(EOL, 1)
	case isSpace(ch):
		n := 1
		for n < len(rest) && isSpace(rest[n]) {
			n++
		}
		return l.emit(WSP, n)
	case isLetter(ch), ch == '_' && len(rest) > 1 && isIdentChar(rest[1]):
		return l.emit(IDT, identLength(rest))
	case ch == '\'', ch == '"':
		return l.scanString(rest)
	case isDigit(ch):
		return l.emit(NUM, numberLength(rest))
	case ch == '.' && len(rest) > 1 && isDigit(rest[1]):
		return l.emit(NUM, fractionLength(rest))
	case ch == '<':
		if len(rest) > 1 && strings.IndexByte("=>-", rest[1]) >= 0 {
			return l.emit(LIT, 2)
		}
		return l.emit(LIT, 1)
	case ch == '>':
		if len(rest) > 1 && rest[1] == '=' {
			return l.emit(LIT, 2)
		}
		return l.emit(LIT, 1)
	case strings.IndexByte(";(,){:}=!&|._", ch) >= 0:
		return l.emit(LIT, 1)
	default:
		_, size := utf8.DecodeRuneInString(rest)
		return l.emit(UNK, size)
	}
}

// emit creates a token from the next n bytes of the current line
func (l *Lexer) emit(tt TokenType, n int) *Token {
	text := l.lines[l.line-1]
	tok := &Token{Type: tt, Text: text[l.pos : l.pos+n], Line: l.line, Pos: l.pos}
	l.pos += n
	return tok
}

func (l *Lexer) scanString(rest string) *Token {
	quote := rest[0]
	end := strings.IndexByte(rest[1:], quote)
	if end < 0 {
		return l.emit(ERR, len(rest))
	}
	tok := &Token{
		Type:  STR,
		Text:  rest[1 : end+1],
		Quote: rune(quote),
		Line:  l.line,
		Pos:   l.pos,
	}
	l.pos += end + 2
	return tok
}

func identLength(s string) int {
	n := 1
	for n < len(s) && isIdentChar(s[n]) {
		n++
	}
	return n
}

// numberLength matches \d+(\.\d*)?(e[+-]?\d+)?
func numberLength(s string) int {
	n := digitRun(s, 0)
	if n < len(s) && s[n] == '.' {
		n = digitRun(s, n+1)
	}
	return n + exponentLength(s[n:])
}

// fractionLength matches \.\d+(e[+-]?\d+)?
func fractionLength(s string) int {
	n := digitRun(s, 1)
	return n + exponentLength(s[n:])
}

func exponentLength(s string) int {
	if len(s) < 2 || s[0] != 'e' {
		return 0
	}
	n := 1
	if s[n] == '+' || s[n] == '-' {
		n++
	}
	end := digitRun(s, n)
	if end == n {
		return 0
	}
	return end
}

func digitRun(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isSpace(ch byte) bool {
	return ch != '\n' && ch < utf8.RuneSelf && unicode.IsSpace(rune(ch))
}

// Tokenize returns every token of lines up to and including EOI
func Tokenize(lines ...string) []*Token {
	l := New()
	l.SetLines(lines...)
	var tokens []*Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == EOI {
			return tokens
		}
	}
}
