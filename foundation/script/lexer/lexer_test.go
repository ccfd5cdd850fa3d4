// File: lexer_test.go
// Title: Lexer Unit Tests
// Description: Tokenization of every character class, cursor boundaries,
//              the marker stack and the text round trip.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17

package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tk(tt TokenType, text string, line, pos int) *Token {
	return &Token{Type: tt, Text: text, Line: line, Pos: pos}
}

func str(text string, quote rune, line, pos int) *Token {
	return &Token{Type: STR, Text: text, Quote: quote, Line: line, Pos: pos}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []*Token
	}{
		{
			name:  "assignment",
			lines: []string{"x = 10;"},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(IDT, "x", 1, 0), tk(WSP, " ", 1, 1), tk(LIT, "=", 1, 2), tk(WSP, " ", 1, 3),
				tk(NUM, "10", 1, 4), tk(LIT, ";", 1, 6), tk(EOL, "", 1, 7),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "strings with both quotes",
			lines: []string{`'a b' "c"`},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				str("a b", '\'', 1, 0), tk(WSP, " ", 1, 5), str("c", '"', 1, 6), tk(EOL, "", 1, 9),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "empty string literal",
			lines: []string{`''`},
			expected: []*Token{
				tk(BOI, "", 0, 0), str("", '\'', 1, 0), tk(EOL, "", 1, 2), tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "unmatched quote",
			lines: []string{`x 'abc`},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(IDT, "x", 1, 0), tk(WSP, " ", 1, 1), tk(ERR, "'abc", 1, 2), tk(EOL, "", 1, 6),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "numbers",
			lines: []string{"1.5e-3 .25 7e x 3."},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(NUM, "1.5e-3", 1, 0), tk(WSP, " ", 1, 6), tk(NUM, ".25", 1, 7), tk(WSP, " ", 1, 10),
				tk(NUM, "7", 1, 11), tk(IDT, "e", 1, 12), tk(WSP, " ", 1, 13), tk(IDT, "x", 1, 14),
				tk(WSP, " ", 1, 15), tk(NUM, "3.", 1, 16), tk(EOL, "", 1, 18),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "exponent is lowercase only",
			lines: []string{"1E3 2e3"},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(NUM, "1", 1, 0), tk(IDT, "E3", 1, 1), tk(WSP, " ", 1, 3), tk(NUM, "2e3", 1, 4),
				tk(EOL, "", 1, 7),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "operators and underscores",
			lines: []string{"<- <= <> < >= > _a _"},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(LIT, "<-", 1, 0), tk(WSP, " ", 1, 2), tk(LIT, "<=", 1, 3), tk(WSP, " ", 1, 5),
				tk(LIT, "<>", 1, 6), tk(WSP, " ", 1, 8), tk(LIT, "<", 1, 9), tk(WSP, " ", 1, 10),
				tk(LIT, ">=", 1, 11), tk(WSP, " ", 1, 13), tk(LIT, ">", 1, 14), tk(WSP, " ", 1, 15),
				tk(IDT, "_a", 1, 16), tk(WSP, " ", 1, 18), tk(LIT, "_", 1, 19), tk(EOL, "", 1, 20),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "punctuation",
			lines: []string{"{a:1},(!&|)."},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(LIT, "{", 1, 0), tk(IDT, "a", 1, 1), tk(LIT, ":", 1, 2), tk(NUM, "1", 1, 3),
				tk(LIT, "}", 1, 4), tk(LIT, ",", 1, 5), tk(LIT, "(", 1, 6), tk(LIT, "!", 1, 7),
				tk(LIT, "&", 1, 8), tk(LIT, "|", 1, 9), tk(LIT, ")", 1, 10), tk(LIT, ".", 1, 11),
				tk(EOL, "", 1, 12),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "unknown characters",
			lines: []string{"a#é"},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(IDT, "a", 1, 0), tk(UNK, "#", 1, 1), tk(UNK, "é", 1, 2), tk(EOL, "", 1, 4),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "embedded newline",
			lines: []string{"a\nb"},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(IDT, "a", 1, 0), tk(EOL, "\n", 1, 1), tk(IDT, "b", 1, 2), tk(EOL, "", 1, 3),
				tk(EOI, "", 2, 0),
			},
		},
		{
			name:  "blank lines are dropped",
			lines: []string{"a", "  \t", "b"},
			expected: []*Token{
				tk(BOI, "", 0, 0),
				tk(IDT, "a", 1, 0), tk(EOL, "", 1, 1),
				tk(IDT, "b", 2, 0), tk(EOL, "", 2, 1),
				tk(EOI, "", 3, 0),
			},
		},
		{
			name:     "empty input",
			lines:    []string{""},
			expected: []*Token{tk(BOI, "", 0, 0), tk(EOI, "", 1, 0)},
		},
		{
			name:     "no input",
			lines:    nil,
			expected: []*Token{tk(BOI, "", 0, 0), tk(EOI, "", 1, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.lines...)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`with customer(4711, 'x') { a: "b c", n: .5 } do show;`,
		"  x=   y <- execute service s ( , ) ;\t",
		`create connected form "Customer Form"; 'open`,
	}
	for _, input := range inputs {
		var b strings.Builder
		for _, tok := range Tokenize(input) {
			b.WriteString(tok.Source())
		}
		if b.String() != input {
			t.Errorf("round trip = %q, want %q", b.String(), input)
		}
	}
}

func TestBoundaries(t *testing.T) {
	l := New()
	if l.Current() != nil {
		t.Error("Current() should be nil before the first Next()")
	}
	l.SetLines("a")
	if !l.IsBOI() || l.IsEOI() {
		t.Fatal("fresh lexer should be at BOI")
	}

	if tok := l.Next(); tok.Type != BOI {
		t.Fatalf("first token = %v, want BOI", tok)
	}
	if l.IsBOI() {
		t.Error("BOI should be consumed exactly once")
	}
	l.Next() // a
	l.Next() // EOL
	if !l.IsEOI() {
		t.Fatal("expected EOI after the last line")
	}

	before := l.Position()
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Type != EOI {
			t.Errorf("Next() after EOI = %v, want EOI", tok)
		}
	}
	if l.Position() != before {
		t.Errorf("Position() moved after EOI: %v -> %v", before, l.Position())
	}
	if l.Current().Type != EOI {
		t.Error("Current() should return the last token")
	}
}

func TestSetLinesReturnsPrevious(t *testing.T) {
	l := New()
	l.SetLines("a", "b")
	l.Next()
	l.Mark()

	prev := l.SetLines("c")
	if diff := cmp.Diff([]string{"a", "b"}, prev); diff != "" {
		t.Errorf("SetLines() mismatch (-want +got):\n%s", diff)
	}
	if !l.IsBOI() {
		t.Error("SetLines() should reset the cursor")
	}
	if _, ok := l.Rewind(); ok {
		t.Error("SetLines() should clear the markers")
	}
}

func TestMarkRewind(t *testing.T) {
	l := New()
	l.SetLines("create service foo;", "x = 1;")

	l.Next()
	l.Next()
	saved := l.Mark()
	savedCurrent := l.Current()

	for i := 0; i < 7; i++ {
		l.Next()
	}
	if l.Position() == saved {
		t.Fatal("cursor should have moved")
	}

	got, ok := l.Rewind()
	if !ok {
		t.Fatal("Rewind() with a marker should succeed")
	}
	if got != saved || l.Position() != saved {
		t.Errorf("Rewind() = %v, position %v, want %v", got, l.Position(), saved)
	}
	if l.Current() != savedCurrent {
		t.Error("Rewind() should restore Current()")
	}
	if tok := l.Next(); !tok.Is(WSP) {
		t.Errorf("token after rewind = %v, want WSP", tok)
	}
}

func TestDropMarks(t *testing.T) {
	l := New()
	l.SetLines("a b c")
	l.Next()
	m1 := l.Mark()
	l.Next()
	m2 := l.Mark()
	l.Next()
	m3 := l.Mark()
	pos := l.Position()

	if diff := cmp.Diff([]Marker{m3}, l.DropMarks(0)); diff != "" {
		t.Errorf("DropMarks(0) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Marker{m2, m1}, l.DropMarks(5)); diff != "" {
		t.Errorf("DropMarks(5) mismatch (-want +got):\n%s", diff)
	}
	if l.Position() != pos {
		t.Error("DropMarks() must not move the cursor")
	}
	if len(l.DropMarks(1)) != 0 {
		t.Error("DropMarks() on an empty stack should return nothing")
	}
}

func TestTokenIs(t *testing.T) {
	tok := tk(LIT, ";", 1, 0)
	if !tok.Is(LIT) || !tok.Is(LIT, ",", ";") || tok.Is(LIT, ",") || tok.Is(IDT) {
		t.Error("Is() mismatch")
	}
	var nilTok *Token
	if nilTok.Is(LIT) {
		t.Error("nil token should match nothing")
	}
}
