// File: command_lexer.go
// Title: Command Lexer Decorator
// Description: Wraps a Source, skips whitespace and optionally line ends,
//              drops the leading BOI token and turns command keywords and
//              reserved words into CMD and RSV tokens.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package lexer

// DefaultCommands are the identifiers reclassified as CMD
var DefaultCommands = []string{"create", "display", "execute", "with"}

// DefaultReserved are the identifiers reclassified as RSV
var DefaultReserved = []string{"do", "service", "connected", "form"}

// CommandLexerOptions configures a CommandLexer. The zero value skips
// whitespace, keeps line ends and uses the default keyword sets.
type CommandLexerOptions struct {
	KeepWhitespace bool
	SkipEOL        bool
	Commands       []string
	Reserved       []string
}

// CommandLexer decorates a Source for the parser
type CommandLexer struct {
	Source
	skipWS   bool
	skipEOL  bool
	commands map[string]struct{}
	reserved map[string]struct{}
}

var _ Source = (*CommandLexer)(nil)

// NewCommandLexer wraps src
func NewCommandLexer(src Source, opts CommandLexerOptions) *CommandLexer {
	if opts.Commands == nil {
		opts.Commands = DefaultCommands
	}
	if opts.Reserved == nil {
		opts.Reserved = DefaultReserved
	}
	return &CommandLexer{
		Source:   src,
		skipWS:   !opts.KeepWhitespace,
		skipEOL:  opts.SkipEOL,
		commands: toSet(opts.Commands),
		reserved: toSet(opts.Reserved),
	}
}

// SetSkipWS toggles whitespace filtering
func (c *CommandLexer) SetSkipWS(skip bool) {
	c.skipWS = skip
}

// SetSkipEOL toggles line end filtering
func (c *CommandLexer) SetSkipEOL(skip bool) {
	c.skipEOL = skip
}

// AddCommands extends the set of words reclassified as CMD
func (c *CommandLexer) AddCommands(words ...string) {
	for _, w := range words {
		c.commands[w] = struct{}{}
	}
}

// Next returns the next significant token. The leading BOI is always
// skipped.
func (c *CommandLexer) Next() *Token {
	tok := c.Source.Next()
	if tok.Type == BOI {
		tok = c.Source.Next()
	}
	for (c.skipWS && tok.Type == WSP) || (c.skipEOL && tok.Type == EOL) {
		tok = c.Source.Next()
	}
	if tok.Type == IDT {
		if _, ok := c.commands[tok.Text]; ok {
			tok.Type = CMD
		} else if _, ok := c.reserved[tok.Text]; ok {
			tok.Type = RSV
		}
	}
	return tok
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
