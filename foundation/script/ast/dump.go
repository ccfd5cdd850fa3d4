// File: dump.go
// Title: AST Dumper
// Description: Renders a node and everything below it either on one line or
//              as an indented tree. Diagnostic output only.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package ast

import (
	"fmt"
	"strings"

	"github.com/msto63/cmdscript/foundation/script/lexer"
	"github.com/msto63/cmdscript/foundation/utils/mapx"
)

const indentUnit = "  "

// Dump renders the full structure of n. Nodes appear as AST(TYPE|value),
// tokens as TOKEN(TYPE|text), lists as [a,b] and maps as {'k':v, ...} with
// sorted keys. With indent set the same structure is laid out one element
// per line.
func (n *Node) Dump(indent bool) string {
	d := &dumper{indent: indent}
	d.value(n, 0)
	return d.b.String()
}

type dumper struct {
	b      strings.Builder
	indent bool
}

func (d *dumper) newline(depth int) {
	if d.indent {
		d.b.WriteByte('\n')
		d.b.WriteString(strings.Repeat(indentUnit, depth))
	}
}

func (d *dumper) value(v any, depth int) {
	switch x := v.(type) {
	case nil:
		d.b.WriteString("null")
	case *Node:
		if x == nil {
			d.b.WriteString("null")
			return
		}
		d.b.WriteString("AST(" + x.typ.String() + "|")
		d.newline(depth + 1)
		d.value(x.value, depth+1)
		d.newline(depth)
		d.b.WriteByte(')')
	case *lexer.Token:
		if x == nil {
			d.b.WriteString("null")
			return
		}
		fmt.Fprintf(&d.b, "TOKEN(%s|%s)", x.Type, x.Text)
	case []*Node:
		items := make([]any, len(x))
		for i, node := range x {
			items[i] = node
		}
		d.list(items, depth)
	case []any:
		d.list(x, depth)
	case map[string]*lexer.Token:
		d.tuples(x, depth)
	default:
		fmt.Fprintf(&d.b, "%v", x)
	}
}

func (d *dumper) list(items []any, depth int) {
	if len(items) == 0 {
		d.b.WriteString("[]")
		return
	}
	d.b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			d.b.WriteByte(',')
		}
		d.newline(depth + 1)
		d.value(item, depth+1)
	}
	d.newline(depth)
	d.b.WriteByte(']')
}

func (d *dumper) tuples(m map[string]*lexer.Token, depth int) {
	if len(m) == 0 {
		d.b.WriteString("{}")
		return
	}
	keys := mapx.SortedKeys(m)

	d.b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			d.b.WriteByte(',')
			if !d.indent {
				d.b.WriteByte(' ')
			}
		}
		d.newline(depth + 1)
		d.b.WriteString("'" + k + "':")
		d.value(m[k], depth+1)
	}
	d.newline(depth)
	d.b.WriteByte('}')
}
