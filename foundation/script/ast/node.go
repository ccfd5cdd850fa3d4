// File: node.go
// Title: AST Node
// Description: Node kinds, the Node carrier and typed accessors for the
//              value shapes.
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

	"github.com/msto63/cmdscript/foundation/script/lexer"
)

// NodeType identifies the kind of a Node
type NodeType int

const (
	ROOT NodeType = iota // program
	CMD                  // command
	ASS                  // assignment
	AIO                  // pipe, lhs <- rhs
	ENT                  // entity reference of a with command
	ACT                  // action reference of a with command
	PLS                  // parameter list
	MAP                  // map literal
	IDT                  // identifier
	STR                  // string literal
	NUM                  // number literal
	BOL                  // boolean literal
)

var nodeTypeNames = [...]string{
	ROOT: "ROOT",
	CMD:  "CMD",
	ASS:  "ASS",
	AIO:  "AIO",
	ENT:  "ENT",
	ACT:  "ACT",
	PLS:  "PLS",
	MAP:  "MAP",
	IDT:  "IDT",
	STR:  "STR",
	NUM:  "NUM",
	BOL:  "BOL",
}

// String returns the node type name
func (nt NodeType) String() string {
	if nt >= 0 && int(nt) < len(nodeTypeNames) {
		return nodeTypeNames[nt]
	}
	return fmt.Sprintf("NodeType(%d)", int(nt))
}

// IsLeaf reports whether nodes of this type carry a single token
func (nt NodeType) IsLeaf() bool {
	switch nt {
	case IDT, STR, NUM, BOL:
		return true
	}
	return false
}

// Node is an immutable (type, value) pair
type Node struct {
	typ   NodeType
	value any
}

// NewNode creates a node. A nil *Node inside a []any value must be passed
// as an untyped nil; see OrNil.
func NewNode(typ NodeType, value any) *Node {
	return &Node{typ: typ, value: value}
}

// Leaf creates an IDT, STR, NUM or BOL node for tok
func Leaf(typ NodeType, tok *lexer.Token) *Node {
	return &Node{typ: typ, value: tok}
}

// OrNil returns n as an interface value, untyped nil when n is nil
func OrNil(n *Node) any {
	if n == nil {
		return nil
	}
	return n
}

// Type returns the node type
func (n *Node) Type() NodeType {
	return n.typ
}

// Value returns the raw node value
func (n *Node) Value() any {
	return n.value
}

// Is reports whether n is non-nil and of one of the given types
func (n *Node) Is(types ...NodeType) bool {
	if n == nil {
		return false
	}
	for _, t := range types {
		if n.typ == t {
			return true
		}
	}
	return false
}

// String returns the shallow form AST(TYPE)
func (n *Node) String() string {
	if n == nil {
		return "null"
	}
	return "AST(" + n.typ.String() + ")"
}

// Token returns the token of a leaf node, nil otherwise
func (n *Node) Token() *lexer.Token {
	tok, _ := n.value.(*lexer.Token)
	return tok
}

// Items returns the list value of CMD, ASS, AIO, ENT, ACT and PLS nodes
func (n *Node) Items() []any {
	items, _ := n.value.([]any)
	return items
}

// NodeAt returns item i as a node, nil when it is missing or not a node
func (n *Node) NodeAt(i int) *Node {
	items := n.Items()
	if i < 0 || i >= len(items) {
		return nil
	}
	child, _ := items[i].(*Node)
	return child
}

// TokenAt returns item i as a token, nil when it is missing or not a token
func (n *Node) TokenAt(i int) *lexer.Token {
	items := n.Items()
	if i < 0 || i >= len(items) {
		return nil
	}
	tok, _ := items[i].(*lexer.Token)
	return tok
}

// Expressions returns the expression list of a ROOT node
func (n *Node) Expressions() []*Node {
	nodes, _ := n.value.([]*Node)
	return nodes
}

// Tuples returns the entries of a MAP node
func (n *Node) Tuples() map[string]*lexer.Token {
	m, _ := n.value.(map[string]*lexer.Token)
	return m
}

// Children returns the nodes directly contained in n's value
func (n *Node) Children() []*Node {
	switch v := n.value.(type) {
	case []*Node:
		return v
	case []any:
		var children []*Node
		for _, item := range v {
			if child, ok := item.(*Node); ok && child != nil {
				children = append(children, child)
			}
		}
		return children
	}
	return nil
}

// Walk visits n and its descendants in pre-order. Children of a node are
// skipped when fn returns false for it.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}
