// File: references.go
// Title: Program References
// Description: Collects the services and forms a program refers to and
//              checks them against the repository.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package script

import (
	"context"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/ast"
)

// Reference kinds
const (
	KindService = "service"
	KindForm    = "form"
)

// Reference is a service or form id named in a program
type Reference struct {
	Kind string
	ID   string
	Line int
	Pos  int
}

// Problem is a reference the repository cannot resolve
type Problem struct {
	Reference Reference
	Err       error
}

// References returns the service and form references of root in source
// order
func References(root *ast.Node) []Reference {
	var refs []Reference
	ast.Walk(root, func(n *ast.Node) bool {
		if !n.Is(ast.CMD) {
			return true
		}
		keyword := n.TokenAt(0)
		if keyword == nil {
			return true
		}

		switch keyword.Text {
		case "create":
			if target := n.TokenAt(1); target != nil {
				refs = appendRef(refs, target.Text, n.NodeAt(2), "")
			}
		case "display":
			refs = appendRef(refs, KindForm, n.NodeAt(2), "")
		case "execute":
			refs = appendRef(refs, KindService, n.NodeAt(2), "")
		case "with":
			entity, action := n.NodeAt(1), n.NodeAt(2)
			if entity == nil || action == nil {
				return true
			}
			if name := action.NodeAt(0); name != nil && name.Token() != nil {
				refs = appendRef(refs, KindService, entity.NodeAt(0), ":"+name.Token().Text)
			}
		}
		return true
	})
	return refs
}

func appendRef(refs []Reference, kind string, name *ast.Node, suffix string) []Reference {
	if !name.Is(ast.IDT, ast.STR) || name.Token() == nil {
		return refs
	}
	tok := name.Token()
	return append(refs, Reference{Kind: kind, ID: tok.Text + suffix, Line: tok.Line, Pos: tok.Pos})
}

// Check resolves every reference of src and returns the ones that are
// not found. The error covers syntax errors, a missing repository and
// lookup failures other than not found.
func (e *Engine) Check(ctx context.Context, src string) ([]Problem, error) {
	root, err := e.Parse(src)
	if err != nil {
		return nil, err
	}
	if e.options.Repository == nil {
		return nil, cserror.New("no repository configured").
			WithCode(cserror.CodeConfigError).
			WithOperation("engine.Check")
	}

	var problems []Problem
	for _, ref := range References(root) {
		var lookupErr error
		if ref.Kind == KindForm {
			_, lookupErr = e.options.Repository.GetForm(ctx, ref.ID, false)
		} else {
			_, lookupErr = e.options.Repository.GetService(ctx, ref.ID)
		}

		switch {
		case lookupErr == nil:
		case cserror.HasCode(lookupErr, cserror.CodeNotFound):
			problems = append(problems, Problem{Reference: ref, Err: lookupErr})
		default:
			return problems, lookupErr
		}
	}

	e.logger.Debug("Checked references", cslog.Fields{"problems": len(problems)})
	return problems, nil
}
