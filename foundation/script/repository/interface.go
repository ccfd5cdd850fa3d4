// File: interface.go
// Title: Repository Contracts
// Description: Interfaces consumed by the interpreter. Implementations own
//              the lookup transport and the entity behavior.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package repository

import (
	"context"
)

// Service is an executable unit resolved by id. The interpreter calls Reset,
// then SetKey and SetParameters, then Execute.
type Service interface {
	ID() string
	Reset()
	SetKey(key []any) error
	// SetParameters replaces the parameters. With strict set, names the
	// service does not declare are rejected.
	SetParameters(params map[string]any, strict bool) error
	Execute(ctx context.Context) (any, error)
	RequireKey() bool
	RequireParameters() bool
	KeyFields() []string
}

// Form is a displayable form definition
type Form interface {
	ID() string
	Title() string
	Fields() []string
	// Connected reports whether the form was created bound to its services
	Connected() bool
}

// Repository resolves ids to services and forms
type Repository interface {
	GetService(ctx context.Context, id string) (Service, error)
	GetForm(ctx context.Context, id string, connected bool) (Form, error)
}

// Displayer opens a form. allowed lists the services the form may invoke.
// A nil result with a nil error means the user cancelled.
type Displayer interface {
	Display(ctx context.Context, form Form, allowed []string) (any, error)
}

// DisplayFunc adapts a function to the Displayer interface
type DisplayFunc func(ctx context.Context, form Form, allowed []string) (any, error)

// Display calls f
func (f DisplayFunc) Display(ctx context.Context, form Form, allowed []string) (any, error) {
	return f(ctx, form, allowed)
}
