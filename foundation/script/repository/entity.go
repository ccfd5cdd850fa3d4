// File: entity.go
// Title: Basic Entities
// Description: BasicService runs a function with the key and parameters set
//              by the interpreter. BasicForm is a static form definition.
//              SummaryDisplayer shows forms without a UI.
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
	"sort"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
)

// Call is what a ServiceFunc receives
type Call struct {
	ServiceID  string
	Key        []any
	Parameters map[string]any
}

// ServiceFunc implements the behavior of a BasicService
type ServiceFunc func(ctx context.Context, call Call) (any, error)

// ServiceSpec configures a BasicService. An empty Parameters list accepts
// any parameter name, even in strict mode.
type ServiceSpec struct {
	ID                string
	KeyFields         []string
	Parameters        []string
	RequireKey        bool
	RequireParameters bool
	Run               ServiceFunc
}

// BasicService is a Service configured from a ServiceSpec
type BasicService struct {
	spec   ServiceSpec
	key    []any
	params map[string]any
}

var _ Service = (*BasicService)(nil)

// NewService creates a BasicService
func NewService(spec ServiceSpec) *BasicService {
	return &BasicService{spec: spec}
}

func (s *BasicService) ID() string              { return s.spec.ID }
func (s *BasicService) RequireKey() bool        { return s.spec.RequireKey }
func (s *BasicService) RequireParameters() bool { return s.spec.RequireParameters }
func (s *BasicService) KeyFields() []string     { return s.spec.KeyFields }

// Reset clears key and parameters
func (s *BasicService) Reset() {
	s.key = nil
	s.params = nil
}

// SetKey sets the key values. With declared key fields, extra values are
// rejected.
func (s *BasicService) SetKey(key []any) error {
	if len(s.spec.KeyFields) > 0 && len(key) > len(s.spec.KeyFields) {
		return cserror.Newf("service [%s] takes %d key values, got %d", s.spec.ID, len(s.spec.KeyFields), len(key)).
			WithCode(cserror.CodeInvalidParameter).
			WithOperation("service.SetKey")
	}
	s.key = append([]any(nil), key...)
	return nil
}

// SetParameters replaces the parameters
func (s *BasicService) SetParameters(params map[string]any, strict bool) error {
	if strict && len(s.spec.Parameters) > 0 {
		var unknown []string
		for name := range params {
			if !contains(s.spec.Parameters, name) {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return cserror.Newf("service [%s] does not accept parameters %v", s.spec.ID, unknown).
				WithCode(cserror.CodeInvalidParameter).
				WithOperation("service.SetParameters").
				WithDetail("parameters", unknown)
		}
	}

	s.params = make(map[string]any, len(params))
	for k, v := range params {
		s.params[k] = v
	}
	return nil
}

// Execute runs the service function
func (s *BasicService) Execute(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, cserror.Wrap(err, "service execution cancelled").WithCode(cserror.CodeCancelled)
	}
	if s.spec.RequireKey && len(s.key) == 0 {
		return nil, cserror.Newf("service [%s] requires a key", s.spec.ID).
			WithCode(cserror.CodeMissingKey).
			WithOperation("service.Execute")
	}
	if s.spec.RequireParameters && len(s.params) == 0 {
		return nil, cserror.Newf("service [%s] requires parameters", s.spec.ID).
			WithCode(cserror.CodeMissingParameters).
			WithOperation("service.Execute")
	}
	if s.spec.Run == nil {
		return nil, nil
	}
	return s.spec.Run(ctx, Call{ServiceID: s.spec.ID, Key: s.key, Parameters: s.params})
}

// FormSpec configures a BasicForm
type FormSpec struct {
	ID     string
	Title  string
	Fields []string
}

// BasicForm is a static Form
type BasicForm struct {
	spec      FormSpec
	connected bool
}

var _ Form = (*BasicForm)(nil)

// NewForm creates a BasicForm
func NewForm(spec FormSpec, connected bool) *BasicForm {
	return &BasicForm{spec: spec, connected: connected}
}

func (f *BasicForm) ID() string       { return f.spec.ID }
func (f *BasicForm) Fields() []string { return f.spec.Fields }

// Title returns the title, falling back to the id
func (f *BasicForm) Title() string {
	if f.spec.Title == "" {
		return f.spec.ID
	}
	return f.spec.Title
}

// Connected reports whether the form was created bound to its data source
func (f *BasicForm) Connected() bool {
	return f.connected
}

// SummaryDisplayer "displays" a form by describing it. It never cancels.
type SummaryDisplayer struct{}

// Display returns the form id, title, fields and allowed services
func (SummaryDisplayer) Display(ctx context.Context, form Form, allowed []string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form == nil {
		return nil, cserror.New("no form to display").WithCode(cserror.CodeInvalidInput)
	}
	if allowed == nil {
		allowed = []string{}
	}
	return map[string]any{
		"form":    form.ID(),
		"title":   form.Title(),
		"fields":  form.Fields(),
		"allowed": allowed,
	}, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
