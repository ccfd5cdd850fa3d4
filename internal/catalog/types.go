// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     catalog
// Description: YAML service and form definitions
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/msto63/cmdscript/foundation/script/repository"
)

// Service kinds
const (
	KindEcho  = "echo"
	KindValue = "value"
)

// File is the content of one catalog YAML file
type File struct {
	Services []ServiceYAML `yaml:"services"`
	Forms    []FormYAML    `yaml:"forms"`
}

// ServiceYAML represents a service definition loaded from YAML
type ServiceYAML struct {
	ID                string   `yaml:"id"`
	Description       string   `yaml:"description,omitempty"`
	KeyFields         []string `yaml:"key_fields,omitempty"`
	Parameters        []string `yaml:"parameters,omitempty"`
	RequireKey        bool     `yaml:"require_key,omitempty"`
	RequireParameters bool     `yaml:"require_parameters,omitempty"`

	// Kind selects the behavior: echo returns the call, value returns Value
	Kind  string      `yaml:"kind,omitempty"`
	Value interface{} `yaml:"value,omitempty"`

	// Internal tracking (not from YAML)
	SourceFile string    `yaml:"-"`
	LoadedAt   time.Time `yaml:"-"`
}

// FormYAML represents a form definition loaded from YAML
type FormYAML struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title,omitempty"`
	Fields []string `yaml:"fields,omitempty"`

	// Internal tracking (not from YAML)
	SourceFile string    `yaml:"-"`
	LoadedAt   time.Time `yaml:"-"`
}

// Defaults applies default values to the service definition
func (s *ServiceYAML) Defaults() {
	s.ID = strings.TrimSpace(s.ID)
	s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
	if s.Kind == "" {
		s.Kind = KindEcho
	}
}

// Validate checks if the service definition is valid
func (s *ServiceYAML) Validate() error {
	if s.ID == "" {
		return ErrMissingID
	}
	switch s.Kind {
	case KindEcho, KindValue:
		return nil
	}
	return ErrUnknownKind
}

// Spec builds the repository spec for the definition
func (s *ServiceYAML) Spec() repository.ServiceSpec {
	def := *s
	return repository.ServiceSpec{
		ID:                def.ID,
		KeyFields:         def.KeyFields,
		Parameters:        def.Parameters,
		RequireKey:        def.RequireKey,
		RequireParameters: def.RequireParameters,
		Run: func(ctx context.Context, call repository.Call) (interface{}, error) {
			if def.Kind == KindValue {
				return def.Value, nil
			}
			return map[string]interface{}{
				"service":    call.ServiceID,
				"key":        call.Key,
				"parameters": call.Parameters,
			}, nil
		},
	}
}

// Defaults applies default values to the form definition
func (f *FormYAML) Defaults() {
	f.ID = strings.TrimSpace(f.ID)
	if f.Title == "" {
		f.Title = f.ID
	}
}

// Validate checks if the form definition is valid
func (f *FormYAML) Validate() error {
	if f.ID == "" {
		return ErrMissingID
	}
	return nil
}

// Spec builds the repository spec for the definition
func (f *FormYAML) Spec() repository.FormSpec {
	return repository.FormSpec{ID: f.ID, Title: f.Title, Fields: f.Fields}
}
