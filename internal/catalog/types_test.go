// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     catalog
// Description: Tests for catalog definition types
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/cmdscript/foundation/script/repository"
)

// TestServiceYAMLDefaults tests the default value application
func TestServiceYAMLDefaults(t *testing.T) {
	tests := []struct {
		name     string
		service  ServiceYAML
		wantID   string
		wantKind string
	}{
		{"empty kind becomes echo", ServiceYAML{ID: " foo "}, "foo", KindEcho},
		{"kind is lower-cased", ServiceYAML{ID: "foo", Kind: " Value "}, "foo", KindValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.service.Defaults()
			if tt.service.ID != tt.wantID {
				t.Errorf("Expected ID=%q, got %q", tt.wantID, tt.service.ID)
			}
			if tt.service.Kind != tt.wantKind {
				t.Errorf("Expected Kind=%q, got %q", tt.wantKind, tt.service.Kind)
			}
		})
	}
}

// TestServiceYAMLValidate tests validation of service definitions
func TestServiceYAMLValidate(t *testing.T) {
	tests := []struct {
		name    string
		service ServiceYAML
		wantErr error
	}{
		{"valid echo", ServiceYAML{ID: "foo", Kind: KindEcho}, nil},
		{"valid value", ServiceYAML{ID: "foo", Kind: KindValue}, nil},
		{"missing id", ServiceYAML{Kind: KindEcho}, ErrMissingID},
		{"unknown kind", ServiceYAML{ID: "foo", Kind: "shell"}, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.service.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestServiceYAMLSpec tests the behavior of built services
func TestServiceYAMLSpec(t *testing.T) {
	ctx := context.Background()

	echo := ServiceYAML{ID: "foo", Kind: KindEcho}
	svc := repository.NewService(echo.Spec())
	if err := svc.SetKey([]any{int64(10)}); err != nil {
		t.Fatalf("SetKey() error = %v", err)
	}
	if err := svc.SetParameters(map[string]any{"a": "b"}, true); err != nil {
		t.Fatalf("SetParameters() error = %v", err)
	}
	got, err := svc.Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := map[string]interface{}{
		"service":    "foo",
		"key":        []any{int64(10)},
		"parameters": map[string]any{"a": "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("echo result mismatch (-want +got):\n%s", diff)
	}

	value := ServiceYAML{ID: "answer", Kind: KindValue, Value: 42}
	got, err = repository.NewService(value.Spec()).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Expected value 42, got %v", got)
	}
}

// TestFormYAMLDefaults tests the form title default
func TestFormYAMLDefaults(t *testing.T) {
	form := FormYAML{ID: " customer "}
	form.Defaults()
	if form.ID != "customer" || form.Title != "customer" {
		t.Errorf("Expected id and title customer, got %q / %q", form.ID, form.Title)
	}
	if err := (&FormYAML{}).Validate(); !errors.Is(err, ErrMissingID) {
		t.Errorf("Expected ErrMissingID, got %v", err)
	}
}
