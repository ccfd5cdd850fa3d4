// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     catalog
// Description: Tests for catalog loading and hot-reload
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
)

const customersYAML = `
services:
  - id: customer:show
    key_fields: [id]
    require_key: true
  - id: Answer
    kind: value
    value: 42
forms:
  - id: customer
    title: Customers
    fields: [id, name]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func newTestCatalog(t *testing.T, dir string) *Catalog {
	t.Helper()
	return New(Options{Dir: dir, Logger: cslog.Discard(), Debounce: 50 * time.Millisecond})
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

// TestLoadAll tests loading a directory
func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers.yaml", customersYAML)
	writeFile(t, dir, "orders.yml", "services:\n  - id: order:list\n")
	writeFile(t, dir, "notes.txt", "services: [")

	c := newTestCatalog(t, dir)
	if err := c.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	if diff := cmp.Diff([]string{"answer", "customer:show", "order:list"}, c.ServiceIDs()); diff != "" {
		t.Errorf("ServiceIDs() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"customer"}, c.FormIDs()); diff != "" {
		t.Errorf("FormIDs() mismatch (-want +got):\n%s", diff)
	}

	def, ok := c.Service("CUSTOMER:SHOW")
	if !ok {
		t.Fatal("Expected customer:show to be found case-insensitively")
	}
	if def.SourceFile != filepath.Join(dir, "customers.yaml") {
		t.Errorf("Unexpected source file %q", def.SourceFile)
	}
	if !def.RequireKey || def.Kind != KindEcho {
		t.Errorf("Unexpected definition %+v", def)
	}
}

// TestLoadAllCreatesDirectory tests that a missing directory is created
func TestLoadAllCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")
	c := newTestCatalog(t, dir)
	if err := c.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected directory to exist: %v", err)
	}
	if len(c.ServiceIDs()) != 0 {
		t.Errorf("Expected empty catalog, got %v", c.ServiceIDs())
	}
}

// TestLoadFileErrors tests that invalid files are rejected
func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode cserror.Code
	}{
		{"invalid yaml", "services: [", cserror.CodeInvalidConfig},
		{"missing id", "services:\n  - kind: echo\n", cserror.CodeValidationFailed},
		{"unknown kind", "services:\n  - id: x\n    kind: shell\n", cserror.CodeValidationFailed},
		{"form without id", "forms:\n  - title: x\n", cserror.CodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "bad.yaml", tt.content)
			c := newTestCatalog(t, dir)

			_, err := c.LoadFile(path)
			if err == nil {
				t.Fatal("Expected error")
			}
			if got := cserror.GetCode(err); got != tt.wantCode {
				t.Errorf("Expected code %s, got %s (%v)", tt.wantCode, got, err)
			}
			if len(c.ServiceIDs()) != 0 || len(c.FormIDs()) != 0 {
				t.Error("Expected nothing to be loaded")
			}
		})
	}
}

// TestLoadAllSkipsBadFiles tests that one bad file does not stop loading
func TestLoadAllSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "services: [")
	writeFile(t, dir, "b.yaml", customersYAML)

	c := newTestCatalog(t, dir)
	if err := c.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if !c.HasService("answer") || !c.HasForm("customer") {
		t.Error("Expected definitions from b.yaml")
	}
}

// TestDuplicateDefinitions tests that the later file wins
func TestDuplicateDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "services:\n  - id: dup\n    kind: value\n    value: first\n")
	second := writeFile(t, dir, "b.yaml", "services:\n  - id: dup\n    kind: value\n    value: second\n")

	c := newTestCatalog(t, dir)
	if err := c.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	def, _ := c.Service("dup")
	if def.Value != "second" || def.SourceFile != second {
		t.Errorf("Expected b.yaml to win, got %+v", def)
	}

	// Removing the winner falls back to the definition still in a.yaml
	c.RemoveFile(second)
	def, ok := c.Service("dup")
	if !ok || def.Value != "first" {
		t.Fatalf("Expected a.yaml to define dup after removing b.yaml, got %+v", def)
	}

	if _, err := c.LoadFile(second); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	c.RemoveFile(filepath.Join(dir, "a.yaml"))
	if def, ok := c.Service("dup"); !ok || def.Value != "second" {
		t.Errorf("Expected dup to survive removal of a.yaml, got %+v", def)
	}
	c.RemoveFile(second)
	if c.HasService("dup") {
		t.Error("Expected dup to be removed with its last file")
	}
}

func TestReloadFallsBackToOtherFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "forms:\n  - id: shared\n    title: From A\n")
	second := writeFile(t, dir, "b.yaml", "forms:\n  - id: shared\n    title: From B\n")

	c := newTestCatalog(t, dir)
	if err := c.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	writeFile(t, dir, "b.yaml", "forms:\n  - id: other\n")
	if _, err := c.LoadFile(second); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	form, ok := c.Form("shared")
	if !ok || form.Title != "From A" {
		t.Errorf("Expected shared to fall back to a.yaml, got %+v", form)
	}
	if !c.HasForm("other") {
		t.Error("Expected other to be loaded from b.yaml")
	}
}

// TestRepository tests the repository implementation
func TestRepository(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers.yaml", customersYAML)
	c := newTestCatalog(t, dir)
	if err := c.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	ctx := context.Background()

	svc, err := c.GetService(ctx, "Customer:Show")
	if err != nil {
		t.Fatalf("GetService() error = %v", err)
	}
	if !svc.RequireKey() {
		t.Error("Expected customer:show to require a key")
	}
	if diff := cmp.Diff([]string{"id"}, svc.KeyFields()); diff != "" {
		t.Errorf("KeyFields() mismatch (-want +got):\n%s", diff)
	}

	answer, err := c.GetService(ctx, "answer")
	if err != nil {
		t.Fatalf("GetService() error = %v", err)
	}
	got, err := answer.Execute(ctx)
	if err != nil || got != 42 {
		t.Errorf("Execute() = %v, %v; want 42", got, err)
	}

	form, err := c.GetForm(ctx, "customer", true)
	if err != nil {
		t.Fatalf("GetForm() error = %v", err)
	}
	if form.Title() != "Customers" || !form.Connected() {
		t.Errorf("Unexpected form %q connected=%v", form.Title(), form.Connected())
	}
	if plain, err := c.GetForm(ctx, "customer", false); err != nil || plain.Connected() {
		t.Errorf("Expected an unconnected form, got %v", err)
	}

	if _, err := c.GetService(ctx, "missing"); cserror.GetCode(err) != cserror.CodeNotFound {
		t.Errorf("Expected CodeNotFound, got %v", err)
	}
	if _, err := c.GetForm(ctx, "missing", false); cserror.GetCode(err) != cserror.CodeNotFound {
		t.Errorf("Expected CodeNotFound, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := c.GetService(cancelled, "answer"); cserror.GetCode(err) != cserror.CodeCancelled {
		t.Errorf("Expected CodeCancelled, got %v", err)
	}
}

// TestHotReload tests that the watcher applies file changes
func TestHotReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "services.yaml", "services:\n  - id: first\n")

	c := newTestCatalog(t, dir)
	if err := c.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	var mu sync.Mutex
	var changes []Change
	c.SetOnChange(func(ch Change) {
		mu.Lock()
		changes = append(changes, ch)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := c.StartWatching(ctx); err != nil {
		t.Fatalf("StartWatching() error = %v", err)
	}
	defer c.Stop()
	if !c.IsWatching() {
		t.Fatal("Expected watcher to run")
	}

	writeFile(t, dir, "services.yaml", "services:\n  - id: second\n")
	waitFor(t, "second to load", func() bool { return c.HasService("second") })
	if c.HasService("first") {
		t.Error("Expected first to be dropped after rewrite")
	}

	// A broken rewrite keeps the previous definitions
	writeFile(t, dir, "services.yaml", "services: [")
	waitFor(t, "failed reload", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) > 0 && changes[len(changes)-1].Err != nil
	})
	if !c.HasService("second") {
		t.Error("Expected second to survive a broken rewrite")
	}

	writeFile(t, dir, "extra.yml", "forms:\n  - id: extra\n")
	waitFor(t, "extra form", func() bool { return c.HasForm("extra") })

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	waitFor(t, "removal", func() bool { return !c.HasService("second") })
}

// TestStop tests that Stop ends the watcher
func TestStop(t *testing.T) {
	c := newTestCatalog(t, t.TempDir())
	if err := c.LoadAll(); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if err := c.StartWatching(context.Background()); err != nil {
		t.Fatalf("StartWatching() error = %v", err)
	}
	c.Stop()
	waitFor(t, "watcher to stop", func() bool { return !c.IsWatching() })
	c.Stop()
}
