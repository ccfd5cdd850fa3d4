// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     console
// Description: Input history with optional persistence
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultHistoryFile returns the history file in the user's home directory
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cmdscript", "history.yaml")
	}
	return filepath.Join(home, ".cmdscript", "history.yaml")
}

// historyFile is the persisted form of the input history
type historyFile struct {
	Entries []string `yaml:"entries"`
}

// History holds submitted lines and the navigation cursor
type History struct {
	entries []string
	limit   int
	index   int    // -1 = no navigation active
	pending string // input saved when navigation starts
	path    string
}

// NewHistory creates a history with at most limit entries. A non-empty path
// is loaded now and written on every Add.
func NewHistory(limit int, path string) *History {
	if limit <= 0 {
		limit = 100
	}
	h := &History{limit: limit, index: -1, path: path}
	if path != "" {
		h.load()
	}
	return h
}

// Entries returns the stored lines, oldest first
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Add appends a line unless it repeats the last one
func (h *History) Add(line string) {
	h.index = -1
	h.pending = ""
	if line == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == line) {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	_ = h.save()
}

// Prev moves back in time. current is the input shown when navigation
// starts. ok is false when there is nothing to show.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.index == -1 {
		h.pending = current
		h.index = len(h.entries) - 1
	} else if h.index > 0 {
		h.index--
	}
	return h.entries[h.index], true
}

// Next moves forward in time and ends with the pending input
func (h *History) Next() (string, bool) {
	if h.index == -1 {
		return "", false
	}
	if h.index < len(h.entries)-1 {
		h.index++
		return h.entries[h.index], true
	}
	h.index = -1
	return h.pending, true
}

func (h *History) load() {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return
	}
	var file historyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return
	}
	h.entries = file.Entries
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

func (h *History) save() error {
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(historyFile{Entries: h.entries})
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0644)
}
