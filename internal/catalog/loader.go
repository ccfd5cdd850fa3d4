// ============================================================================
// cmdscript - Command Script Language
// ============================================================================
//
// Package:     catalog
// Description: YAML catalog loader with hot-reload support. The catalog
//              implements repository.Repository.
// Author:      Mike Stoffels with Claude
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tevino/abool/v2"
	"gopkg.in/yaml.v3"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script/repository"
	"github.com/msto63/cmdscript/foundation/utils/mapx"
)

// Options configures a Catalog
type Options struct {
	// Dir holds the catalog YAML files
	Dir string

	// Logger (optional, defaults to default logger)
	Logger *cslog.Logger

	// Debounce is the quiet period before a changed file is reloaded
	// (default: 500ms)
	Debounce time.Duration

	// CaseSensitive disables lower-casing of ids
	CaseSensitive bool
}

// Change describes a reload of one file
type Change struct {
	File     string
	Services []string
	Forms    []string
	Removed  bool
	Err      error
}

// fileEntry records the definitions a file provides, keyed by normalized id
type fileEntry struct {
	services []string
	forms    []string
	defs     map[string]*ServiceYAML
	formDefs map[string]*FormYAML
}

// Catalog manages loading and hot-reloading of service and form
// definitions from YAML files
type Catalog struct {
	mu       sync.RWMutex
	services map[string]*ServiceYAML
	forms    map[string]*FormYAML
	files    map[string]fileEntry
	options  Options
	watcher  *fsnotify.Watcher
	logger   *cslog.Logger
	onChange func(Change)
	stopCh   chan struct{}
	running  *abool.AtomicBool
}

var _ repository.Repository = (*Catalog)(nil)

// New creates a new catalog
func New(opts Options) *Catalog {
	if opts.Logger == nil {
		opts.Logger = cslog.GetDefault()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	return &Catalog{
		services: make(map[string]*ServiceYAML),
		forms:    make(map[string]*FormYAML),
		files:    make(map[string]fileEntry),
		options:  opts,
		logger:   opts.Logger.WithField("component", "catalog"),
		stopCh:   make(chan struct{}),
		running:  abool.NewBool(false),
	}
}

// SetOnChange sets the callback for reloads triggered by the watcher
func (c *Catalog) SetOnChange(fn func(Change)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Dir returns the catalog directory
func (c *Catalog) Dir() string {
	return c.options.Dir
}

// LoadAll loads all YAML files from the directory. Files that fail to
// load are skipped and logged.
func (c *Catalog) LoadAll() error {
	if err := os.MkdirAll(c.options.Dir, 0755); err != nil {
		return cserror.Wrap(err, "failed to create catalog directory").
			WithCode(cserror.CodeConfigError).
			WithOperation("catalog.LoadAll")
	}

	files, err := filepath.Glob(filepath.Join(c.options.Dir, "*.yaml"))
	if err != nil {
		return cserror.Wrap(err, "failed to list catalog files").
			WithCode(cserror.CodeConfigError).
			WithOperation("catalog.LoadAll")
	}
	ymlFiles, _ := filepath.Glob(filepath.Join(c.options.Dir, "*.yml"))
	files = append(files, ymlFiles...)
	sort.Strings(files)

	if len(files) == 0 {
		c.logger.Info("No catalog files found in directory", cslog.Fields{"dir": c.options.Dir})
		return nil
	}

	loaded := 0
	for _, file := range files {
		if _, err := c.LoadFile(file); err != nil {
			c.logger.Warn("Failed to load catalog file", cslog.Fields{"file": file, "error": err.Error()})
			continue
		}
		loaded++
	}

	c.logger.Info("Catalog loaded", cslog.Fields{
		"files":    loaded,
		"services": len(c.ServiceIDs()),
		"forms":    len(c.FormIDs()),
		"dir":      c.options.Dir,
	})
	return nil
}

// LoadFile loads or reloads a single file. Definitions the file no longer
// contains are removed.
func (c *Catalog) LoadFile(path string) (Change, error) {
	change := Change{File: path}
	file, err := c.readFile(path)
	if err != nil {
		change.Err = err
		return change, err
	}

	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dropFileLocked(path)
	entry := fileEntry{defs: make(map[string]*ServiceYAML), formDefs: make(map[string]*FormYAML)}
	for i := range file.Services {
		def := file.Services[i]
		def.SourceFile, def.LoadedAt = path, now
		id := c.normalize(def.ID)
		if prev, ok := c.services[id]; ok && prev.SourceFile != path {
			c.logger.Warn("Service redefined", cslog.Fields{"id": def.ID, "previous": prev.SourceFile, "file": path})
		}
		c.services[id] = &def
		entry.defs[id] = &def
		entry.services = append(entry.services, id)
	}
	for i := range file.Forms {
		def := file.Forms[i]
		def.SourceFile, def.LoadedAt = path, now
		id := c.normalize(def.ID)
		if prev, ok := c.forms[id]; ok && prev.SourceFile != path {
			c.logger.Warn("Form redefined", cslog.Fields{"id": def.ID, "previous": prev.SourceFile, "file": path})
		}
		c.forms[id] = &def
		entry.formDefs[id] = &def
		entry.forms = append(entry.forms, id)
	}
	c.files[path] = entry

	change.Services, change.Forms = entry.services, entry.forms
	c.logger.Debug("Catalog file loaded", cslog.Fields{
		"file":     filepath.Base(path),
		"services": len(entry.services),
		"forms":    len(entry.forms),
	})
	return change, nil
}

// readFile parses and validates one file
func (c *Catalog) readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cserror.Wrap(err, "failed to read catalog file").
			WithCode(cserror.CodeConfigError).
			WithOperation("catalog.LoadFile").
			WithDetail("file", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, cserror.Wrap(fmt.Errorf("%w: %v", ErrInvalidYAML, err), "failed to parse catalog file").
			WithCode(cserror.CodeInvalidConfig).
			WithOperation("catalog.LoadFile").
			WithDetail("file", path)
	}

	for i := range file.Services {
		file.Services[i].Defaults()
		if err := file.Services[i].Validate(); err != nil {
			return nil, invalidDefinition(err, path, "service", i)
		}
	}
	for i := range file.Forms {
		file.Forms[i].Defaults()
		if err := file.Forms[i].Validate(); err != nil {
			return nil, invalidDefinition(err, path, "form", i)
		}
	}
	return &file, nil
}

func invalidDefinition(err error, path, kind string, index int) error {
	return cserror.Wrap(err, fmt.Sprintf("invalid %s definition #%d", kind, index+1)).
		WithCode(cserror.CodeValidationFailed).
		WithOperation("catalog.LoadFile").
		WithDetail("file", path)
}

// RemoveFile drops the definitions of a file
func (c *Catalog) RemoveFile(path string) Change {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := c.files[path]
	c.dropFileLocked(path)
	return Change{File: path, Services: entry.services, Forms: entry.forms, Removed: true}
}

// dropFileLocked removes the definitions owned by path. An id that another
// loaded file also defines falls back to that file's definition.
func (c *Catalog) dropFileLocked(path string) {
	entry, ok := c.files[path]
	if !ok {
		return
	}
	delete(c.files, path)

	for _, id := range entry.services {
		def, ok := c.services[id]
		if !ok || def.SourceFile != path {
			continue
		}
		delete(c.services, id)
		if other := c.serviceFallbackLocked(id); other != nil {
			c.services[id] = other
			c.logger.Info("Service restored", cslog.Fields{"id": other.ID, "file": other.SourceFile})
		}
	}
	for _, id := range entry.forms {
		def, ok := c.forms[id]
		if !ok || def.SourceFile != path {
			continue
		}
		delete(c.forms, id)
		if other := c.formFallbackLocked(id); other != nil {
			c.forms[id] = other
			c.logger.Info("Form restored", cslog.Fields{"id": other.ID, "file": other.SourceFile})
		}
	}
}

// serviceFallbackLocked returns the most recently loaded definition of id
// among the loaded files. Files loaded at the same time rank by path, as
// in LoadAll.
func (c *Catalog) serviceFallbackLocked(id string) *ServiceYAML {
	var best *ServiceYAML
	for _, path := range mapx.SortedKeys(c.files) {
		def, ok := c.files[path].defs[id]
		if ok && (best == nil || !def.LoadedAt.Before(best.LoadedAt)) {
			best = def
		}
	}
	return best
}

func (c *Catalog) formFallbackLocked(id string) *FormYAML {
	var best *FormYAML
	for _, path := range mapx.SortedKeys(c.files) {
		def, ok := c.files[path].formDefs[id]
		if ok && (best == nil || !def.LoadedAt.Before(best.LoadedAt)) {
			best = def
		}
	}
	return best
}

func (c *Catalog) normalize(id string) string {
	id = strings.TrimSpace(id)
	if !c.options.CaseSensitive {
		id = strings.ToLower(id)
	}
	return id
}

// GetService returns a new service instance for id
func (c *Catalog) GetService(ctx context.Context, id string) (repository.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, cserror.Wrap(err, "service lookup cancelled").WithCode(cserror.CodeCancelled)
	}

	c.mu.RLock()
	def, ok := c.services[c.normalize(id)]
	c.mu.RUnlock()

	if !ok {
		return nil, cserror.Newf("Unknown service [%s]", id).
			WithCode(cserror.CodeNotFound).
			WithOperation("catalog.GetService").
			WithDetail("service", id)
	}
	return repository.NewService(def.Spec()), nil
}

// GetForm returns a new form instance for id
func (c *Catalog) GetForm(ctx context.Context, id string, connected bool) (repository.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, cserror.Wrap(err, "form lookup cancelled").WithCode(cserror.CodeCancelled)
	}

	c.mu.RLock()
	def, ok := c.forms[c.normalize(id)]
	c.mu.RUnlock()

	if !ok {
		return nil, cserror.Newf("Unknown form [%s]", id).
			WithCode(cserror.CodeNotFound).
			WithOperation("catalog.GetForm").
			WithDetail("form", id)
	}
	return repository.NewForm(def.Spec(), connected), nil
}

// HasService checks whether a service is defined
func (c *Catalog) HasService(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.services[c.normalize(id)]
	return ok
}

// HasForm checks whether a form is defined
func (c *Catalog) HasForm(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.forms[c.normalize(id)]
	return ok
}

// Service returns a copy of a service definition
func (c *Catalog) Service(id string) (ServiceYAML, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.services[c.normalize(id)]
	if !ok {
		return ServiceYAML{}, false
	}
	return *def, true
}

// Form returns a copy of a form definition
func (c *Catalog) Form(id string) (FormYAML, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.forms[c.normalize(id)]
	if !ok {
		return FormYAML{}, false
	}
	return *def, true
}

// ServiceIDs returns the sorted service ids
func (c *Catalog) ServiceIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return mapx.SortedKeys(c.services)
}

// FormIDs returns the sorted form ids
func (c *Catalog) FormIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return mapx.SortedKeys(c.forms)
}

// StartWatching starts the file watcher for hot-reload
func (c *Catalog) StartWatching(ctx context.Context) error {
	if !c.running.SetToIf(false, true) {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.running.UnSet()
		return cserror.Wrap(err, "failed to create watcher").
			WithCode(cserror.CodeInternal).
			WithOperation("catalog.StartWatching")
	}
	if err := watcher.Add(c.options.Dir); err != nil {
		watcher.Close()
		c.running.UnSet()
		return cserror.Wrap(err, "failed to watch directory").
			WithCode(cserror.CodeConfigError).
			WithOperation("catalog.StartWatching").
			WithDetail("dir", c.options.Dir)
	}

	c.watcher = watcher
	c.logger.Info("Started watching for catalog changes", cslog.Fields{"dir": c.options.Dir})

	go c.watchLoop(ctx)
	return nil
}

// IsWatching reports whether the watcher runs
func (c *Catalog) IsWatching() bool {
	return c.running.IsSet()
}

// watchLoop handles file system events. A file is reloaded once no event
// for it arrived during the debounce period.
func (c *Catalog) watchLoop(ctx context.Context) {
	pending := make(map[string]*time.Timer)
	fire := make(chan string)

	defer func() {
		for _, timer := range pending {
			timer.Stop()
		}
		c.watcher.Close()
		c.running.UnSet()
	}()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Stopping catalog watcher (context cancelled)")
			return

		case <-c.stopCh:
			c.logger.Info("Stopping catalog watcher (stop signal)")
			return

		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !isYAMLFile(event.Name) {
				continue
			}
			name := event.Name
			if timer, exists := pending[name]; exists {
				timer.Reset(c.options.Debounce)
				continue
			}
			pending[name] = time.AfterFunc(c.options.Debounce, func() {
				select {
				case fire <- name:
				case <-c.stopCh:
				case <-ctx.Done():
				}
			})

		case name := <-fire:
			delete(pending, name)
			c.reload(name)

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.ErrorWithErr("Watcher error", err)
		}
	}
}

// reload applies the current state of a file
func (c *Catalog) reload(path string) {
	fileName := filepath.Base(path)

	var change Change
	if _, err := os.Stat(path); os.IsNotExist(err) {
		change = c.RemoveFile(path)
		c.logger.Info("Catalog file removed", cslog.Fields{"file": fileName, "services": len(change.Services), "forms": len(change.Forms)})
	} else {
		var err error
		change, err = c.LoadFile(path)
		if err != nil {
			c.logger.ErrorWithErr("Failed to reload catalog file", err, cslog.Fields{"file": fileName})
		} else {
			c.logger.Info("Catalog file reloaded", cslog.Fields{"file": fileName, "services": len(change.Services), "forms": len(change.Forms)})
		}
	}

	c.mu.RLock()
	onChange := c.onChange
	c.mu.RUnlock()
	if onChange != nil {
		onChange(change)
	}
}

// Stop stops the file watcher
func (c *Catalog) Stop() {
	if c.running.IsSet() {
		select {
		case <-c.stopCh:
		default:
			close(c.stopCh)
		}
	}
}

// Helper functions

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

