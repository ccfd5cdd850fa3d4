// File: registry.go
// Title: In-Memory Repository
// Description: Registry maps normalized ids to service and form factories.
//              Every lookup returns a fresh entity so concurrent runs never
//              share service state.
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
	"strings"
	"sync"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/utils/mapx"
	"github.com/msto63/cmdscript/foundation/utils/stringx"
)

// ServiceFactory creates a new service instance
type ServiceFactory func() Service

// FormFactory creates a new form instance
type FormFactory func(connected bool) Form

// Options configures registry behavior
type Options struct {
	Logger *cslog.Logger
	// CaseSensitive disables lower-casing of ids
	CaseSensitive bool
}

// Registry is an in-memory Repository
type Registry struct {
	services map[string]ServiceFactory
	forms    map[string]FormFactory
	logger   *cslog.Logger
	options  Options
	mutex    sync.RWMutex
}

var _ Repository = (*Registry)(nil)

// NewRegistry creates an empty registry
func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = cslog.GetDefault()
	}
	return &Registry{
		services: make(map[string]ServiceFactory),
		forms:    make(map[string]FormFactory),
		logger:   opts.Logger.WithField("component", "registry"),
		options:  opts,
	}
}

func (r *Registry) normalize(id string) string {
	id = strings.TrimSpace(id)
	if r.options.CaseSensitive {
		return id
	}
	return strings.ToLower(id)
}

// RegisterService registers a service factory under id
func (r *Registry) RegisterService(id string, factory ServiceFactory) error {
	if stringx.IsBlank(id) {
		return cserror.New("service id cannot be empty").WithCode(cserror.CodeRequiredField)
	}
	if factory == nil {
		return cserror.New("service factory cannot be nil").WithCode(cserror.CodeRequiredField)
	}

	key := r.normalize(id)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.services[key]; exists {
		return cserror.Newf("service %s already registered", key).
			WithCode(cserror.CodeValidationFailed).
			WithOperation("registry.RegisterService")
	}
	r.services[key] = factory

	r.logger.Debug("Service registered", cslog.Fields{"service": key})
	return nil
}

// RegisterForm registers a form factory under id
func (r *Registry) RegisterForm(id string, factory FormFactory) error {
	if stringx.IsBlank(id) {
		return cserror.New("form id cannot be empty").WithCode(cserror.CodeRequiredField)
	}
	if factory == nil {
		return cserror.New("form factory cannot be nil").WithCode(cserror.CodeRequiredField)
	}

	key := r.normalize(id)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.forms[key]; exists {
		return cserror.Newf("form %s already registered", key).
			WithCode(cserror.CodeValidationFailed).
			WithOperation("registry.RegisterForm")
	}
	r.forms[key] = factory

	r.logger.Debug("Form registered", cslog.Fields{"form": key})
	return nil
}

// GetService returns a new instance of the service registered under id
func (r *Registry) GetService(ctx context.Context, id string) (Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, cserror.Wrap(err, "service lookup cancelled").WithCode(cserror.CodeCancelled)
	}

	key := r.normalize(id)

	r.mutex.RLock()
	factory, ok := r.services[key]
	r.mutex.RUnlock()

	if !ok {
		return nil, cserror.Newf("Unknown service [%s]", id).
			WithCode(cserror.CodeNotFound).
			WithOperation("registry.GetService").
			WithDetail("service", id)
	}
	return factory(), nil
}

// GetForm returns a new instance of the form registered under id
func (r *Registry) GetForm(ctx context.Context, id string, connected bool) (Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, cserror.Wrap(err, "form lookup cancelled").WithCode(cserror.CodeCancelled)
	}

	key := r.normalize(id)

	r.mutex.RLock()
	factory, ok := r.forms[key]
	r.mutex.RUnlock()

	if !ok {
		return nil, cserror.Newf("Unknown form [%s]", id).
			WithCode(cserror.CodeNotFound).
			WithOperation("registry.GetForm").
			WithDetail("form", id)
	}
	return factory(connected), nil
}

// HasService reports whether id is registered as a service
func (r *Registry) HasService(id string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.services[r.normalize(id)]
	return ok
}

// HasForm reports whether id is registered as a form
func (r *Registry) HasForm(id string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.forms[r.normalize(id)]
	return ok
}

// ServiceIDs returns the registered service ids, sorted
func (r *Registry) ServiceIDs() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return mapx.SortedKeys(r.services)
}

// FormIDs returns the registered form ids, sorted
func (r *Registry) FormIDs() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return mapx.SortedKeys(r.forms)
}

