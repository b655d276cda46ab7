// Package funcs holds the registration side-table binding a function name to
// its handler, parameter schema, and field dependencies. Registration replaces
// runtime attribute injection: callers declare everything up front and the
// HTTP layer reads from the table.
package funcs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-funcform/pkg/dependency"
)

// Handler executes one registered function. Arguments arrive as a name→value
// map decoded from the submission body.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Descriptor declares everything the form pipeline needs to know about one
// function. Parameters is an object schema whose properties become form
// fields. Rules are declarative dependency specs shared with the browser;
// Dependencies may additionally carry closure-backed rules evaluated only
// server-side. Renderer optionally names the preferred result tag.
type Descriptor struct {
	Name         string
	Summary      string
	Description  string
	Parameters   *openapi3.Schema
	Handler      Handler
	Rules        []dependency.RuleSpec
	Dependencies []dependency.FieldDependency
	Renderer     string
}

// Registry is the side-table of registered functions. Writes are expected to
// finish before request handling begins; reads are safe for concurrent use
// after that.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds a descriptor by name. Declarative rules are validated and
// compiled eagerly so malformed documents surface at startup, not on first
// request. Duplicate names return an error.
func (r *Registry) Register(desc Descriptor) error {
	name := strings.TrimSpace(desc.Name)
	if name == "" {
		return fmt.Errorf("funcs: descriptor name is required")
	}
	if desc.Handler == nil {
		return fmt.Errorf("funcs: descriptor %q has no handler", name)
	}
	desc.Name = name

	compiled, err := dependency.CompileAll(desc.Rules)
	if err != nil {
		return fmt.Errorf("funcs: descriptor %q: %w", name, err)
	}
	desc.Dependencies = append(compiled, desc.Dependencies...)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[name]; exists {
		return fmt.Errorf("funcs: function %q already registered", name)
	}
	r.descriptors[name] = desc
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(desc Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Get retrieves a descriptor by name.
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.descriptors[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("funcs: function %q not found", name)
	}
	return desc, nil
}

// Has reports whether a function is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.descriptors[name]
	return ok
}

// Names returns a sorted list of registered function names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dependencies returns the compiled dependency rules for a function, in
// registration order (declarative rules first).
func (r *Registry) Dependencies(name string) []dependency.FieldDependency {
	desc, err := r.Get(name)
	if err != nil {
		return nil
	}
	return append([]dependency.FieldDependency(nil), desc.Dependencies...)
}

// ApplyRuleStore attaches rule specs from a declarative store (see
// dependency.LoadFS) to already-registered descriptors. Specs for unknown
// functions are an error so typos in documents do not silently drop rules.
func (r *Registry) ApplyRuleStore(store *dependency.Store) error {
	if store == nil || store.Empty() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for name, desc := range r.descriptors {
		specs, ok := store.Rules(name)
		if !ok {
			continue
		}
		compiled, err := dependency.CompileAll(specs)
		if err != nil {
			return fmt.Errorf("funcs: function %q: %w", name, err)
		}
		desc.Rules = append(desc.Rules, specs...)
		desc.Dependencies = append(desc.Dependencies, compiled...)
		r.descriptors[name] = desc
	}

	for _, name := range store.Functions() {
		if _, ok := r.descriptors[name]; !ok {
			return fmt.Errorf("funcs: rule document targets unknown function %q", name)
		}
	}
	return nil
}
