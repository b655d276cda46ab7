package result

import (
	"fmt"
	"sync"
)

// Registry owns an ordered sequence of probe-based renderers and a secondary
// exact-key lookup table consulted before the ordered sequence. The lookup
// table holds both renderer names (for explicit rendererType requests) and
// runtime type keys installed via RegisterForType.
//
// Registration is expected to finish before concurrent request handling
// begins; reads are safe from multiple goroutines after that point.
type Registry struct {
	mu      sync.RWMutex
	ordered []Renderer
	named   map[string]Renderer
}

// NewRegistry constructs a registry with the built-in renderers registered in
// their contractual order: grid, image, table, chart, json, then markdown and
// html appended last. The order is load-bearing: table deliberately pre-empts
// chart for numeric tabular data, and the json fallback pre-empts the
// markdown/html string heuristics unless a renderer is requested by name.
func NewRegistry() *Registry {
	reg := &Registry{named: make(map[string]Renderer)}
	for _, renderer := range []Renderer{
		GridRenderer{},
		ImageRenderer{},
		TableRenderer{},
		ChartRenderer{},
		JSONRenderer{},
		MarkdownRenderer{},
		HTMLRenderer{},
	} {
		reg.ordered = append(reg.ordered, renderer)
		reg.named[renderer.Name()] = renderer
	}
	return reg
}

// NewEmptyRegistry constructs a registry with no renderers. Callers assembling
// a custom probe order start here.
func NewEmptyRegistry() *Registry {
	return &Registry{named: make(map[string]Renderer)}
}

// Register inserts a renderer into the ordered sequence at index priority
// (0 = front = probed first; values past the end append). The renderer's name
// becomes addressable for explicit requests unless already taken. Type-keyed
// overrides are unaffected.
func (r *Registry) Register(renderer Renderer, priority int) error {
	if renderer == nil {
		return fmt.Errorf("result: renderer is required")
	}
	if renderer.Name() == "" {
		return fmt.Errorf("result: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if priority < 0 {
		priority = 0
	}
	if priority > len(r.ordered) {
		priority = len(r.ordered)
	}
	r.ordered = append(r.ordered, nil)
	copy(r.ordered[priority+1:], r.ordered[priority:])
	r.ordered[priority] = renderer

	if _, exists := r.named[renderer.Name()]; !exists {
		r.named[renderer.Name()] = renderer
	}
	return nil
}

// Append adds a renderer at the end of the ordered sequence (lowest
// priority).
func (r *Registry) Append(renderer Renderer) error {
	r.mu.RLock()
	end := len(r.ordered)
	r.mu.RUnlock()
	return r.Register(renderer, end)
}

// RegisterForType installs or replaces the override for an exact runtime type
// key (see TypeName). Overrides win over the ordered sequence whenever their
// CanRender still accepts the value. Last registration for a key wins.
func (r *Registry) RegisterForType(typeKey string, renderer Renderer) error {
	if typeKey == "" {
		return fmt.Errorf("result: type key is required")
	}
	if renderer == nil {
		return fmt.Errorf("result: renderer is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.named[typeKey] = renderer
	return nil
}

// Names returns the ordered probe sequence by renderer name, front first.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ordered))
	for _, renderer := range r.ordered {
		names = append(names, renderer.Name())
	}
	return names
}

// Has reports whether a renderer is addressable under the supplied key.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.named[key]
	return ok
}

// Render selects exactly one renderer for value and returns its result.
// Selection order, first match wins:
//
//  1. rendererType, when non-empty, looked up in the keyed table and accepted
//     by CanRender;
//  2. the value's exact runtime type key, looked up the same way;
//  3. the ordered sequence, probed front to back;
//  4. a terminal fallback that renders the value's string form as json.
//
// Renderer errors propagate unchanged; the registry never retries.
func (r *Registry) Render(value any, rendererType string) (RenderedResult, error) {
	r.mu.RLock()
	var keyed Renderer
	if rendererType != "" {
		keyed = r.named[rendererType]
	}
	typed := r.named[TypeName(value)]
	ordered := append([]Renderer(nil), r.ordered...)
	r.mu.RUnlock()

	if keyed != nil && keyed.CanRender(value) {
		return keyed.Render(value)
	}
	if typed != nil && typed.CanRender(value) {
		return typed.Render(value)
	}
	for _, renderer := range ordered {
		if renderer.CanRender(value) {
			return renderer.Render(value)
		}
	}

	// Unreachable with the json fallback registered; kept so custom
	// registries still satisfy the total-coverage guarantee.
	return RenderedResult{Type: TypeJSON, Data: fmt.Sprint(value)}, nil
}
