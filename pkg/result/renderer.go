// Package result selects a presentation strategy for arbitrary function
// return values. A registry probes renderers in a fixed order, with a
// name/type-keyed fast path, and produces a tagged RenderedResult the HTTP
// layer serialises for the browser.
package result

import "reflect"

// Result type tags understood by the browser runtime.
const (
	TypeTable    = "table"
	TypeChart    = "chart"
	TypeJSON     = "json"
	TypeImage    = "image"
	TypeMarkdown = "markdown"
	TypeHTML     = "html"
)

// RenderedResult is the display-ready output of a single render call: a type
// tag picking the client-side widget, a strategy-specific payload, and
// optional rendering hints.
type RenderedResult struct {
	Type    string         `json:"type"`
	Data    any            `json:"data"`
	Options map[string]any `json:"options,omitempty"`
}

// Renderer is the polymorphic capability a registry selects between.
// CanRender must be side-effect-free and cheap: the registry may probe
// several candidates before one matches, and exactly one Render call happens
// per selection. Errors from Render propagate to the caller unchanged.
type Renderer interface {
	Name() string
	CanRender(value any) bool
	Render(value any) (RenderedResult, error)
}

// TypeName returns the exact runtime type key used by RegisterForType, e.g.
// "map[string]interface {}" or "[]uint8". Nil values key as "nil".
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}
