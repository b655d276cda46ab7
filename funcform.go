// Package funcform turns registered Go functions into browser forms. Callers
// describe a function once (name, parameter schema, optional dependency
// rules), and the forms component serves an HTML page, a JSON form schema,
// and a submit endpoint whose return value is rendered through the result
// registry.
package funcform

import (
	"github.com/goliatone/go-funcform/components/forms"
	"github.com/goliatone/go-funcform/pkg/dependency"
	"github.com/goliatone/go-funcform/pkg/funcs"
	"github.com/goliatone/go-funcform/pkg/model"
	"github.com/goliatone/go-funcform/pkg/result"
	"github.com/goliatone/go-funcform/pkg/schema"
)

// Descriptor describes a registered function; alias exported via the root
// package for convenience.
type Descriptor = funcs.Descriptor

// Handler is the function signature the registry executes on submit.
type Handler = funcs.Handler

// FormModel is the renderer-agnostic form description served to browsers.
type FormModel = model.FormModel

// Action is a dependency directive applied to a target field.
type Action = dependency.Action

// RuleSpec is the serializable form of a field dependency.
type RuleSpec = dependency.RuleSpec

// FieldDependency is a single source-condition-action rule.
type FieldDependency = dependency.FieldDependency

// RenderedResult is the tagged payload the result registry produces.
type RenderedResult = result.RenderedResult

// NewFunctionRegistry constructs an empty function registry.
func NewFunctionRegistry() *funcs.Registry {
	return funcs.NewRegistry()
}

// NewResultRegistry constructs a result registry pre-loaded with the built-in
// renderers in their default probe order.
func NewResultRegistry() *result.Registry {
	return result.NewRegistry()
}

// NewDependencyBuilder starts a fluent builder for field dependencies.
func NewDependencyBuilder() *dependency.Builder {
	return dependency.NewBuilder()
}

// BuildForm converts a descriptor into a form model, applying any dependency
// rules the descriptor carries.
func BuildForm(desc Descriptor, options ...schema.Option) (FormModel, error) {
	return schema.Build(desc, options...)
}

// RegisterRoutes mounts the forms component on mux under basePath. It returns
// the pattern the handler was registered with.
func RegisterRoutes(mux forms.Mux, basePath string, options ...forms.OptionFn) (string, error) {
	return forms.RegisterRoutes(mux, basePath, options...)
}

// WithFunctions supplies the function registry to the forms component.
func WithFunctions(registry *funcs.Registry) forms.OptionFn {
	return forms.WithFunctions(registry)
}

// WithResults supplies a custom result registry to the forms component.
func WithResults(registry *result.Registry) forms.OptionFn {
	return forms.WithResults(registry)
}
