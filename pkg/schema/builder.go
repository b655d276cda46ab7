// Package schema converts a registered function's parameter schema into the
// form model served to the browser.
package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-funcform/pkg/dependency"
	"github.com/goliatone/go-funcform/pkg/funcs"
	"github.com/goliatone/go-funcform/pkg/model"
)

// Option customises form model building.
type Option func(*builder)

// WithEndpointPrefix sets the URL prefix used for the form's submit endpoint.
// Default is "/forms".
func WithEndpointPrefix(prefix string) Option {
	return func(b *builder) {
		b.prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithDecorators appends decorators that run against the built model, after
// the function's own dependency decorator.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(b *builder) {
		b.decorators = append(b.decorators, decorators...)
	}
}

type builder struct {
	prefix     string
	decorators []model.Decorator
}

// Build derives a FormModel from a function descriptor: parameter properties
// become fields, declarative dependency rules are applied through the
// dependency decorator, then any caller-supplied decorators run in order.
func Build(desc funcs.Descriptor, options ...Option) (model.FormModel, error) {
	b := &builder{prefix: "/forms"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}

	form := model.FormModel{
		Function:    desc.Name,
		Endpoint:    b.prefix + "/" + desc.Name,
		Method:      "POST",
		Summary:     desc.Summary,
		Description: desc.Description,
		Fields:      convertParameters(desc.Parameters),
	}

	decorators := b.decorators
	if len(desc.Rules) > 0 {
		decorators = append([]model.Decorator{dependency.NewDecorator(desc.Rules)}, decorators...)
	}
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("schema: decorate %q: %w", desc.Name, err)
		}
	}
	return form, nil
}

func convertParameters(params *openapi3.Schema) []model.Field {
	if params == nil || len(params.Properties) == 0 {
		return nil
	}

	required := make(map[string]bool, len(params.Required))
	for _, name := range params.Required {
		required[name] = true
	}

	names := make([]string, 0, len(params.Properties))
	for name := range params.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		ref := params.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, convertField(name, ref.Value, required[name]))
	}
	return fields
}

func convertField(name string, src *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Type:        fieldType(src.Type),
		Format:      src.Format,
		Required:    required,
		Label:       fieldLabel(name, src.Title),
		Description: src.Description,
		Default:     src.Default,
		Validations: fieldValidations(src),
	}
	if len(src.Enum) > 0 {
		field.Enum = append([]any(nil), src.Enum...)
	}
	return field
}

func fieldType(types *openapi3.Types) model.FieldType {
	if types == nil {
		return model.FieldTypeString
	}
	values := types.Slice()
	if len(values) == 0 {
		return model.FieldTypeString
	}
	switch values[0] {
	case "integer":
		return model.FieldTypeInteger
	case "number":
		return model.FieldTypeNumber
	case "boolean":
		return model.FieldTypeBoolean
	case "array":
		return model.FieldTypeArray
	case "object":
		return model.FieldTypeObject
	default:
		return model.FieldTypeString
	}
}

func fieldLabel(name, title string) string {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		return trimmed
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(words) == 0 {
		return name
	}
	first := words[0]
	if first != "" {
		words[0] = strings.ToUpper(first[:1]) + first[1:]
	}
	return strings.Join(words, " ")
}

func fieldValidations(src *openapi3.Schema) []model.ValidationRule {
	var rules []model.ValidationRule
	if src.Min != nil {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRuleMin,
			Params: map[string]string{"value": formatFloat(*src.Min)},
		})
	}
	if src.Max != nil {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRuleMax,
			Params: map[string]string{"value": formatFloat(*src.Max)},
		})
	}
	if src.MinLength != 0 {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(src.MinLength, 10)},
		})
	}
	if src.MaxLength != nil {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if src.Pattern != "" {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	return rules
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
