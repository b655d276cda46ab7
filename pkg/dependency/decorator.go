package dependency

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-funcform/pkg/model"
)

// Metadata keys the decorator writes. The browser runtime reads the rules
// payload from form metadata and the initial directive from field metadata.
const (
	RulesMetadataKey     = "dependency.rules"
	DirectiveMetadataKey = "dependency.initial"
)

// Decorator applies dependency rules to a form model: each targeted field is
// stamped with the directive resolved from the fields' declared defaults, and
// the serializable rule specs are attached to form metadata so the client can
// re-evaluate them as values change.
type Decorator struct {
	Specs []RuleSpec
}

// NewDecorator builds a Decorator from declarative rule specs.
func NewDecorator(specs []RuleSpec) *Decorator {
	return &Decorator{Specs: append([]RuleSpec(nil), specs...)}
}

// Decorate implements model.Decorator.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || form == nil || len(d.Specs) == 0 {
		return nil
	}

	rules, err := CompileAll(d.Specs)
	if err != nil {
		return err
	}

	state := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		state[field.Name] = field.Default
	}

	directives := EvaluateDirectives(rules, state)
	for idx, field := range form.Fields {
		directive, ok := directives[field.Name]
		if !ok {
			continue
		}
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		field.Metadata[DirectiveMetadataKey] = string(directive)
		form.Fields[idx] = field
	}

	payload, err := json.Marshal(d.Specs)
	if err != nil {
		return fmt.Errorf("dependency: marshal rules payload: %w", err)
	}
	if form.Metadata == nil {
		form.Metadata = make(map[string]string)
	}
	form.Metadata[RulesMetadataKey] = string(payload)
	return nil
}
