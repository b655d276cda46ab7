// Package dependency implements predicate→action rules that bind one form
// field's value to the UI state of another. Rules are evaluated fresh on every
// schema request; nothing in this package caches or persists state.
package dependency

// FieldDependency binds one source field to one target field. When Condition
// holds for the source value, Action is applied to the target; otherwise
// ElseAction applies, or the canonical opposite of Action when ElseAction is
// empty. Values are immutable once constructed.
type FieldDependency struct {
	SourceField string
	TargetField string
	Condition   Condition
	Action      Action
	ElseAction  Action
}

// Check evaluates the rule against the current value of the source field and
// returns the directive for the target field. Pure function of its inputs;
// panics raised by user-supplied conditions propagate to the caller.
func (d FieldDependency) Check(value any) Action {
	if d.Condition != nil && d.Condition.Evaluate(value) {
		return d.Action
	}
	if d.ElseAction != "" {
		return d.ElseAction
	}
	return d.Action.Opposite()
}
