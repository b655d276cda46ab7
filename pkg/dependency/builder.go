package dependency

import "errors"

// ErrConfiguration is reported when an action method runs before both When
// and a condition method have been called.
var ErrConfiguration = errors.New("dependency: must call When() and a condition method before an action")

// Builder accumulates FieldDependency rules through a fluent chain:
//
//	rules, err := dependency.NewBuilder().
//		When("plan").Equals("enterprise").
//		Show("seats").Require("billing_email").
//		Build()
//
// Action methods finalize one rule each and leave the pending source and
// condition intact, so several targets can share one condition. Calling When
// again clears the pending condition and starts a new group.
//
// Builders are not safe for concurrent use.
type Builder struct {
	pendingSource    string
	pendingCondition Condition
	rules            []FieldDependency
	err              error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// When begins a new rule group keyed on the supplied source field. Any
// pending condition is cleared; a fresh condition method must run before the
// next action method.
func (b *Builder) When(sourceField string) *Builder {
	b.pendingSource = sourceField
	b.pendingCondition = nil
	return b
}

// Equals sets the pending condition to Equals(want).
func (b *Builder) Equals(want any) *Builder {
	return b.condition(Equals(want))
}

// NotEquals sets the pending condition to NotEquals(want).
func (b *Builder) NotEquals(want any) *Builder {
	return b.condition(NotEquals(want))
}

// GreaterThan sets the pending condition to GreaterThan(want).
func (b *Builder) GreaterThan(want float64) *Builder {
	return b.condition(GreaterThan(want))
}

// LessThan sets the pending condition to LessThan(want).
func (b *Builder) LessThan(want float64) *Builder {
	return b.condition(LessThan(want))
}

// IsTruthy sets the pending condition to Truthy().
func (b *Builder) IsTruthy() *Builder {
	return b.condition(Truthy())
}

// IsFalsy sets the pending condition to Falsy().
func (b *Builder) IsFalsy() *Builder {
	return b.condition(Falsy())
}

// InList sets the pending condition to OneOf(candidates...).
func (b *Builder) InList(candidates ...any) *Builder {
	return b.condition(OneOf(candidates...))
}

// Custom sets the supplied predicate as the pending condition verbatim.
func (b *Builder) Custom(cond Condition) *Builder {
	return b.condition(cond)
}

func (b *Builder) condition(cond Condition) *Builder {
	// A condition without a prior When is only rejected once an action method
	// tries to finalize a rule; the builder may be primed and discarded.
	b.pendingCondition = cond
	return b
}

// Show finalizes a rule applying ActionShow to targetField.
func (b *Builder) Show(targetField string) *Builder {
	return b.action(targetField, ActionShow)
}

// Hide finalizes a rule applying ActionHide to targetField.
func (b *Builder) Hide(targetField string) *Builder {
	return b.action(targetField, ActionHide)
}

// Enable finalizes a rule applying ActionEnable to targetField.
func (b *Builder) Enable(targetField string) *Builder {
	return b.action(targetField, ActionEnable)
}

// Disable finalizes a rule applying ActionDisable to targetField.
func (b *Builder) Disable(targetField string) *Builder {
	return b.action(targetField, ActionDisable)
}

// Require finalizes a rule applying ActionRequire to targetField.
func (b *Builder) Require(targetField string) *Builder {
	return b.action(targetField, ActionRequire)
}

// MakeOptional finalizes a rule applying ActionOptional to targetField.
func (b *Builder) MakeOptional(targetField string) *Builder {
	return b.action(targetField, ActionOptional)
}

func (b *Builder) action(targetField string, action Action) *Builder {
	if b.pendingSource == "" || b.pendingCondition == nil {
		if b.err == nil {
			b.err = ErrConfiguration
		}
		return b
	}
	b.rules = append(b.rules, FieldDependency{
		SourceField: b.pendingSource,
		TargetField: targetField,
		Condition:   b.pendingCondition,
		Action:      action,
	})
	return b
}

// Err returns the first configuration error recorded by the chain, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build returns a copy of the accumulated rules. It is idempotent, does not
// reset builder state, and successive calls return independent slices.
func (b *Builder) Build() ([]FieldDependency, error) {
	if b.err != nil {
		return nil, b.err
	}
	return append([]FieldDependency(nil), b.rules...), nil
}
