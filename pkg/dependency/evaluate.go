package dependency

// EvaluateDirectives resolves the directive for every targeted field given a
// snapshot of form state (field name → current value). Rules run in
// registration order and the last rule targeting a field wins; conflicting
// rules are not detected. Fields with no matching rule are absent from the
// result and keep their declared state.
func EvaluateDirectives(deps []FieldDependency, formState map[string]any) map[string]Action {
	if len(deps) == 0 {
		return nil
	}
	directives := make(map[string]Action, len(deps))
	for _, dep := range deps {
		directives[dep.TargetField] = dep.Check(formState[dep.SourceField])
	}
	return directives
}
