package dependency

import "testing"

func TestCheckReturnsActionWhenConditionHolds(t *testing.T) {
	t.Parallel()

	rule := FieldDependency{
		SourceField: "plan",
		TargetField: "seats",
		Condition:   Equals("enterprise"),
		Action:      ActionShow,
	}

	if got := rule.Check("enterprise"); got != ActionShow {
		t.Fatalf("Check(match) = %s, want %s", got, ActionShow)
	}
}

func TestCheckFallsBackToCanonicalOpposite(t *testing.T) {
	t.Parallel()

	cases := []struct {
		action Action
		want   Action
	}{
		{ActionShow, ActionHide},
		{ActionHide, ActionShow},
		{ActionEnable, ActionDisable},
		{ActionDisable, ActionEnable},
		{ActionRequire, ActionOptional},
		{ActionOptional, ActionRequire},
	}
	for _, tc := range cases {
		rule := FieldDependency{
			SourceField: "plan",
			TargetField: "seats",
			Condition:   Equals("enterprise"),
			Action:      tc.action,
		}
		if got := rule.Check("free"); got != tc.want {
			t.Fatalf("Check(miss) with action %s = %s, want %s", tc.action, got, tc.want)
		}
	}
}

func TestCheckHonorsExplicitElseAction(t *testing.T) {
	t.Parallel()

	rule := FieldDependency{
		SourceField: "count",
		TargetField: "warning",
		Condition:   GreaterThan(10),
		Action:      ActionShow,
		ElseAction:  ActionDisable,
	}

	if got := rule.Check(3); got != ActionDisable {
		t.Fatalf("Check(miss) = %s, want explicit else %s", got, ActionDisable)
	}
	if got := rule.Check(42); got != ActionShow {
		t.Fatalf("Check(match) = %s, want %s", got, ActionShow)
	}
}

func TestConditionCoercion(t *testing.T) {
	t.Parallel()

	if !Equals(1).Evaluate("1") {
		t.Fatalf("Equals(1) rejected string \"1\"")
	}
	if !Equals(true).Evaluate("true") {
		t.Fatalf("Equals(true) rejected string \"true\"")
	}
	if Equals("a").Evaluate(nil) {
		t.Fatalf("Equals(\"a\") accepted nil")
	}
	if !GreaterThan(5).Evaluate("7.5") {
		t.Fatalf("GreaterThan(5) rejected \"7.5\"")
	}
	if GreaterThan(5).Evaluate("banana") {
		t.Fatalf("GreaterThan(5) accepted non-numeric string")
	}
	if !Truthy().Evaluate([]any{1}) {
		t.Fatalf("Truthy rejected non-empty slice")
	}
	if Truthy().Evaluate("   ") {
		t.Fatalf("Truthy accepted blank string")
	}
	if !Falsy().Evaluate(0) {
		t.Fatalf("Falsy rejected zero")
	}
	if !OneOf("a", 2, true).Evaluate(2.0) {
		t.Fatalf("OneOf rejected numeric match across types")
	}
	if OneOf("a", "b").Evaluate("c") {
		t.Fatalf("OneOf accepted value outside the list")
	}
}
