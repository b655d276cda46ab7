package dependency

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluateDirectivesLastWriteWins(t *testing.T) {
	t.Parallel()

	rules, err := NewBuilder().
		When("plan").Equals("free").Hide("seats").
		When("beta").IsTruthy().Show("seats").
		Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	directives := EvaluateDirectives(rules, map[string]any{
		"plan": "free",
		"beta": true,
	})

	want := map[string]Action{"seats": ActionShow}
	if diff := cmp.Diff(want, directives); diff != "" {
		t.Fatalf("directives mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateDirectivesMissingSourceValue(t *testing.T) {
	t.Parallel()

	rules, err := NewBuilder().
		When("notify").IsTruthy().Require("email").
		Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	directives := EvaluateDirectives(rules, map[string]any{})
	if got := directives["email"]; got != ActionOptional {
		t.Fatalf("directive for email = %s, want %s when source is absent", got, ActionOptional)
	}
}

func TestEvaluateDirectivesEmptyRules(t *testing.T) {
	t.Parallel()

	if got := EvaluateDirectives(nil, map[string]any{"a": 1}); got != nil {
		t.Fatalf("EvaluateDirectives(nil) = %v, want nil", got)
	}
}

func TestEvaluateDirectivesUntargetedFieldAbsent(t *testing.T) {
	t.Parallel()

	rules, err := NewBuilder().
		When("a").Equals(1).Show("x").
		Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	directives := EvaluateDirectives(rules, map[string]any{"a": 1})
	if _, ok := directives["a"]; ok {
		t.Fatalf("source field received a directive")
	}
	if _, ok := directives["unrelated"]; ok {
		t.Fatalf("untargeted field received a directive")
	}
}
