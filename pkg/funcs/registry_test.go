package funcs

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-funcform/pkg/dependency"
)

func noopHandler(context.Context, map[string]any) (any, error) {
	return nil, nil
}

func TestRegisterRequiresNameAndHandler(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register(Descriptor{Handler: noopHandler}); err == nil {
		t.Fatalf("Register accepted a descriptor without a name")
	}
	if err := reg.Register(Descriptor{Name: "echo"}); err == nil {
		t.Fatalf("Register accepted a descriptor without a handler")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register(Descriptor{Name: "echo", Handler: noopHandler}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	err := reg.Register(Descriptor{Name: "echo", Handler: noopHandler})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("duplicate Register error = %v", err)
	}
}

func TestRegisterCompilesDeclarativeRules(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	err := reg.Register(Descriptor{
		Name:    "provision",
		Handler: noopHandler,
		Rules: []dependency.RuleSpec{
			{
				Field:  "plan",
				When:   dependency.WhenSpec{Op: dependency.OpEquals, Value: "enterprise"},
				Target: "seats",
				Then:   dependency.ActionShow,
			},
		},
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	deps := reg.Dependencies("provision")
	if len(deps) != 1 {
		t.Fatalf("Dependencies returned %d rules, want 1", len(deps))
	}
	if got := deps[0].Check("enterprise"); got != dependency.ActionShow {
		t.Fatalf("compiled rule Check = %s, want %s", got, dependency.ActionShow)
	}
}

func TestRegisterSurfacesBadRulesAtStartup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	err := reg.Register(Descriptor{
		Name:    "broken",
		Handler: noopHandler,
		Rules: []dependency.RuleSpec{
			{Field: "a", When: dependency.WhenSpec{Op: "resembles"}, Target: "b", Then: dependency.ActionShow},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown operator") {
		t.Fatalf("Register error = %v, want unknown operator", err)
	}
}

func TestApplyRuleStore(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"rules.yaml": &fstest.MapFile{Data: []byte(`
functions:
  provision:
    - field: plan
      when: {op: equals, value: enterprise}
      target: seats
      then: show
`)},
	}
	store, err := dependency.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}

	reg := NewRegistry()
	reg.MustRegister(Descriptor{Name: "provision", Handler: noopHandler})
	if err := reg.ApplyRuleStore(store); err != nil {
		t.Fatalf("ApplyRuleStore returned error: %v", err)
	}

	if got := len(reg.Dependencies("provision")); got != 1 {
		t.Fatalf("Dependencies = %d rules, want 1", got)
	}
	desc, err := reg.Get("provision")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(desc.Rules) != 1 {
		t.Fatalf("descriptor carries %d rule specs, want 1", len(desc.Rules))
	}
}

func TestApplyRuleStoreRejectsUnknownFunction(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"rules.yaml": &fstest.MapFile{Data: []byte(`
functions:
  ghost:
    - field: a
      when: {op: truthy}
      target: b
      then: show
`)},
	}
	store, err := dependency.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}

	reg := NewRegistry()
	reg.MustRegister(Descriptor{Name: "provision", Handler: noopHandler})
	err = reg.ApplyRuleStore(store)
	if err == nil || !strings.Contains(err.Error(), "unknown function") {
		t.Fatalf("ApplyRuleStore error = %v, want unknown function", err)
	}
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		reg.MustRegister(Descriptor{Name: name, Handler: noopHandler})
	}
	names := reg.Names()
	if len(names) != 3 || names[0] != "alpha" || names[2] != "zeta" {
		t.Fatalf("Names() = %v, want sorted", names)
	}
	if !reg.Has("mid") {
		t.Fatalf("Has(mid) = false")
	}
}
