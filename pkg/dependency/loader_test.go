package dependency

import (
	"strings"
	"testing"
	"testing/fstest"
)

const rulesYAML = `
functions:
  provision:
    - field: plan
      when: {op: equals, value: enterprise}
      target: seats
      then: show
    - field: plan
      when: {op: in, values: [free, trial]}
      target: billing_email
      then: hide
      else: require
`

func TestLoadFSParsesYAMLDocuments(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"rules/provision.yaml": &fstest.MapFile{Data: []byte(rulesYAML)},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if store.Empty() {
		t.Fatalf("store is empty")
	}

	specs, ok := store.Rules("provision")
	if !ok {
		t.Fatalf("store is missing function %q", "provision")
	}
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}

	rules, err := CompileAll(specs)
	if err != nil {
		t.Fatalf("CompileAll returned error: %v", err)
	}
	if got := rules[0].Check("enterprise"); got != ActionShow {
		t.Fatalf("compiled rule Check = %s, want %s", got, ActionShow)
	}
	if got := rules[1].Check("paid"); got != ActionRequire {
		t.Fatalf("compiled rule else = %s, want %s", got, ActionRequire)
	}
	if got := rules[1].Check("trial"); got != ActionHide {
		t.Fatalf("compiled rule in-list = %s, want %s", got, ActionHide)
	}
}

func TestLoadFSParsesJSONDocuments(t *testing.T) {
	t.Parallel()

	doc := `{"functions":{"report":[{"field":"format","when":{"op":"equals","value":"csv"},"target":"delimiter","then":"show"}]}}`
	fsys := fstest.MapFS{
		"report.json": &fstest.MapFile{Data: []byte(doc)},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if _, ok := store.Rules("report"); !ok {
		t.Fatalf("store is missing function %q", "report")
	}
}

func TestLoadFSRejectsUnknownOperator(t *testing.T) {
	t.Parallel()

	doc := `
functions:
  broken:
    - field: a
      when: {op: resembles, value: 1}
      target: b
      then: show
`
	fsys := fstest.MapFS{
		"broken.yml": &fstest.MapFile{Data: []byte(doc)},
	}

	_, err := LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), "unknown operator") {
		t.Fatalf("LoadFS error = %v, want unknown operator", err)
	}
}

func TestLoadFSRejectsDuplicateFunctions(t *testing.T) {
	t.Parallel()

	doc := `
functions:
  provision:
    - field: a
      when: {op: truthy}
      target: b
      then: show
`
	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte(doc)},
		"b.yaml": &fstest.MapFile{Data: []byte(doc)},
	}

	_, err := LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), "duplicate function") {
		t.Fatalf("LoadFS error = %v, want duplicate function", err)
	}
}

func TestRuleSpecRejectsNoOpActionPair(t *testing.T) {
	t.Parallel()

	spec := RuleSpec{
		Field:  "a",
		When:   WhenSpec{Op: OpTruthy},
		Target: "b",
		Then:   ActionShow,
		Else:   ActionShow,
	}
	if err := spec.Validate(); err == nil || !strings.Contains(err.Error(), "no-op") {
		t.Fatalf("Validate error = %v, want no-op rejection", err)
	}
}

func TestCompileRequiresNumericComparison(t *testing.T) {
	t.Parallel()

	spec := RuleSpec{
		Field:  "count",
		When:   WhenSpec{Op: OpGreaterThan, Value: "lots"},
		Target: "warning",
		Then:   ActionShow,
	}
	if _, err := spec.Compile(); err == nil || !strings.Contains(err.Error(), "numeric") {
		t.Fatalf("Compile error = %v, want numeric requirement", err)
	}
}
