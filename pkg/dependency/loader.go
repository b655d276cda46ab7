package dependency

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Condition operators accepted by declarative rule documents.
const (
	OpEquals      = "equals"
	OpNotEquals   = "not_equals"
	OpGreaterThan = "greater_than"
	OpLessThan    = "less_than"
	OpTruthy      = "truthy"
	OpFalsy       = "falsy"
	OpIn          = "in"
)

// WhenSpec is the serializable condition of a declarative rule.
type WhenSpec struct {
	Op     string `json:"op" yaml:"op"`
	Value  any    `json:"value,omitempty" yaml:"value"`
	Values []any  `json:"values,omitempty" yaml:"values"`
}

// RuleSpec is the serializable form of a FieldDependency. Unlike the
// closure-backed FieldDependency, specs survive a round trip to JSON, so the
// same document drives both server-side evaluation and the browser runtime.
type RuleSpec struct {
	Field  string   `json:"field" yaml:"field"`
	When   WhenSpec `json:"when" yaml:"when"`
	Target string   `json:"target" yaml:"target"`
	Then   Action   `json:"then" yaml:"then"`
	Else   Action   `json:"else,omitempty" yaml:"else,omitempty"`
}

// Validate checks identifiers, the operator, and the action pair.
func (s RuleSpec) Validate() error {
	if strings.TrimSpace(s.Field) == "" {
		return fmt.Errorf("dependency: rule is missing a source field")
	}
	if strings.TrimSpace(s.Target) == "" {
		return fmt.Errorf("dependency: rule on %q is missing a target field", s.Field)
	}
	switch s.When.Op {
	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpTruthy, OpFalsy, OpIn:
	default:
		return fmt.Errorf("dependency: rule %s→%s has unknown operator %q", s.Field, s.Target, s.When.Op)
	}
	if !s.Then.Valid() {
		return fmt.Errorf("dependency: rule %s→%s has unknown action %q", s.Field, s.Target, s.Then)
	}
	if s.Else != "" {
		if !s.Else.Valid() {
			return fmt.Errorf("dependency: rule %s→%s has unknown else action %q", s.Field, s.Target, s.Else)
		}
		if s.Else == s.Then {
			return fmt.Errorf("dependency: rule %s→%s is a no-op: action and else action are both %q", s.Field, s.Target, s.Then)
		}
	}
	return nil
}

// Compile turns the spec into an executable FieldDependency.
func (s RuleSpec) Compile() (FieldDependency, error) {
	if err := s.Validate(); err != nil {
		return FieldDependency{}, err
	}

	var cond Condition
	switch s.When.Op {
	case OpEquals:
		cond = Equals(s.When.Value)
	case OpNotEquals:
		cond = NotEquals(s.When.Value)
	case OpGreaterThan:
		want, ok := coerceNumber(s.When.Value)
		if !ok {
			return FieldDependency{}, fmt.Errorf("dependency: rule %s→%s needs a numeric value for %s", s.Field, s.Target, s.When.Op)
		}
		cond = GreaterThan(want)
	case OpLessThan:
		want, ok := coerceNumber(s.When.Value)
		if !ok {
			return FieldDependency{}, fmt.Errorf("dependency: rule %s→%s needs a numeric value for %s", s.Field, s.Target, s.When.Op)
		}
		cond = LessThan(want)
	case OpTruthy:
		cond = Truthy()
	case OpFalsy:
		cond = Falsy()
	case OpIn:
		cond = OneOf(s.When.Values...)
	}

	return FieldDependency{
		SourceField: s.Field,
		TargetField: s.Target,
		Condition:   cond,
		Action:      s.Then,
		ElseAction:  s.Else,
	}, nil
}

// CompileAll compiles a slice of specs, preserving order.
func CompileAll(specs []RuleSpec) ([]FieldDependency, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	rules := make([]FieldDependency, 0, len(specs))
	for _, spec := range specs {
		rule, err := spec.Compile()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Store holds rule specs keyed by function name, as parsed from declarative
// documents.
type Store struct {
	functions map[string][]RuleSpec
}

// Rules returns the specs declared for the supplied function name.
func (s *Store) Rules(function string) ([]RuleSpec, bool) {
	if s == nil {
		return nil, false
	}
	specs, ok := s.functions[function]
	return specs, ok
}

// Empty reports whether the store holds any rule specs.
func (s *Store) Empty() bool {
	return s == nil || len(s.functions) == 0
}

// Functions returns the sorted names of functions with declared rules.
func (s *Store) Functions() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.functions))
	for name := range s.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type documentFile struct {
	Functions map[string][]RuleSpec `json:"functions" yaml:"functions"`
}

// LoadFS walks the provided filesystem and parses JSON/YAML rule documents.
// When fsys is nil or no documents are present, the returned store is empty.
// Duplicate function ids across files are rejected, as are specs that fail
// validation.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{functions: make(map[string][]RuleSpec)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRuleFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("dependency: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for fnName, specs := range doc.Functions {
			id := strings.TrimSpace(fnName)
			if id == "" {
				return fmt.Errorf("dependency: file %s declares rules for an empty function name", path)
			}
			if _, exists := store.functions[id]; exists {
				return fmt.Errorf("dependency: duplicate function %q (file %s)", id, path)
			}
			for _, spec := range specs {
				if err := spec.Validate(); err != nil {
					return fmt.Errorf("%w (function %q, file %s)", err, id, path)
				}
			}
			store.functions[id] = append([]RuleSpec(nil), specs...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

func parseDocument(data []byte, path string) (documentFile, error) {
	var doc documentFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("dependency: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("dependency: parse %s: %w", path, err)
		}
	}
	return doc, nil
}

func isRuleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
