// Command funcform-lint-rules validates declarative dependency-rule documents
// (YAML or JSON) before they ship: unknown operators, unknown actions, no-op
// action pairs, and duplicate function ids across a directory all fail the
// lint.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-funcform/pkg/dependency"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint dependency rule documents. Paths may be files or directories;\ndirectories are walked for .json/.yaml/.yml documents.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"rules"}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintPath(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintPath(path string) ([]violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return lintDir(path)
	}
	return lintFile(path)
}

// lintDir delegates to the same loader the runtime uses, so a clean lint
// guarantees the directory loads at startup. Loader errors are reported as
// violations rather than hard failures so other paths still get linted.
func lintDir(path string) ([]violation, error) {
	store, err := dependency.LoadFS(os.DirFS(path))
	if err != nil {
		return []violation{{file: path, location: "-", message: err.Error()}}, nil
	}

	var violations []violation
	for _, fnName := range store.Functions() {
		specs, _ := store.Rules(fnName)
		violations = append(violations, lintSpecs(path, fnName, specs)...)
	}
	return violations, nil
}

type document struct {
	Functions map[string][]dependency.RuleSpec `json:"functions" yaml:"functions"`
}

func lintFile(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &doc); err != nil {
			return []violation{{file: path, location: "-", message: err.Error()}}, nil
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return []violation{{file: path, location: "-", message: err.Error()}}, nil
		}
	default:
		return nil, fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}

	var violations []violation
	fnNames := make([]string, 0, len(doc.Functions))
	for fnName := range doc.Functions {
		fnNames = append(fnNames, fnName)
	}
	sort.Strings(fnNames)
	for _, fnName := range fnNames {
		if strings.TrimSpace(fnName) == "" {
			violations = append(violations, violation{
				file:     path,
				location: "functions",
				message:  "function name is empty",
			})
			continue
		}
		violations = append(violations, lintSpecs(path, fnName, doc.Functions[fnName])...)
	}
	return violations, nil
}

// lintSpecs compiles each spec so value-level problems surface too, e.g. a
// greater_than rule whose value is not numeric.
func lintSpecs(file, fnName string, specs []dependency.RuleSpec) []violation {
	var violations []violation
	for i, spec := range specs {
		location := fmt.Sprintf("%s > rules[%d]", fnName, i)
		if _, err := spec.Compile(); err != nil {
			violations = append(violations, violation{
				file:     file,
				location: location,
				message:  err.Error(),
			})
		}
	}
	return violations
}
