package schema

import (
	"errors"
	"fmt"
	"sort"
)

// CycleError reports a dependency cycle among type declarations. The model
// is a tree (model.Build cannot construct cycles), so this only fires if a
// future change to Infer introduces a spurious self-reference.
var CycleError = errors.New("cola/schema: detected a dependency cycle")

// TopologicalSort orders a Set's TypeKeys so that a nested or plural-member
// singular type's declaration precedes the declaration of anything that
// references it, matching sqlparser/sqldocument's CREATE-statement ordering
// but for generated struct declarations.
func TopologicalSort(set *Set) ([]string, error) {
	keys := make([]string, 0, len(set.Types))
	for k := range set.Types {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic input order for a deterministic output order

	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}

	visiting := make([]bool, len(keys))
	visited := make([]bool, len(keys))
	var output []string

	var visit func(i int) error
	visit = func(i int) error {
		if visited[i] {
			return nil
		}
		if visiting[i] {
			return CycleError
		}
		visiting[i] = true

		for _, dep := range dependencies(set.Types[keys[i]]) {
			depIdx, ok := index[dep]
			if !ok {
				continue
			}
			if err := visit(depIdx); err != nil {
				return err
			}
		}

		visiting[i] = false
		visited[i] = true
		output = append(output, keys[i])
		return nil
	}

	for i := range keys {
		if err := visit(i); err != nil {
			return nil, fmt.Errorf("cola/schema: %w (type %q)", err, keys[i])
		}
	}
	return output, nil
}

func dependencies(ts *TypeSchema) []string {
	if ts == nil {
		return nil
	}
	if ts.IsPluralWrapper {
		return []string{ts.WrapperSingular}
	}
	var deps []string
	for _, f := range ts.Fields {
		switch f.Kind {
		case EntityField:
			deps = append(deps, f.NestedType)
		case PluralField:
			deps = append(deps, f.PluralWrapper)
		}
	}
	return deps
}
