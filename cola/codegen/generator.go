// Package codegen renders a derived schema.Set into a Go source file: one
// struct per entity TypeSchema, one map-backed wrapper type per plural
// TypeSchema, and (optionally) a smoke-test file exercising the generated
// types, following the teacher's render-then-format posture.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"

	"golang.org/x/tools/imports"

	"github.com/colalang/cola/cola/schema"
)

// Error reports a template or post-processing failure during code
// generation; the root `cola` package wraps this into a RenderError.
type Error struct {
	Template string
	Message  string
}

func (e Error) Error() string {
	return fmt.Sprintf("cola/codegen: %s: %s", e.Template, e.Message)
}

// Options controls the generated package.
type Options struct {
	Package string // Go package name for the generated file; defaults to "cola_config"

	// WithTests additionally renders a smoke-test file (returned as the
	// second Artifacts.TestSource) that parses Sample, builds a model from
	// it, constructs Root, and asserts every plural it contains is
	// non-empty — the exact source set was inferred from, so every plural
	// the schema knows about is guaranteed to appear at least once.
	WithTests  bool
	Sample     string
	SampleBare bool
}

// Artifacts is the rendered output of Generate.
type Artifacts struct {
	Source     []byte // gofmt'd + goimports'd Go source, one file
	TestSource []byte // only set if Options.WithTests
}

var (
	packagingTemplate       = mustParse("packaging", packagingTmpl)
	entityStructTemplate    = mustParse("entityStruct", entityStructTmpl)
	pluralWrapperTemplate   = mustParse("pluralWrapper", pluralWrapperTmpl)
	integrationTestTemplate = mustParse("integrationTest", integrationTestTmpl)
)

// Generate renders set in topological order (types precede their users) and
// runs the result through go/format and goimports.
func Generate(set *schema.Set, opts Options) (Artifacts, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = "cola_config"
	}

	var body bytes.Buffer
	if err := packagingTemplate.Execute(&body, struct{ Package string }{pkg}); err != nil {
		return Artifacts{}, Error{Template: "packaging", Message: err.Error()}
	}

	order := set.Order
	if len(order) == 0 {
		order = sortedKeys(set.Types)
	}

	for _, key := range order {
		ts := set.Types[key]
		if ts == nil {
			continue
		}
		if ts.IsPluralWrapper {
			if err := pluralWrapperTemplate.Execute(&body, wrapperContextFor(ts)); err != nil {
				return Artifacts{}, Error{Template: "pluralWrapper", Message: err.Error()}
			}
		} else {
			if err := entityStructTemplate.Execute(&body, structContextFor(set, ts)); err != nil {
				return Artifacts{}, Error{Template: "entityStruct", Message: err.Error()}
			}
		}
	}

	formatted, err := format.Source(body.Bytes())
	if err != nil {
		return Artifacts{}, Error{Template: "entityStruct", Message: fmt.Sprintf("gofmt: %v\n%s", err, body.String())}
	}

	imported, err := imports.Process("generated_cola_config.go", formatted, nil)
	if err != nil {
		return Artifacts{}, Error{Template: "entityStruct", Message: fmt.Sprintf("goimports: %v", err)}
	}

	artifacts := Artifacts{Source: imported}
	if opts.WithTests {
		if root, ok := set.Types[set.RootKey]; ok {
			hasPlurals := false
			for _, ts := range set.Types {
				if ts.IsPluralWrapper {
					hasPlurals = true
					break
				}
			}
			testSrc, err := generateTests(pkg, root.StructName(), opts.Sample, opts.SampleBare, hasPlurals)
			if err != nil {
				return Artifacts{}, err
			}
			artifacts.TestSource = testSrc
		}
	}
	return artifacts, nil
}

// generateTests renders the single integration test spec.md §4.5 names:
// embed Sample verbatim, parse it, build a model, construct Root via its
// FromEntity constructor, and assert every plural the model contains has at
// least one instance. Generate skips it entirely if set has no Root type;
// an inferred set always has one, even for an empty document.
func generateTests(pkg, rootStructName, sample string, sampleBare, hasPlurals bool) ([]byte, error) {
	var body bytes.Buffer
	fmt.Fprintf(&body, "// Code generated by cola. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	fmt.Fprintf(&body, "const sampleSource = %s\n", strconv.Quote(sample))

	err := integrationTestTemplate.Execute(&body, struct {
		RootStructName string
		SampleBare     bool
		HasPlurals     bool
	}{rootStructName, sampleBare, hasPlurals})
	if err != nil {
		return nil, Error{Template: "integrationTest", Message: err.Error()}
	}

	formatted, err := format.Source(body.Bytes())
	if err != nil {
		return nil, Error{Template: "integrationTest", Message: fmt.Sprintf("gofmt: %v\n%s", err, body.String())}
	}
	return imports.Process("generated_cola_config_test.go", formatted, nil)
}

func sortedKeys(m map[string]*schema.TypeSchema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
