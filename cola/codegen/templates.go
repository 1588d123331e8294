package codegen

// The four templates spec.md §4.5 names, rendered in topological order and
// concatenated before a single gofmt + goimports pass. Grounded on
// termfx-morfx's morfx-provider-gen, which keeps its generated-code template
// as a typed `text/template` string constant next to a typed context struct.

const packagingTmpl = `// Code generated by cola. DO NOT EDIT.

package {{.Package}}
`

const entityStructTmpl = `
// {{.StructName}} was derived from the {{.TypeKeyComment}} entity.
type {{.StructName}} struct {
{{- range .Fields}}
	{{.GoName}} {{.GoType}}
{{- end}}
}

// New{{.StructName}}FromEntity reads id's scalar fields and resolves its
// child entities and plurals from m. A scalar whose stored kind doesn't
// match the field's declared kind, or a required child missing entirely,
// falls back to the field's zero value rather than erroring — the parser
// already enforced kind agreement, so this can only happen against a model
// built from a different schema than the one this type was derived from.
func New{{.StructName}}FromEntity(m *model.Model, id model.NodeId) {{.StructName}} {
	var v {{.StructName}}
	n, ok := m.GetNode(id)
	if !ok {
		return v
	}
	_ = n // unused when every field is a plural reference
{{range .Fields}}
	{{.ResolveCode}}
{{end}}
	return v
}
`

const pluralWrapperTmpl = `
// {{.StructName}} is the plural collection of {{.WrapperSingular}}, keyed by
// instance name, derived from the {{.WrapperNameComment}} plural.
type {{.StructName}} map[string]{{.ElemType}}

// New{{.StructName}}FromChildren builds one {{.ElemType}} per named child of
// parentId's pluralName plural, via children_of_plural. Map iteration order
// is unspecified; use Names for the deterministic order.
func New{{.StructName}}FromChildren(m *model.Model, parentId model.NodeId, pluralName string) {{.StructName}} {
	w := make({{.StructName}})
	children, ok := m.ChildrenOfPlural(parentId, pluralName)
	if !ok {
		return w
	}
	for _, c := range children {
		w[c.Name] = New{{.ElemType}}FromEntity(m, c.Id)
	}
	return w
}

// Count returns the number of {{.ElemType}} instances in w.
func (w {{.StructName}}) Count() int {
	return len(w)
}

// Get looks up one instance by name.
func (w {{.StructName}}) Get(name string) ({{.ElemType}}, bool) {
	v, ok := w[name]
	return v, ok
}

// Names returns every instance name in sorted order.
func (w {{.StructName}}) Names() []string {
	names := make([]string, 0, len(w))
	for name := range w {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
`

const integrationTestTmpl = `
func Test{{.RootStructName}}FromEntity_ParsesSampleAndPopulatesPlurals(t *testing.T) {
	doc, err := parse.Parse(lexer.FileRef("sample"), sampleSource, {{.SampleBare}})
	require.NoError(t, err)
	m, errs := model.Build(doc)
	require.Empty(t, errs)

	root := New{{.RootStructName}}FromEntity(m, m.RootId())
	_ = root

	var pluralCount int
	for _, n := range m.AllNodes() {
		if n.Kind != model.PluralNode {
			continue
		}
		pluralCount++
		children, ok := m.ChildrenOfPlural(n.ParentId, n.PluralName)
		assert.True(t, ok)
		assert.NotEmpty(t, children, "plural %q must have at least one instance", n.PluralName)
	}
{{if .HasPlurals}}
	assert.Greater(t, pluralCount, 0, "sample must exercise at least one plural")
{{end}}
}
`
