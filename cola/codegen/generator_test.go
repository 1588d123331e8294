package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colalang/cola/cola/codegen"
	"github.com/colalang/cola/cola/lexer"
	"github.com/colalang/cola/cola/model"
	"github.com/colalang/cola/cola/parse"
	"github.com/colalang/cola/cola/schema"
)

func inferSet(t *testing.T, src string) *schema.Set {
	t.Helper()
	doc, err := parse.Parse(lexer.FileRef("test.cola"), src, true)
	require.NoError(t, err)
	m, modelErrs := model.Build(doc)
	require.Empty(t, modelErrs)
	set, schemaErrs := schema.Infer(m)
	require.Empty(t, schemaErrs)
	return set
}

func TestGenerate_RendersValidGoSource(t *testing.T) {
	set := inferSet(t, `
llm plural llms: openai: key: "x" ; ;
`)
	art, err := codegen.Generate(set, codegen.Options{Package: "testcfg"})
	require.NoError(t, err)

	src := string(art.Source)
	assert.Contains(t, src, "package testcfg")
	assert.Contains(t, src, "type Llm struct")
	assert.Contains(t, src, "type PluralLlm map[string]Llm")
	assert.Contains(t, src, "llms PluralLlm")
}

func TestGenerate_EmitsFromEntityAndFromChildrenConstructors(t *testing.T) {
	set := inferSet(t, `
server plural servers: one: host: "a" ; ;
`)
	art, err := codegen.Generate(set, codegen.Options{Package: "testcfg"})
	require.NoError(t, err)

	src := string(art.Source)
	assert.Contains(t, src, "func NewServerFromEntity(m *model.Model, id model.NodeId) Server")
	assert.Contains(t, src, `n.Fields.Get("host")`)
	assert.Contains(t, src, "sv.Kind == model.String")
	assert.Contains(t, src, "func NewPluralServerFromChildren(m *model.Model, parentId model.NodeId, pluralName string) PluralServer")
	assert.Contains(t, src, "m.ChildrenOfPlural(parentId, pluralName)")
	assert.Contains(t, src, "NewServerFromEntity(m, c.Id)")
	assert.Contains(t, src, "func (w PluralServer) Count() int")
	assert.Contains(t, src, "func (w PluralServer) Get(name string) (Server, bool)")
	assert.Contains(t, src, "func (w PluralServer) Names() []string")
}

func TestGenerate_WithTestsParsesSampleAndAssertsPluralsNonEmpty(t *testing.T) {
	sample := `
server plural servers: one: host: "a" ; ;
`
	set := inferSet(t, sample)
	art, err := codegen.Generate(set, codegen.Options{
		Package:    "testcfg",
		WithTests:  true,
		Sample:     sample,
		SampleBare: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, art.TestSource)

	src := string(art.TestSource)
	assert.Contains(t, src, "func TestRootFromEntity_ParsesSampleAndPopulatesPlurals")
	assert.Contains(t, src, "parse.Parse(lexer.FileRef(\"sample\"), sampleSource, true)")
	assert.Contains(t, src, "NewRootFromEntity(m, m.RootId())")
	assert.Contains(t, src, "m.ChildrenOfPlural(n.ParentId, n.PluralName)")
	assert.Contains(t, src, "assert.NotEmpty(t, children")
}

func TestGenerate_WithTestsSkipsWhenNoRootType(t *testing.T) {
	set := &schema.Set{Types: map[string]*schema.TypeSchema{}, RootKey: "Root"}
	art, err := codegen.Generate(set, codegen.Options{Package: "testcfg", WithTests: true, Sample: "", SampleBare: true})
	require.NoError(t, err)
	assert.Empty(t, art.TestSource)
}
