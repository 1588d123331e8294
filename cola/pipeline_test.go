package cola_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colalang/cola/cola"
)

func TestGenerate_EndToEnd(t *testing.T) {
	src := `
llm plural llms: openai: key: "x" ; ;
`
	art, err := cola.Generate("config.cola", []byte(src), cola.Options{BareCola: true, Package: "cfg"})
	require.NoError(t, err)
	assert.Contains(t, string(art.Source), "package cfg")
	assert.Contains(t, string(art.Source), "type Llm struct")
	require.NotNil(t, art.Schema)
	assert.NotEmpty(t, art.RunID)
}

func TestGenerate_ParseErrorReturnsParseError(t *testing.T) {
	_, err := cola.Generate("config.cola", []byte("x y z"), cola.Options{BareCola: true})
	require.Error(t, err)
	_, ok := err.(cola.ParseError)
	assert.True(t, ok, "expected a cola.ParseError, got %T", err)
}

func TestGenerate_WithTestsEmbedsSampleAndAssertsPlurals(t *testing.T) {
	src := `
llm plural llms: openai: key: "x" ; ;
`
	art, err := cola.Generate("config.cola", []byte(src), cola.Options{BareCola: true, Package: "cfg", WithTests: true})
	require.NoError(t, err)
	require.NotEmpty(t, art.TestSource)

	testSrc := string(art.TestSource)
	assert.Contains(t, testSrc, "func TestRootFromEntity_ParsesSampleAndPopulatesPlurals")
	assert.Contains(t, testSrc, "NewRootFromEntity(m, m.RootId())")
	assert.Contains(t, testSrc, "openai")
}

func TestGenerate_IncompatibleKindsReturnSchemaErrors(t *testing.T) {
	src := `
thing plural things: a: value: 1 ; b: value: true ; ;
`
	_, err := cola.Generate("config.cola", []byte(src), cola.Options{BareCola: true})
	require.Error(t, err)
	_, ok := err.(cola.SchemaErrors)
	assert.True(t, ok, "expected a cola.SchemaErrors, got %T", err)
}
