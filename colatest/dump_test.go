package colatest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colalang/cola/cola/lexer"
	"github.com/colalang/cola/cola/model"
	"github.com/colalang/cola/cola/parse"
	"github.com/colalang/cola/cola/schema"
	"github.com/colalang/cola/colatest"
)

func TestDumpModel_IncludesEveryNode(t *testing.T) {
	doc, err := parse.Parse(lexer.FileRef("t.cola"), `server: host: "x" ;`, true)
	require.NoError(t, err)
	m, errs := model.Build(doc)
	require.Empty(t, errs)

	out := colatest.DumpModel(m)
	assert.Contains(t, out, "Root")
	assert.Contains(t, out, "server")
}

func TestDumpSchema_IncludesEveryType(t *testing.T) {
	doc, err := parse.Parse(lexer.FileRef("t.cola"), `server: host: "x" ;`, true)
	require.NoError(t, err)
	m, errs := model.Build(doc)
	require.Empty(t, errs)
	set, schemaErrs := schema.Infer(m)
	require.Empty(t, schemaErrs)

	out := colatest.DumpSchema(set)
	assert.Contains(t, out, "server")
	assert.Contains(t, out, "Root")
}
