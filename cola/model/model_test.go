package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colalang/cola/cola/parse"
)

func build(t *testing.T, src string) (*Model, []Error) {
	t.Helper()
	doc, err := parse.Parse("t.md", src, false)
	require.NoError(t, err)
	return Build(doc)
}

func TestBuild_RootIsEntityWithNoErrors(t *testing.T) {
	m, errs := build(t, "```cola\nx: a: 1;\n```\n")
	require.Empty(t, errs)
	root, ok := m.GetNode(m.RootId())
	require.True(t, ok)
	assert.Equal(t, EntityNode, root.Kind)
	assert.Equal(t, NodeId(-1), root.ParentId)
}

func TestBuild_FieldListBecomesField(t *testing.T) {
	m, errs := build(t, "```cola\nx: a: 1;\n```\n")
	require.Empty(t, errs)
	xId, ok := m.FindChildEntityByName(m.RootId(), "x")
	require.True(t, ok)
	x, _ := m.GetNode(xId)
	assert.Equal(t, "x", x.TypeName)
	scalar, ok := x.Fields.Get("a")
	require.True(t, ok)
	assert.Equal(t, Integer, scalar.Kind)
	assert.Equal(t, int64(1), scalar.Int)
}

func TestBuild_PluralWithNestedSingular(t *testing.T) {
	m, errs := build(t, "```cola\nllm plural llms: openai: api: key: \"k\" ; ; ;\n```\n")
	require.Empty(t, errs)
	pluralId, ok := m.FindChildPluralByName(m.RootId(), "llms")
	require.True(t, ok)
	plural, _ := m.GetNode(pluralId)
	assert.Equal(t, PluralNode, plural.Kind)
	assert.Equal(t, "llm", plural.SingularType)

	children, ok := m.ChildrenOfPlural(m.RootId(), "llms")
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.Equal(t, "openai", children[0].Name)

	openai, _ := m.GetNode(children[0].Id)
	assert.Equal(t, "llm", openai.TypeName)
	apiId, ok := m.FindChildEntityByName(children[0].Id, "api")
	require.True(t, ok)
	api, _ := m.GetNode(apiId)
	keyScalar, ok := api.Fields.Get("key")
	require.True(t, ok)
	assert.Equal(t, String, keyScalar.Kind)
	assert.Equal(t, "k", keyScalar.Str)
}

func TestBuild_PluralChildSourceOrder(t *testing.T) {
	m, errs := build(t, "```cola\nitem plural items: b: x: 1; a: x: 2; c: x: 3; ;\n```\n")
	require.Empty(t, errs)
	children, ok := m.ChildrenOfPlural(m.RootId(), "items")
	require.True(t, ok)
	require.Len(t, children, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{children[0].Name, children[1].Name, children[2].Name})
}

func TestBuild_FieldListDirectlyUnderPluralIsModelError(t *testing.T) {
	doc, err := parse.Parse("t.md", "```cola\nx plural xs: a: 1;\n```\n", false)
	require.NoError(t, err)
	_, errs := Build(doc)
	require.NotEmpty(t, errs)
}

func TestBuild_DuplicateFieldNameIsModelError(t *testing.T) {
	doc, err := parse.Parse("t.md", "```cola\nx: a: 1, a: 2;\n```\n", false)
	require.NoError(t, err)
	_, errs := Build(doc)
	require.NotEmpty(t, errs)
}

func TestBuild_IntegerOverflowIsModelError(t *testing.T) {
	doc, err := parse.Parse("t.md", "```cola\nx: a: 9223372036854775808;\n```\n", false)
	require.NoError(t, err)
	_, errs := Build(doc)
	require.NotEmpty(t, errs)
}

func TestBuild_MaxInt64Parses(t *testing.T) {
	doc, err := parse.Parse("t.md", "```cola\nx: a: 9223372036854775807;\n```\n", false)
	require.NoError(t, err)
	_, errs := Build(doc)
	require.Empty(t, errs)
}

func TestBuild_EmptyColaBlock(t *testing.T) {
	m, errs := build(t, "```cola\n```\n")
	require.Empty(t, errs)
	root, _ := m.GetNode(m.RootId())
	assert.Zero(t, root.Children.Len())
}

func TestBuild_NoColaBlockYieldsEmptyRoot(t *testing.T) {
	m, errs := build(t, "# Title\nJust text.\n")
	require.Empty(t, errs)
	root, _ := m.GetNode(m.RootId())
	assert.Zero(t, root.Children.Len())
}

func TestBuild_TwoColaBlocksConcatenateUnderRoot(t *testing.T) {
	m, errs := build(t, "```cola\na: x: 1;\n```\n```cola\nb: y: 2;\n```\n")
	require.Empty(t, errs)
	root, _ := m.GetNode(m.RootId())
	assert.Equal(t, 2, root.Children.Len())
	_, aOk := m.FindChildEntityByName(m.RootId(), "a")
	_, bOk := m.FindChildEntityByName(m.RootId(), "b")
	assert.True(t, aOk)
	assert.True(t, bOk)
}
