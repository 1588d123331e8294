package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FieldListVsNestedEntity(t *testing.T) {
	doc, err := Parse("t.md", "```cola\nx: a: 1 ; ;\n```\n", false)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	block := doc.Items[0].(ColaBlock)
	require.Len(t, block.Entities, 1)

	x := block.Entities[0]
	assert.Equal(t, "x", x.Name)
	require.Len(t, x.Fields, 1)
	assert.Equal(t, "a", x.Fields[0].Name)
	assert.Equal(t, NumberValue, x.Fields[0].Value.Kind)
	assert.Equal(t, "1", x.Fields[0].Value.Raw)
	assert.Empty(t, x.Children)
}

func TestParse_PluralWithNestedSingular(t *testing.T) {
	doc, err := Parse("t.md", "```cola\nllm plural llms: openai: api: key: \"k\" ; ; ;\n```\n", false)
	require.NoError(t, err)
	block := doc.Items[0].(ColaBlock)
	require.Len(t, block.Entities, 1)

	llms := block.Entities[0]
	assert.True(t, llms.IsPlural)
	assert.Equal(t, "llm", llms.Name)
	assert.Equal(t, "llms", llms.PluralName)
	require.Len(t, llms.Children, 1)

	openai := llms.Children[0]
	assert.Equal(t, "openai", openai.Name)
	require.Len(t, openai.Children, 1)

	api := openai.Children[0]
	assert.Equal(t, "api", api.Name)
	require.Len(t, api.Fields, 1)
	assert.Equal(t, "key", api.Fields[0].Name)
	assert.Equal(t, StringValue, api.Fields[0].Value.Kind)
}

func TestParse_EmptyColaBlock(t *testing.T) {
	doc, err := Parse("t.md", "```cola\n```\n", false)
	require.NoError(t, err)
	block := doc.Items[0].(ColaBlock)
	assert.Empty(t, block.Entities)
}

func TestParse_NoColaBlock(t *testing.T) {
	doc, err := Parse("t.md", "# Title\nJust a paragraph.\n", false)
	require.NoError(t, err)
	for _, item := range doc.Items {
		if _, ok := item.(ColaBlock); ok {
			t.Fatalf("unexpected cola block in document with no fence")
		}
	}
}

func TestParse_ParagraphBeforeFenceKeptAsParagraphItem(t *testing.T) {
	doc, err := Parse("t.md", "Some intro text.\n```cola\nfoo: x: 1;\n```\n", false)
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
	_, isParagraph := doc.Items[0].(Paragraph)
	assert.True(t, isParagraph)
	block := doc.Items[1].(ColaBlock)
	require.Len(t, block.Entities, 1)
	assert.Equal(t, "foo", block.Entities[0].Name)
}

func TestParse_TwoColaBlocks(t *testing.T) {
	doc, err := Parse("t.md", "```cola\na: x: 1;\n```\n```cola\nb: y: 2;\n```\n", false)
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
	first := doc.Items[0].(ColaBlock)
	second := doc.Items[1].(ColaBlock)
	assert.Equal(t, "a", first.Entities[0].Name)
	assert.Equal(t, "b", second.Entities[0].Name)
}

func TestParse_MultipleFieldsCommaSeparated(t *testing.T) {
	doc, err := Parse("t.md", "```cola\nwidget: title: \"Hi\", count: 3, active: true;\n```\n", false)
	require.NoError(t, err)
	block := doc.Items[0].(ColaBlock)
	widget := block.Entities[0]
	require.Len(t, widget.Fields, 3)
	assert.Equal(t, "title", widget.Fields[0].Name)
	assert.Equal(t, "count", widget.Fields[1].Name)
	assert.Equal(t, "active", widget.Fields[2].Name)
	assert.True(t, widget.Fields[2].Value.Bool)
}

func TestParse_BareColaFile(t *testing.T) {
	doc, err := Parse("t.cola", "x: a: 1;\n", true)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	block := doc.Items[0].(ColaBlock)
	require.Len(t, block.Entities, 1)
	assert.Equal(t, "x", block.Entities[0].Name)
}

func TestParse_UnterminatedColaBlockIsParseError(t *testing.T) {
	_, err := Parse("t.md", "```cola\nx: a: 1;\n", false)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
}

func TestParse_RegularBlockContentDiscarded(t *testing.T) {
	doc, err := Parse("t.md", "```go\nfunc main() {}\n```\n", false)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	rb := doc.Items[0].(RegularBlock)
	assert.Equal(t, "go", rb.Tag)
}
