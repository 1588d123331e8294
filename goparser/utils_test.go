package goparser

import (
	"go/ast"
	"go/parser"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCall(t *testing.T, expr string) *ast.CallExpr {
	t.Helper()
	e, err := parser.ParseExpr(expr)
	require.NoError(t, err)
	call, ok := e.(*ast.CallExpr)
	require.True(t, ok, "expected %q to parse as a call expression", expr)
	return call
}

func TestIsGenerateFunc_MatchesSelectorCalls(t *testing.T) {
	isGenerate, isMust, err := IsGenerateFunc(parseCall(t, `cola.Generate(file, src, opts)`))
	require.NoError(t, err)
	assert.True(t, isGenerate)
	assert.False(t, isMust)

	isGenerate, isMust, err = IsGenerateFunc(parseCall(t, `cola.MustGenerate(file, src, opts)`))
	require.NoError(t, err)
	assert.True(t, isGenerate)
	assert.True(t, isMust)
}

func TestIsGenerateFunc_IgnoresUnrelatedCalls(t *testing.T) {
	isGenerate, _, err := IsGenerateFunc(parseCall(t, `fmt.Println("x")`))
	require.NoError(t, err)
	assert.False(t, isGenerate)
}

func TestIsGenerateFunc_UnhandledCallTypeOnLiteralFunc(t *testing.T) {
	_, _, err := IsGenerateFunc(parseCall(t, `func() {}()`))
	assert.ErrorIs(t, err, ErrUnhandledCallType)
}
