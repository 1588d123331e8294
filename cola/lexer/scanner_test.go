package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAllMarkdown(t *testing.T, input string) []TokenType {
	t.Helper()
	s := New("test.md", input)
	var got []TokenType
	for {
		tt := s.NextMarkdownToken()
		got = append(got, tt)
		if tt == EOFToken {
			return got
		}
		if tt == ColaCodeStartToken {
			for s.SkipColaWhitespace(); s.TokenType() != ColaCodeEndToken && s.TokenType() != EOFToken; s.NextColaToken() {
			}
			got = append(got, s.TokenType())
		}
	}
}

func TestScanner_MarkdownHeadingAndParagraph(t *testing.T) {
	got := scanAllMarkdown(t, "# Title\nSome paragraph text.\n")
	assert.Equal(t, []TokenType{HeadingLineToken, ParagraphLineToken, EOFToken}, got)
}

func TestScanner_ColaFenceRoundTrip(t *testing.T) {
	got := scanAllMarkdown(t, "# Doc\n```cola\nFoo : bar: 1;\n```\nTail\n")
	require.Equal(t, []TokenType{HeadingLineToken, ColaCodeStartToken, ColaCodeEndToken, ParagraphLineToken, EOFToken}, got)
}

func TestScanner_RegularFenceUnnamedAndNamed(t *testing.T) {
	s := New("test.md", "```\nraw\n```\n```go\ncode\n```\n")
	assert.Equal(t, RegularCodeStartUnnamedToken, s.NextMarkdownToken())
	assert.Equal(t, ParagraphLineToken, s.NextMarkdownToken())
	assert.Equal(t, RegularCodeEndToken, s.NextMarkdownToken())
	assert.Equal(t, RegularCodeStartNamedToken, s.NextMarkdownToken())
	assert.Equal(t, ParagraphLineToken, s.NextMarkdownToken())
	assert.Equal(t, RegularCodeEndToken, s.NextMarkdownToken())
	assert.Equal(t, EOFToken, s.NextMarkdownToken())
}

func TestScanner_ColaTokens(t *testing.T) {
	s := New("test.cola", `Name : title: "Hello, \"world\"", count: 42, ratio: -1.5, active: true;`)
	var kinds []TokenType
	for {
		tt := s.NextColaToken()
		if tt == WhitespaceToken {
			continue
		}
		kinds = append(kinds, tt)
		if tt == EOFToken {
			break
		}
	}
	require.Equal(t, []TokenType{
		IdentifierToken, ColonToken,
		IdentifierToken, ColonToken, StringToken, CommaToken,
		IdentifierToken, ColonToken, NumberToken, CommaToken,
		IdentifierToken, ColonToken, NumberToken, CommaToken,
		IdentifierToken, ColonToken, TrueKeywordToken,
		SemicolonToken, EOFToken,
	}, kinds)
}

func TestScanner_PluralKeyword(t *testing.T) {
	s := New("test.cola", "Item plural Items : x: 1;")
	s.NextColaToken()
	assert.Equal(t, IdentifierToken, s.TokenType())
	s.NextColaToken()
	s.SkipColaWhitespace()
	assert.Equal(t, PluralKeywordToken, s.TokenType())
	assert.Equal(t, "plural", s.Keyword())
}

func TestScanner_UnterminatedString(t *testing.T) {
	s := New("test.cola", `"unterminated`)
	assert.Equal(t, UnterminatedStringErrorToken, s.NextColaToken())
}

func TestScanner_DecodeStringLiteral(t *testing.T) {
	assert.Equal(t, `Hello, "world"`, DecodeStringLiteral(`"Hello, \"world\""`))
	assert.Equal(t, `back\slash`, DecodeStringLiteral(`"back\\slash"`))
	assert.Equal(t, "", DecodeStringLiteral(`""`))
}

func TestScanner_PosLineCol(t *testing.T) {
	s := New("f.md", "# A\n# B\n")
	s.NextMarkdownToken()
	start := s.Start()
	assert.Equal(t, 1, start.Line)
	assert.Equal(t, 1, start.Col)

	s.NextMarkdownToken()
	start = s.Start()
	assert.Equal(t, 2, start.Line)
	assert.Equal(t, 1, start.Col)
}

func TestScanner_CloneIndependentCursor(t *testing.T) {
	s := New("f.cola", "Foo : x: 1;")
	s.NextColaToken()
	clone := s.Clone()
	clone.NextColaToken()
	assert.NotEqual(t, s.TokenType(), clone.TokenType())
	assert.Equal(t, IdentifierToken, s.TokenType())
}
