package pretty

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

// colaLexer is a minimal chroma lexer for the Cola inner grammar: strings,
// numbers, the plural/true/false keywords, punctuation, and identifiers.
var colaLexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Cola",
		Aliases:   []string{"cola"},
		Filenames: []string{"*.cola"},
	},
	chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Whitespace},
			{Pattern: `"(\\.|[^"\\])*"`, Type: chroma.LiteralString},
			{Pattern: `[+-]?[0-9]+(\.[0-9]+)?`, Type: chroma.LiteralNumber},
			{Pattern: `\b(true|false)\b`, Type: chroma.KeywordConstant},
			{Pattern: `\bplural\b`, Type: chroma.Keyword},
			{Pattern: `[:;,]`, Type: chroma.Punctuation},
			{Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`, Type: chroma.Name},
		},
	},
)

func init() {
	lexers.Register(colaLexer)
}

// Highlight renders src as ANSI-colored terminal output, for `cola fmt
// --color` and similar CLI uses. Only Cola tokens have rules: the ``` fence
// lines of Markdown-hosted input, such as Print's output, match none and
// are emitted as error tokens.
func Highlight(src string) (string, error) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, "cola", "terminal256", "monokai"); err != nil {
		return "", err
	}
	return buf.String(), nil
}
