// Package pretty re-serializes a built model back to canonical Cola source
// and syntax-highlights Cola source for terminal display.
package pretty

import (
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/colalang/cola/cola/model"
)

// Print re-serializes m's top-level entities (m's Root's children) back to
// canonical Cola source, wrapped in a ```cola fence, satisfying spec.md §8's
// round-trip law: parsing Print(Build(Parse(src))) yields an equivalent
// model to the one Print was given.
func Print(m *model.Model) string {
	var b strings.Builder
	b.WriteString("```cola\n")
	root, _ := m.GetNode(m.RootId())
	if root.Children != nil {
		for pair := root.Children.Oldest(); pair != nil; pair = pair.Next() {
			printChild(&b, m, 0, pair.Key, pair.Value)
		}
	}
	b.WriteString("```\n")
	return b.String()
}

func printChild(b *strings.Builder, m *model.Model, indent int, key string, id model.NodeId) {
	n, ok := m.GetNode(id)
	if !ok {
		return
	}
	pad := strings.Repeat("  ", indent)
	switch n.Kind {
	case model.PluralNode:
		fmt.Fprintf(b, "%s%s plural %s:\n", pad, n.SingularType, n.PluralName)
		for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
			printChild(b, m, indent+1, pair.Key, pair.Value)
		}
		fmt.Fprintf(b, "%s;\n", pad)
	default:
		fmt.Fprintf(b, "%s%s:\n", pad, key)
		printEntityBody(b, m, indent+1, n)
		fmt.Fprintf(b, "%s;\n", pad)
	}
}

func printEntityBody(b *strings.Builder, m *model.Model, indent int, n model.Node) {
	pad := strings.Repeat("  ", indent)
	if n.Fields != nil && n.Fields.Len() > 0 {
		b.WriteString(pad)
		printFieldList(b, n.Fields)
		b.WriteString("\n")
	}
	if n.Children != nil {
		for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
			printChild(b, m, indent, pair.Key, pair.Value)
		}
	}
}

func printFieldList(b *strings.Builder, fields *orderedmap.OrderedMap[string, model.Scalar]) {
	first := true
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(b, "%s: %s", pair.Key, printScalar(pair.Value))
	}
}

func printScalar(s model.Scalar) string {
	switch s.Kind {
	case model.String:
		return quoteString(s.Str)
	case model.Integer:
		return strconv.FormatInt(s.Int, 10)
	case model.Float:
		out := strconv.FormatFloat(s.Float64, 'f', -1, 64)
		if !strings.Contains(out, ".") {
			out += ".0"
		}
		return out
	case model.Boolean:
		if s.Bool {
			return "true"
		}
		return "false"
	default:
		return `""`
	}
}

// quoteString is the inverse of lexer.DecodeStringLiteral: every backslash
// and double quote is escaped so the result re-lexes to the same value.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
