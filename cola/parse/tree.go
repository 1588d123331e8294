// Package parse turns Cola source into a concrete parse tree: a sequence of
// Markdown items, with Cola entity syntax parsed inside ```cola fences.
package parse

import "github.com/colalang/cola/cola/lexer"

// Document is the root of a parse tree: every Markdown item encountered in
// source order.
type Document struct {
	Items []Item
}

// Item is one top-level Markdown construct: a heading, a paragraph, a
// regular (non-Cola) fenced block, or a Cola-tagged fenced block.
type Item interface {
	itemNode()
}

type Heading struct {
	Pos  lexer.Pos
	Text string
}

type Paragraph struct {
	Pos  lexer.Pos
	Text string
}

// RegularBlock is an opaque fenced block: its content is discarded, only its
// presence and optional language tag are retained.
type RegularBlock struct {
	Pos lexer.Pos
	Tag string
}

// ColaBlock is a ```cola fenced block, holding the Entities declared at its
// top level in source order.
type ColaBlock struct {
	Pos      lexer.Pos
	Entities []Entity
}

func (Heading) itemNode()      {}
func (Paragraph) itemNode()    {}
func (RegularBlock) itemNode() {}
func (ColaBlock) itemNode()    {}

// Entity is a parsed Cola entity declaration: either Singular (IsPlural
// false) or the Plural infix form (IsPlural true, PluralName set).
//
// Fields and Children are recorded separately but each preserves its own
// relative source order; the grammar allows them to interleave freely
// inside an EntityBody, and only their per-kind order is observable.
type Entity struct {
	Pos  lexer.Pos
	Name string

	IsPlural   bool
	PluralName string
	PluralPos  lexer.Pos

	Fields   []Field
	Children []Entity
}

type Field struct {
	Pos   lexer.Pos
	Name  string
	Value FieldValue
}

type FieldValueKind int

const (
	StringValue FieldValueKind = iota + 1
	NumberValue
	BoolValue
)

// FieldValue is a scalar literal as written in source. Raw holds the exact
// source text (quotes included for strings, sign and digits for numbers);
// decoding into a typed scalar happens in cola/model.
type FieldValue struct {
	Pos  lexer.Pos
	Kind FieldValueKind
	Raw  string
	Bool bool
}
