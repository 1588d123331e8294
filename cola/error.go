// Package cola parses the Cola configuration language and generates a
// typed Go library exposing a parsed configuration as structs and keyed
// collections.
package cola

import (
	"fmt"
	"strings"
)

// Pos locates a diagnostic in source: file name, 1-based line, 1-based
// column.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// IoError wraps a failure to read input or write generated output.
type IoError struct {
	Path string
	Err  error
}

func (e IoError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e IoError) Unwrap() error { return e.Err }

// ParseError is a token or grammar failure. Expected lists the token or
// construct names the parser would have accepted at Pos.
type ParseError struct {
	Pos      Pos
	Message  string
	Expected []string
}

func (e ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s (expected %s)", e.Pos, e.Message, strings.Join(e.Expected, " or "))
}

// ModelError is a structural violation found while lowering a parse tree
// into the configuration model: a FieldList directly under a Plural, a
// duplicate child or field name, integer overflow, and so on.
type ModelError struct {
	Pos     Pos
	Message string
}

func (e ModelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ModelErrors aggregates every ModelError the model builder accumulated
// before giving up, in the style of the teacher's SQLCodeParseErrors.
type ModelErrors struct {
	Errors []ModelError
}

func (e ModelErrors) Error() string {
	var msg strings.Builder
	msg.WriteString("cola: model errors:\n\n")
	for _, sub := range e.Errors {
		msg.WriteString(sub.Error())
		msg.WriteByte('\n')
	}
	return msg.String()
}

// SchemaError is a type-inference impossibility: incompatible scalar kinds
// for the same field across sibling instances of a type.
type SchemaError struct {
	TypeName string
	Field    string
	Message  string
}

func (e SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cola: schema error on %s: %s", e.TypeName, e.Message)
	}
	return fmt.Sprintf("cola: schema error on %s.%s: %s", e.TypeName, e.Field, e.Message)
}

// SchemaErrors aggregates every SchemaError found during inference.
type SchemaErrors struct {
	Errors []SchemaError
}

func (e SchemaErrors) Error() string {
	var msg strings.Builder
	msg.WriteString("cola: schema errors:\n\n")
	for _, sub := range e.Errors {
		msg.WriteString(sub.Error())
		msg.WriteByte('\n')
	}
	return msg.String()
}

// RenderError is a template variable miss or template-engine failure.
type RenderError struct {
	Template string
	Message  string
}

func (e RenderError) Error() string {
	return fmt.Sprintf("cola: render error in %q: %s", e.Template, e.Message)
}
