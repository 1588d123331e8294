package cola

import (
	"github.com/gofrs/uuid"

	"github.com/colalang/cola/cola/codegen"
	"github.com/colalang/cola/cola/lexer"
	"github.com/colalang/cola/cola/model"
	"github.com/colalang/cola/cola/parse"
	"github.com/colalang/cola/cola/schema"
)

// Options controls one run of the lexer -> parse -> model -> schema ->
// codegen pipeline, mirroring the teacher's Options on Include.
type Options struct {
	// BareCola treats src as a standalone .cola file (no Markdown host
	// syntax) rather than a Markdown document containing ```cola fences.
	BareCola bool

	// Package is the Go package name of the generated file; defaults to
	// "cola_config".
	Package string

	// WithTests additionally renders a smoke-test file.
	WithTests bool
}

// Artifacts is the full output of one Generate call: the rendered Go source,
// optionally a smoke-test file, the derived schema (for --describe-json and
// similar introspection), and a run correlation id for log correlation.
type Artifacts struct {
	Source     []byte
	TestSource []byte
	Schema     *schema.Set
	RunID      string
}

// Generate runs the full pipeline over one file's content. It returns as
// soon as a stage fails: a ParseError aborts immediately (the grammar is not
// locally recoverable past a syntax error), while ModelErrors/SchemaErrors
// report every accumulated error from their stage at once.
func Generate(file string, src []byte, opts Options) (Artifacts, error) {
	runID, err := uuid.NewV4()
	if err != nil {
		return Artifacts{}, IoError{Path: file, Err: err}
	}

	doc, err := parse.Parse(lexer.FileRef(file), string(src), opts.BareCola)
	if err != nil {
		return Artifacts{}, translateParseErr(err)
	}

	m, modelErrs := model.Build(doc)
	if len(modelErrs) > 0 {
		return Artifacts{}, ModelErrors{Errors: translateModelErrs(modelErrs)}
	}

	set, schemaErrs := schema.Infer(m)
	if len(schemaErrs) > 0 {
		return Artifacts{}, SchemaErrors{Errors: translateSchemaErrs(schemaErrs)}
	}

	art, err := codegen.Generate(set, codegen.Options{
		Package:    opts.Package,
		WithTests:  opts.WithTests,
		Sample:     string(src),
		SampleBare: opts.BareCola,
	})
	if err != nil {
		if cgErr, ok := err.(codegen.Error); ok {
			return Artifacts{}, RenderError{Template: cgErr.Template, Message: cgErr.Message}
		}
		return Artifacts{}, RenderError{Template: "codegen", Message: err.Error()}
	}

	return Artifacts{
		Source:     art.Source,
		TestSource: art.TestSource,
		Schema:     set,
		RunID:      runID.String(),
	}, nil
}

// MustGenerate is Generate, panicking on error, for callers (tests, `go
// generate` directives) that treat pipeline failure as a build break.
func MustGenerate(file string, src []byte, opts Options) Artifacts {
	art, err := Generate(file, src, opts)
	if err != nil {
		panic(err)
	}
	return art
}

func translateParseErr(err error) error {
	pe, ok := err.(*parse.Error)
	if !ok {
		return err
	}
	return ParseError{
		Pos:      Pos{File: string(pe.Pos.File), Line: pe.Pos.Line, Col: pe.Pos.Col},
		Message:  pe.Message,
		Expected: pe.Expected,
	}
}

func translateModelErrs(errs []model.Error) []ModelError {
	out := make([]ModelError, len(errs))
	for i, e := range errs {
		out[i] = ModelError{
			Pos:     Pos{File: string(e.Pos.File), Line: e.Pos.Line, Col: e.Pos.Col},
			Message: e.Message,
		}
	}
	return out
}

func translateSchemaErrs(errs []schema.Error) []SchemaError {
	out := make([]SchemaError, len(errs))
	for i, e := range errs {
		out[i] = SchemaError{TypeName: e.TypeName, Field: e.Field, Message: e.Message}
	}
	return out
}
