package codegen

import (
	"fmt"
	"text/template"

	"github.com/colalang/cola/cola/schema"
)

// fieldContext is one struct field, ready to substitute into entityStructTmpl.
type fieldContext struct {
	GoName      string
	GoType      string
	ResolveCode string // statement(s) that populate v.GoName inside FromEntity
}

// structContext renders one non-wrapper TypeSchema.
type structContext struct {
	StructName     string
	TypeKeyComment string
	Fields         []fieldContext
}

// wrapperContext renders one plural-wrapper TypeSchema.
type wrapperContext struct {
	StructName         string
	WrapperSingular    string
	WrapperNameComment string
	ElemType           string
}

func structContextFor(set *schema.Set, ts *schema.TypeSchema) structContext {
	ctx := structContext{
		StructName:     ts.StructName(),
		TypeKeyComment: ts.TypeKey,
	}
	for _, f := range ts.Fields {
		goName := schema.Sanitize(f.SourceName, schema.FieldIdent)
		ctx.Fields = append(ctx.Fields, fieldContext{
			GoName:      goName,
			GoType:      goType(set, f),
			ResolveCode: resolveCodeFor(set, f, goName),
		})
	}
	return ctx
}

func wrapperContextFor(ts *schema.TypeSchema) wrapperContext {
	return wrapperContext{
		StructName:         ts.StructName(),
		WrapperSingular:    schema.Sanitize(ts.WrapperSingular, schema.TypeIdent),
		WrapperNameComment: ts.WrapperName,
		ElemType:           schema.Sanitize(ts.WrapperSingular, schema.TypeIdent),
	}
}

// goType maps a derived FieldSchema to a Go field type. Optional scalars and
// optional nested entities become pointers so the zero value is
// distinguishable from "present with the zero value"; plural fields are
// always the map-backed wrapper type, never a pointer (an absent plural
// reads back as the empty map its FromChildren constructor makes).
func goType(set *schema.Set, f schema.FieldSchema) string {
	var base string
	switch f.Kind {
	case schema.StringField:
		base = "string"
	case schema.IntegerField:
		base = "int64"
	case schema.FloatField:
		base = "float64"
	case schema.BooleanField:
		base = "bool"
	case schema.EntityField:
		base = schema.Sanitize(f.NestedType, schema.TypeIdent)
	case schema.PluralField:
		if wrapper, ok := set.Types[f.PluralWrapper]; ok {
			return wrapper.StructName()
		}
		return "map[string]any"
	default:
		base = "any"
	}
	if f.Optional {
		return "*" + base
	}
	return base
}

// resolveCodeFor renders the statement(s) that populate v.goName inside a
// FromEntity constructor, implementing the generator contract per entity
// type: scalars are read via a model-kind match with a zero-value fallback
// on mismatch, required children default to the zero value when absent,
// optional children stay the empty pointer, and plural children resolve via
// children_of_plural under the field's own source name.
func resolveCodeFor(set *schema.Set, f schema.FieldSchema, goName string) string {
	switch f.Kind {
	case schema.FloatField:
		// A field widened from Integer also accepts Integer values, converted.
		assign := fmt.Sprintf("v.%s = fv", goName)
		if f.Optional {
			assign = fmt.Sprintf("v.%s = &fv", goName)
		}
		return fmt.Sprintf(`if sv, ok := n.Fields.Get(%q); ok && (sv.Kind == model.Float || sv.Kind == model.Integer) {
	fv := sv.Float64
	if sv.Kind == model.Integer {
		fv = float64(sv.Int)
	}
	%s
}`, f.SourceName, assign)

	case schema.StringField, schema.IntegerField, schema.BooleanField:
		modelKind, accessor := scalarAccessor(f.Kind)
		if f.Optional {
			return fmt.Sprintf(`if sv, ok := n.Fields.Get(%q); ok && sv.Kind == %s {
	val := sv.%s
	v.%s = &val
}`, f.SourceName, modelKind, accessor, goName)
		}
		return fmt.Sprintf(`if sv, ok := n.Fields.Get(%q); ok && sv.Kind == %s {
	v.%s = sv.%s
}`, f.SourceName, modelKind, goName, accessor)

	case schema.EntityField:
		nestedName := schema.Sanitize(f.NestedType, schema.TypeIdent)
		if f.Optional {
			return fmt.Sprintf(`if cid, ok := m.FindChildEntityByName(id, %q); ok {
	child := New%sFromEntity(m, cid)
	v.%s = &child
}`, f.SourceName, nestedName, goName)
		}
		return fmt.Sprintf(`if cid, ok := m.FindChildEntityByName(id, %q); ok {
	v.%s = New%sFromEntity(m, cid)
}`, f.SourceName, goName, nestedName)

	case schema.PluralField:
		wrapperName := schema.Sanitize(f.PluralWrapper, schema.TypeIdent)
		if wrapper, ok := set.Types[f.PluralWrapper]; ok {
			wrapperName = wrapper.StructName()
		}
		return fmt.Sprintf(`v.%s = New%sFromChildren(m, id, %q)`, goName, wrapperName, f.SourceName)

	default:
		return ""
	}
}

func scalarAccessor(kind schema.FieldKind) (modelKind, accessor string) {
	switch kind {
	case schema.StringField:
		return "model.String", "Str"
	case schema.IntegerField:
		return "model.Integer", "Int"
	case schema.FloatField:
		return "model.Float", "Float64"
	case schema.BooleanField:
		return "model.Boolean", "Bool"
	default:
		return "", ""
	}
}

func mustParse(name, body string) *template.Template {
	t, err := template.New(name).Parse(body)
	if err != nil {
		panic(fmt.Sprintf("cola/codegen: template %q does not parse: %v", name, err))
	}
	return t
}
