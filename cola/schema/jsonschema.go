package schema

import (
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToJSONSchema renders set as a JSON Schema document rooted at rootKey, with
// one definition per derived TypeSchema under $defs, grounded on the
// pack's jsonschema-go usage: a *jsonschema.Schema tree built field by field
// rather than marshaled through reflection, since a TypeSchema has no Go
// struct of its own to reflect over yet (codegen emits one afterwards).
func ToJSONSchema(set *Set, rootKey string) (*jsonschema.Schema, error) {
	if _, ok := set.Types[rootKey]; !ok {
		return nil, fmt.Errorf("cola/schema: unknown root type key %q", rootKey)
	}

	defs := map[string]*jsonschema.Schema{}
	keys := make([]string, 0, len(set.Types))
	for k := range set.Types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ts := set.Types[k]
		defs[ts.StructName()] = typeToSchema(set, ts)
	}

	out := refSchema(set.Types[rootKey].StructName())
	out.Schema = "https://json-schema.org/draft/2020-12/schema"
	out.Defs = defs
	return out, nil
}

func typeToSchema(set *Set, ts *TypeSchema) *jsonschema.Schema {
	if ts.IsPluralWrapper {
		return &jsonschema.Schema{
			Type:                 "object",
			Title:                ts.WrapperName,
			AdditionalProperties: refSchema(Sanitize(ts.WrapperSingular, TypeIdent)),
		}
	}

	s := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}
	for _, f := range ts.Fields {
		s.Properties[f.SourceName] = fieldToSchema(set, f)
		if !f.Optional {
			s.Required = append(s.Required, f.SourceName)
		}
	}
	return s
}

func fieldToSchema(set *Set, f FieldSchema) *jsonschema.Schema {
	switch f.Kind {
	case StringField:
		return &jsonschema.Schema{Type: "string"}
	case IntegerField:
		return &jsonschema.Schema{Type: "integer"}
	case FloatField:
		return &jsonschema.Schema{Type: "number"}
	case BooleanField:
		return &jsonschema.Schema{Type: "boolean"}
	case EntityField:
		return refSchema(Sanitize(f.NestedType, TypeIdent))
	case PluralField:
		if wrapper, ok := set.Types[f.PluralWrapper]; ok {
			return refSchema(wrapper.StructName())
		}
		return refSchema(Sanitize(f.PluralWrapper, TypeIdent))
	default:
		return &jsonschema.Schema{}
	}
}

func refSchema(defName string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/$defs/" + defName}
}
