// Package schema derives a target-language type schema (spec.md §3.2, §4.4)
// from a built configuration model: one TypeSchema per distinct entity type
// key, with fields unioned and optionality inferred across sibling
// instances.
package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/colalang/cola/cola/model"
)

// FieldKind is the semantic type of a schema field.
type FieldKind int

const (
	StringField FieldKind = iota + 1
	IntegerField
	FloatField
	BooleanField
	EntityField  // nested entity, NestedType names the referenced TypeSchema
	PluralField  // nested plural collection, NestedType names the singular TypeSchema
)

// FieldSchema describes one field of a TypeSchema.
type FieldSchema struct {
	SourceName    string
	SanitizedName string
	Kind          FieldKind
	Optional      bool
	NestedType    string // set when Kind is EntityField or PluralField
	PluralWrapper string // set when Kind is PluralField: the wrapper type name
}

// TypeSchema is the derived record type for one entity type key.
type TypeSchema struct {
	TypeKey        string // the declared type name, or "plural:<singular>" for a plural wrapper
	Fields         []FieldSchema
	IsPluralMember bool // true if this type is ever used as a plural's singular type

	// Set only when this TypeSchema is itself a plural wrapper.
	IsPluralWrapper bool
	WrapperSingular string // TypeKey of the wrapped singular type
	WrapperName     string // the plural collection name from source
}

// Set is the full derived schema for one model: every TypeSchema discovered,
// plus the root's type key for the generator's entry point.
type Set struct {
	Types   map[string]*TypeSchema
	Order   []string // TypeKeys in emission order, after TopologicalSort
	RootKey string
}

// StructName returns the sanitized Go type name for ts. Wrapper TypeSchemas
// are keyed internally as "plural:<singular>", which is not itself a source
// identifier, so their name is derived from WrapperSingular rather than
// sanitizing the synthetic key directly.
func (ts *TypeSchema) StructName() string {
	if ts.IsPluralWrapper {
		return "Plural" + Sanitize(ts.WrapperSingular, TypeIdent)
	}
	return Sanitize(ts.TypeKey, TypeIdent)
}

type instance struct {
	nodeId model.NodeId
	node   model.Node
}

// Infer walks m depth-first from the root (pre-order, children in source
// order, not breadth-first), grouping entity instances by type key in that
// visiting order and unioning their fields, and records one plural wrapper
// per singular type key observed in a plural position.
func Infer(m *model.Model) (*Set, []Error) {
	inf := &inferer{
		m:         m,
		instances: map[string][]instance{},
		pluralOf:  map[string]string{}, // singular type key -> plural wrapper name
	}
	inf.walk(m.RootId())

	set := &Set{Types: map[string]*TypeSchema{}, RootKey: "Root"}
	for typeKey, insts := range inf.instances {
		ts, errs := inf.buildTypeSchema(typeKey, insts)
		if len(errs) > 0 {
			inf.errs = append(inf.errs, errs...)
			continue
		}
		set.Types[typeKey] = ts
	}
	for singular, wrapperName := range inf.pluralOf {
		if ts, ok := set.Types[singular]; ok {
			ts.IsPluralMember = true
		}
		wrapperKey := "plural:" + singular
		set.Types[wrapperKey] = &TypeSchema{
			TypeKey:         wrapperKey,
			IsPluralWrapper: true,
			WrapperSingular: singular,
			WrapperName:     wrapperName,
		}
	}

	order, err := TopologicalSort(set)
	if err != nil {
		inf.errs = append(inf.errs, Error{Message: err.Error()})
	}
	set.Order = order

	return set, inf.errs
}

type inferer struct {
	m         *model.Model
	instances map[string][]instance
	pluralOf  map[string]string
	errs      []Error
}

func (inf *inferer) walk(id model.NodeId) {
	n, ok := inf.m.GetNode(id)
	if !ok {
		return
	}
	switch n.Kind {
	case model.EntityNode:
		typeKey := n.TypeName
		if typeKey == "" {
			typeKey = n.Name
		}
		inf.instances[typeKey] = append(inf.instances[typeKey], instance{nodeId: id, node: n})
		for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
			inf.walk(pair.Value)
		}
	case model.PluralNode:
		inf.pluralOf[n.SingularType] = n.PluralName
		for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
			inf.walk(pair.Value)
		}
	}
}

// buildTypeSchema unions the field sets of every instance of typeKey,
// inferring optionality and reconciling scalar type mismatches.
func (inf *inferer) buildTypeSchema(typeKey string, insts []instance) (*TypeSchema, []Error) {
	union := orderedmap.New[string, FieldSchema]()
	var errs []Error

	presence := map[string]int{}

	for _, in := range insts {
		for pair := in.node.Fields.Oldest(); pair != nil; pair = pair.Next() {
			name, scalar := pair.Key, pair.Value
			kind := scalarKind(scalar)
			presence[name]++
			existing, ok := union.Get(name)
			if !ok {
				union.Set(name, FieldSchema{SourceName: name, Kind: kind})
				continue
			}
			if existing.Kind == kind {
				continue
			}
			if (existing.Kind == IntegerField && kind == FloatField) || (existing.Kind == FloatField && kind == IntegerField) {
				existing.Kind = FloatField
				union.Set(name, existing)
				continue
			}
			errs = append(errs, Error{TypeName: typeKey, Field: name, Message: "incompatible scalar kinds across sibling instances"})
		}

		for pair := in.node.Children.Oldest(); pair != nil; pair = pair.Next() {
			name, childId := pair.Key, pair.Value
			child, ok := inf.m.GetNode(childId)
			if !ok {
				continue
			}
			presence[name]++
			fs := toChildFieldSchema(name, child)
			if existing, ok := union.Get(name); ok {
				if existing.Kind != fs.Kind || existing.NestedType != fs.NestedType {
					errs = append(errs, Error{TypeName: typeKey, Field: name, Message: "incompatible child kinds across sibling instances"})
				}
				continue
			}
			union.Set(name, fs)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	n := len(insts)
	for pair := union.Oldest(); pair != nil; pair = pair.Next() {
		fs := pair.Value
		fs.Optional = presence[pair.Key] < n
		union.Set(pair.Key, fs)
	}

	ts := &TypeSchema{TypeKey: typeKey}
	for pair := union.Oldest(); pair != nil; pair = pair.Next() {
		ts.Fields = append(ts.Fields, pair.Value)
	}
	return ts, nil
}

func toChildFieldSchema(name string, child model.Node) FieldSchema {
	if child.Kind == model.PluralNode {
		return FieldSchema{
			SourceName:    name,
			Kind:          PluralField,
			NestedType:    child.SingularType,
			PluralWrapper: "plural:" + child.SingularType,
		}
	}
	typeKey := child.TypeName
	if typeKey == "" {
		typeKey = child.Name
	}
	return FieldSchema{SourceName: name, Kind: EntityField, NestedType: typeKey}
}

func scalarKind(s model.Scalar) FieldKind {
	switch s.Kind {
	case model.String:
		return StringField
	case model.Integer:
		return IntegerField
	case model.Float:
		return FloatField
	case model.Boolean:
		return BooleanField
	default:
		return 0
	}
}

// Error is a schema-inference impossibility: incompatible scalar kinds for
// the same field across sibling instances of a type.
type Error struct {
	TypeName string
	Field    string
	Message  string
}
