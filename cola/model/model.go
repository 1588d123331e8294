// Package model lowers a Cola parse tree into the configuration model: an
// arena of Entity, Plural, and Scalar-bearing nodes addressed by integer id,
// described in spec.md §3.1.
package model

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/colalang/cola/cola/lexer"
	"github.com/colalang/cola/cola/parse"
)

type NodeId int

// ScalarKind tags a scalar field value.
type ScalarKind int

const (
	String ScalarKind = iota + 1
	Integer
	Float
	Boolean
)

type Scalar struct {
	Kind    ScalarKind
	Str     string
	Int     int64
	Float64 float64
	Bool    bool
}

// NodeKind tags which of the two node variants a Node is; scalars are not
// nodes but values stored in an Entity's field table.
type NodeKind int

const (
	EntityNode NodeKind = iota + 1
	PluralNode
)

// Node is a tagged variant: either an Entity or a Plural. Only the fields
// relevant to its Kind are meaningful.
type Node struct {
	Id       NodeId
	Kind     NodeKind
	ParentId NodeId // -1 for the root
	Name     string // instance name (child key in the parent)
	Pos      lexer.Pos

	// EntityNode fields.
	TypeName string // declared singular type name; equals Name unless set by a Plural parent
	Fields   *orderedmap.OrderedMap[string, Scalar]
	Children *orderedmap.OrderedMap[string, NodeId]

	// PluralNode fields.
	SingularType string
	PluralName   string
}

// Model is the arena: every node ever constructed, plus the root's id.
type Model struct {
	nodes  []Node
	rootId NodeId
}

func (m *Model) RootId() NodeId { return m.rootId }

func (m *Model) GetNode(id NodeId) (Node, bool) {
	if id < 0 || int(id) >= len(m.nodes) {
		return Node{}, false
	}
	return m.nodes[id], true
}

// FindChildEntityByName resolves a named child of parent, returning it only
// if it is an Entity node.
func (m *Model) FindChildEntityByName(parent NodeId, name string) (NodeId, bool) {
	p, ok := m.GetNode(parent)
	if !ok || p.Children == nil {
		return 0, false
	}
	id, ok := p.Children.Get(name)
	if !ok {
		return 0, false
	}
	if child, ok := m.GetNode(id); !ok || child.Kind != EntityNode {
		return 0, false
	}
	return id, true
}

// FindChildPluralByName resolves a named child of parent, returning it only
// if it is a Plural node.
func (m *Model) FindChildPluralByName(parent NodeId, name string) (NodeId, bool) {
	p, ok := m.GetNode(parent)
	if !ok || p.Children == nil {
		return 0, false
	}
	id, ok := p.Children.Get(name)
	if !ok {
		return 0, false
	}
	if child, ok := m.GetNode(id); !ok || child.Kind != PluralNode {
		return 0, false
	}
	return id, true
}

// ChildrenOfPlural returns the plural node's children, in source order, as
// (instance name, id) pairs. entity is the Plural node's parent Entity, and
// pluralName is the key the Plural node is stored under in its child table.
func (m *Model) ChildrenOfPlural(entity NodeId, pluralName string) ([]PluralChild, bool) {
	e, ok := m.GetNode(entity)
	if !ok || e.Children == nil {
		return nil, false
	}
	pid, ok := e.Children.Get(pluralName)
	if !ok {
		return nil, false
	}
	p, ok := m.GetNode(pid)
	if !ok || p.Kind != PluralNode {
		return nil, false
	}
	var out []PluralChild
	for pair := p.Children.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, PluralChild{Name: pair.Key, Id: pair.Value})
	}
	return out, true
}

type PluralChild struct {
	Name string
	Id   NodeId
}

// AllNodes exposes the full arena for callers (schema inference) that need
// to walk every node rather than navigate by name.
func (m *Model) AllNodes() []Node { return m.nodes }

func (m *Model) alloc(n Node) NodeId {
	n.Id = NodeId(len(m.nodes))
	m.nodes = append(m.nodes, n)
	return n.Id
}

// Build lowers a parsed Document into a Model, concatenating the top-level
// entities of every ```cola block under one synthetic Root, in document
// order. It accumulates ModelErrors rather than stopping at the first one,
// per spec.md §7.
func Build(doc *parse.Document) (*Model, []Error) {
	b := &builder{m: &Model{}}
	root := Node{
		Kind:     EntityNode,
		ParentId: -1,
		Name:     "Root",
		TypeName: "Root",
		Fields:   orderedmap.New[string, Scalar](),
		Children: orderedmap.New[string, NodeId](),
	}
	rootId := b.m.alloc(root)
	b.m.rootId = rootId

	for _, item := range doc.Items {
		block, ok := item.(parse.ColaBlock)
		if !ok {
			continue
		}
		for _, ent := range block.Entities {
			b.addTopLevelEntity(rootId, ent)
		}
	}
	return b.m, b.errs
}

type builder struct {
	m    *Model
	errs []Error
}

// Error is a structural violation found while lowering the parse tree.
type Error struct {
	Pos     lexer.Pos
	Message string
}

func (b *builder) fail(pos lexer.Pos, format string, args ...any) {
	b.errs = append(b.errs, Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (b *builder) addTopLevelEntity(parentId NodeId, ent parse.Entity) {
	b.attachChild(parentId, ent)
}

// attachChild lowers ent and links it into parent's child table under the
// appropriate key, dispatching on whether ent declares a plural.
func (b *builder) attachChild(parentId NodeId, ent parse.Entity) {
	parent, _ := b.m.GetNode(parentId)

	if ent.IsPlural {
		if _, exists := parent.Children.Get(ent.PluralName); exists {
			b.fail(ent.PluralPos, "duplicate child name %q", ent.PluralName)
			return
		}
		pluralId := b.m.alloc(Node{
			ParentId:     parentId,
			Kind:         PluralNode,
			Name:         ent.PluralName,
			Pos:          ent.Pos,
			SingularType: ent.Name,
			PluralName:   ent.PluralName,
			Children:     orderedmap.New[string, NodeId](),
		})
		parent.Children.Set(ent.PluralName, pluralId)

		if len(ent.Fields) > 0 {
			b.fail(ent.Pos, "field list directly under plural %q is not allowed", ent.PluralName)
		}
		for _, child := range ent.Children {
			b.attachPluralChild(pluralId, ent.Name, child)
		}
		return
	}

	if _, exists := parent.Children.Get(ent.Name); exists {
		b.fail(ent.Pos, "duplicate child name %q", ent.Name)
		return
	}
	entId := b.lowerEntity(parentId, ent.Name, ent)
	parent.Children.Set(ent.Name, entId)
}

// attachPluralChild lowers a nested Entity found directly inside a Plural
// body; its declared type is forced to the plural's singular type name
// regardless of its own source name, per spec.md §4.3.
func (b *builder) attachPluralChild(pluralId NodeId, singularType string, ent parse.Entity) {
	plural, _ := b.m.GetNode(pluralId)
	if _, exists := plural.Children.Get(ent.Name); exists {
		b.fail(ent.Pos, "duplicate instance name %q in plural", ent.Name)
		return
	}
	entId := b.lowerEntity(pluralId, singularType, ent)
	plural.Children.Set(ent.Name, entId)
}

// lowerEntity builds one Entity node (declared type typeName, instance name
// ent.Name) and recursively lowers its fields and nested children.
func (b *builder) lowerEntity(parentId NodeId, typeName string, ent parse.Entity) NodeId {
	id := b.m.alloc(Node{
		ParentId: parentId,
		Kind:     EntityNode,
		Name:     ent.Name,
		TypeName: typeName,
		Pos:      ent.Pos,
		Fields:   orderedmap.New[string, Scalar](),
		Children: orderedmap.New[string, NodeId](),
	})

	node, _ := b.m.GetNode(id)
	for _, f := range ent.Fields {
		if _, exists := node.Fields.Get(f.Name); exists {
			b.fail(f.Pos, "duplicate field name %q in entity %q", f.Name, ent.Name)
			continue
		}
		scalar, err := lowerScalar(f.Value)
		if err != nil {
			b.fail(f.Pos, "%s", err)
			continue
		}
		node.Fields.Set(f.Name, scalar)
	}

	for _, child := range ent.Children {
		b.attachChild(id, child)
	}

	return id
}
