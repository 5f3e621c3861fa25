package schema

import (
	"slices"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"go.yaml.in/yaml/v4"
)

// Kind names a schema variant.
type Kind string

// Schema variants, as reported by Schema.Kind.
const (
	KindObject      Kind = "object"
	KindArray       Kind = "array"
	KindComposition Kind = "composition"
	KindOther       Kind = "other"
)

// Schema is a typed view over a schema mapping node.
// The set of implementations is closed: ObjectSchema, ArraySchema,
// CompositionSchema, and OtherSchema.
type Schema interface {
	// Node returns the underlying mapping node.
	Node() *yaml.Node
	// Kind reports the variant.
	Kind() Kind
	// Children returns the nested schemas.
	Children() *Subschemas

	sealed()
}

// Property is one named entry of a properties mapping.
type Property struct {
	Name   string
	Schema Schema
}

// Subschemas holds the nested schemas a schema node can carry.
// A nil field means the keyword is absent or does not hold a schema. List
// elements keep their source positions; an element that is not a mapping
// is nil.
type Subschemas struct {
	Properties           []Property
	Items                Schema
	AllOf                []Schema
	OneOf                []Schema
	AnyOf                []Schema
	AdditionalProperties Schema
}

// Len returns the number of nested schemas.
func (s *Subschemas) Len() int {
	n := len(s.Properties)
	for _, list := range [][]Schema{s.AllOf, s.OneOf, s.AnyOf} {
		for _, sub := range list {
			if sub != nil {
				n++
			}
		}
	}
	if s.Items != nil {
		n++
	}
	if s.AdditionalProperties != nil {
		n++
	}
	return n
}

type base struct {
	node *yaml.Node
	Subschemas
}

func (b *base) Node() *yaml.Node      { return b.node }
func (b *base) Children() *Subschemas { return &b.Subschemas }
func (*base) sealed()                 {}

// ObjectSchema is a schema describing an object.
type ObjectSchema struct{ base }

// ArraySchema is a schema describing an array.
type ArraySchema struct{ base }

// CompositionSchema is a schema built from allOf, oneOf, or anyOf.
type CompositionSchema struct{ base }

// OtherSchema is any schema that is not an object, array, or composition.
type OtherSchema struct{ base }

func (*ObjectSchema) Kind() Kind      { return KindObject }
func (*ArraySchema) Kind() Kind       { return KindArray }
func (*CompositionSchema) Kind() Kind { return KindComposition }
func (*OtherSchema) Kind() Kind       { return KindOther }

// Parse builds the typed view of node and all of its subschemas.
// It returns nil when node is not a mapping.
//
// Composition keywords take precedence, then array, then object: a schema
// with both allOf and properties is a CompositionSchema whose Properties
// are still populated.
func Parse(node *yaml.Node) Schema {
	if !nodeutil.IsMapping(node) {
		return nil
	}
	b := base{node: node, Subschemas: parseSubschemas(node)}
	switch {
	case hasSequence(node, "allOf", "oneOf", "anyOf"):
		return &CompositionSchema{b}
	case HasType(node, "array") || nodeutil.Has(node, "items"):
		return &ArraySchema{b}
	case HasType(node, "object") || nodeutil.Has(node, "properties") || nodeutil.Has(node, "additionalProperties"):
		return &ObjectSchema{b}
	default:
		return &OtherSchema{b}
	}
}

func parseSubschemas(node *yaml.Node) Subschemas {
	var subs Subschemas
	for name, prop := range nodeutil.Pairs(nodeutil.Get(node, "properties")) {
		if s := Parse(prop); s != nil {
			subs.Properties = append(subs.Properties, Property{Name: name, Schema: s})
		}
	}
	// A sequence under items is the tuple form, which has no single schema.
	subs.Items = Parse(nodeutil.Get(node, "items"))
	subs.AllOf = parseList(nodeutil.Get(node, "allOf"))
	subs.OneOf = parseList(nodeutil.Get(node, "oneOf"))
	subs.AnyOf = parseList(nodeutil.Get(node, "anyOf"))
	subs.AdditionalProperties = Parse(nodeutil.Get(node, "additionalProperties"))
	return subs
}

func parseList(seq *yaml.Node) []Schema {
	if !nodeutil.IsSequence(seq) {
		return nil
	}
	out := make([]Schema, len(seq.Content))
	for i, item := range seq.Content {
		out[i] = Parse(item)
	}
	return out
}

func hasSequence(node *yaml.Node, keys ...string) bool {
	for _, k := range keys {
		if nodeutil.IsSequence(nodeutil.Get(node, k)) {
			return true
		}
	}
	return false
}

// Types returns the declared type names of a schema node: one entry for a
// scalar type, every string entry for a type list, nil when absent.
func Types(node *yaml.Node) []string {
	t := nodeutil.Get(node, "type")
	switch {
	case nodeutil.IsScalar(t):
		return []string{t.Value}
	case nodeutil.IsSequence(t):
		out := make([]string, 0, len(t.Content))
		for _, item := range t.Content {
			if nodeutil.IsScalar(item) {
				out = append(out, item.Value)
			}
		}
		return out
	default:
		return nil
	}
}

// HasType reports whether the node declares name as its type or as a member
// of its type list.
func HasType(node *yaml.Node, name string) bool {
	return slices.Contains(Types(node), name)
}
