package fixer

import (
	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/internal/pathutil"
	"github.com/erraggy/oasconsolidate/parser"
	"github.com/erraggy/oasconsolidate/schema"
	"go.yaml.in/yaml/v4"
)

// FixCompatibility rewrites OAS 3.0 schema syntax into its 3.1 form on every
// schema reachable from components.schemas and from operation parameters,
// request bodies, and responses:
//
//   - nullable: true is removed and "null" joins the type (a single type
//     becomes [type, "null"]; a list gains "null" if missing; a schema with
//     no type only loses the marker)
//   - example is removed, and becomes examples: [value] unless examples is
//     already present
//
// Running it again on its output changes nothing.
func FixCompatibility(doc *parser.Document) []Fix {
	return fixCompatibility(doc, true, true)
}

// SchemaRoots returns the schema nodes the compatibility fixes start from,
// keyed by JSON path, in document order.
func SchemaRoots(doc *parser.Document) []SchemaRoot {
	var roots []SchemaRoot
	add := func(path string, n *yaml.Node) {
		if nodeutil.IsMapping(n) {
			roots = append(roots, SchemaRoot{Path: path, Node: n})
		}
	}

	for name, s := range nodeutil.Pairs(doc.Schemas()) {
		add(pathutil.Schema(name), s)
	}

	for op := range doc.Operations() {
		base := pathutil.Operation(op.Path, op.Method)

		if params := nodeutil.Get(op.Node, "parameters"); nodeutil.IsSequence(params) {
			for i, param := range params.Content {
				add(pathutil.Field(pathutil.Index(pathutil.Field(base, "parameters"), i), "schema"), nodeutil.Get(param, "schema"))
			}
		}

		for mediaType, media := range nodeutil.Pairs(nodeutil.GetPath(op.Node, "requestBody", "content")) {
			add(pathutil.Field(pathutil.Key(pathutil.Field(base, "requestBody.content"), mediaType), "schema"), nodeutil.Get(media, "schema"))
		}

		for code, resp := range nodeutil.Pairs(nodeutil.Get(op.Node, "responses")) {
			for mediaType, media := range nodeutil.Pairs(nodeutil.Get(resp, "content")) {
				responsePath := pathutil.Key(pathutil.Field(base, "responses"), code)
				add(pathutil.Field(pathutil.Key(pathutil.Field(responsePath, "content"), mediaType), "schema"), nodeutil.Get(media, "schema"))
			}
		}
	}
	return roots
}

// SchemaRoot is a top-level schema node and its location.
type SchemaRoot struct {
	Path string
	Node *yaml.Node
}

func fixCompatibility(doc *parser.Document, nullable, examples bool) []Fix {
	var fixes []Fix
	for _, root := range SchemaRoots(doc) {
		schema.Walk(schema.Parse(root.Node), root.Path, func(path string, s schema.Schema) schema.Action {
			node := s.Node()
			if nullable {
				if fix, ok := foldNullable(node, path); ok {
					fixes = append(fixes, fix)
				}
			}
			if examples {
				if fix, ok := pluralizeExample(node, path); ok {
					fixes = append(fixes, fix)
				}
			}
			return schema.Continue
		})
	}
	return fixes
}

// foldNullable removes nullable: true and adds "null" to the type.
func foldNullable(node *yaml.Node, path string) (Fix, bool) {
	if !nodeutil.IsTrue(nodeutil.Get(node, "nullable")) {
		return Fix{}, false
	}
	nodeutil.Delete(node, "nullable")

	fix := Fix{
		Type:        FixTypeNullableToTypeUnion,
		Path:        path,
		Description: "removed nullable marker",
		Before:      "nullable: true",
	}

	typ := nodeutil.Get(node, "type")
	switch {
	case nodeutil.IsScalar(typ):
		name, ok := nodeutil.StringValue(typ)
		if !ok {
			return fix, true
		}
		union := nodeutil.Sequence(nodeutil.String(name), nodeutil.String("null"))
		nodeutil.Set(node, "type", union)
		fix.Description = "folded nullable into type union"
		fix.Before = name
		fix.After = describe(union)

	case nodeutil.IsSequence(typ) && len(typ.Content) > 0:
		if hasNullString(typ) {
			return fix, true
		}
		before := describe(typ)
		typ.Content = append(typ.Content, nodeutil.String("null"))
		fix.Description = "added null to type list"
		fix.Before = before
		fix.After = describe(typ)
	}
	return fix, true
}

func hasNullString(seq *yaml.Node) bool {
	for _, item := range seq.Content {
		if v, ok := nodeutil.StringValue(item); ok && v == "null" {
			return true
		}
	}
	return false
}

// pluralizeExample moves example into examples. An existing examples
// keyword wins and the singular value is dropped.
func pluralizeExample(node *yaml.Node, path string) (Fix, bool) {
	example := nodeutil.Delete(node, "example")
	if example == nil {
		return Fix{}, false
	}
	fix := Fix{
		Type:   FixTypeExampleToExamples,
		Path:   path,
		Before: describe(example),
	}
	if nodeutil.Has(node, "examples") {
		fix.Description = "dropped example; examples already present"
		return fix, true
	}
	examples := nodeutil.Sequence(example)
	nodeutil.Set(node, "examples", examples)
	fix.Description = "moved example into examples"
	fix.After = describe(examples)
	return fix, true
}
