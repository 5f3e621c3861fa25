package parser

import (
	"iter"
	"slices"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"go.yaml.in/yaml/v4"
)

// HTTP methods that may appear as operations on a path item, in the order
// the OpenAPI specification lists them.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// AllMethods lists every operation key of a path item.
var AllMethods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// Document is an OpenAPI description held as an ordered node tree.
//
// The tree is not validated beyond having a mapping root; accessors return
// nil for anything that is missing or has the wrong shape.
type Document struct {
	root *yaml.Node
}

// NewDocument wraps a mapping node. A nil root yields an empty document.
func NewDocument(root *yaml.Node) *Document {
	if root == nil {
		root = nodeutil.Mapping()
	}
	return &Document{root: root}
}

// Node returns the root mapping node.
func (d *Document) Node() *yaml.Node {
	return d.root
}

// Copy returns a deep copy of the document that shares no nodes with d.
func (d *Document) Copy() *Document {
	return &Document{root: nodeutil.DeepCopy(d.root)}
}

// Schemas returns the components.schemas mapping, or nil.
func (d *Document) Schemas() *yaml.Node {
	schemas := nodeutil.GetPath(d.root, "components", "schemas")
	if !nodeutil.IsMapping(schemas) {
		return nil
	}
	return schemas
}

// EnsureSchemas returns the components.schemas mapping, creating
// components and schemas as needed.
func (d *Document) EnsureSchemas() *yaml.Node {
	components := nodeutil.EnsureMapping(d.root, "components")
	return nodeutil.EnsureMapping(components, "schemas")
}

// Schema returns the named component schema, or nil.
func (d *Document) Schema(name string) *yaml.Node {
	return nodeutil.Get(d.Schemas(), name)
}

// Paths returns the paths mapping, or nil.
func (d *Document) Paths() *yaml.Node {
	paths := nodeutil.Get(d.root, "paths")
	if !nodeutil.IsMapping(paths) {
		return nil
	}
	return paths
}

// PathItems iterates the path items in document order. Entries whose value
// is not a mapping are skipped.
func (d *Document) PathItems() iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		for path, item := range nodeutil.Pairs(d.Paths()) {
			if !nodeutil.IsMapping(item) {
				continue
			}
			if !yield(path, item) {
				return
			}
		}
	}
}

// Operation is one method entry of a path item.
type Operation struct {
	// Path is the URL template the operation belongs to
	Path string
	// Method is the lower-case method key
	Method string
	// Node is the operation object mapping
	Node *yaml.Node
}

// Operations iterates the operations of every path item, in document order,
// restricted to methods. With no methods, AllMethods is used. Operation
// values that are not mappings are skipped.
func (d *Document) Operations(methods ...string) iter.Seq[Operation] {
	if len(methods) == 0 {
		methods = AllMethods
	}
	return func(yield func(Operation) bool) {
		for path, item := range d.PathItems() {
			for method, op := range nodeutil.Pairs(item) {
				if !slices.Contains(methods, method) || !nodeutil.IsMapping(op) {
					continue
				}
				if !yield(Operation{Path: path, Method: method, Node: op}) {
					return
				}
			}
		}
	}
}

// Stats returns statistics for the document.
func (d *Document) Stats() DocumentStats {
	stats := DocumentStats{
		PathCount:   nodeutil.Len(d.Paths()),
		SchemaCount: nodeutil.Len(d.Schemas()),
	}
	for range d.Operations() {
		stats.OperationCount++
	}
	return stats
}

// DocumentStats contains statistical information about a document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of component schemas
}
