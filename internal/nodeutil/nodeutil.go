// Package nodeutil provides helpers for reading and mutating yaml.Node trees
// as ordered mappings.
//
// All mapping helpers follow the same key semantics: assigning a key that
// already exists replaces its value in place, so the key keeps its position;
// assigning a new key appends it. Output order is therefore insertion order.
package nodeutil

import (
	"iter"
	"strings"

	"go.yaml.in/yaml/v4"
)

// IsMapping reports whether n is a non-nil mapping node.
func IsMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n is a non-nil sequence node.
func IsSequence(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsScalar reports whether n is a non-nil scalar node.
func IsScalar(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode
}

// IsTrue reports whether n is the boolean scalar true.
// The string "true" does not count.
func IsTrue(n *yaml.Node) bool {
	return IsScalar(n) && n.ShortTag() == "!!bool" && strings.EqualFold(n.Value, "true")
}

// IsNull reports whether n is a null scalar.
func IsNull(n *yaml.Node) bool {
	return IsScalar(n) && n.ShortTag() == "!!null"
}

// StringValue returns the value of a non-empty string scalar.
func StringValue(n *yaml.Node) (string, bool) {
	if !IsScalar(n) || n.ShortTag() != "!!str" || n.Value == "" {
		return "", false
	}
	return n.Value, true
}

// Get returns the value stored under key in mapping m, or nil.
func Get(m *yaml.Node, key string) *yaml.Node {
	if !IsMapping(m) {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Kind == yaml.ScalarNode && m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// Has reports whether mapping m contains key.
func Has(m *yaml.Node, key string) bool {
	return Get(m, key) != nil
}

// GetPath follows a chain of mapping keys from m.
func GetPath(m *yaml.Node, keys ...string) *yaml.Node {
	cur := m
	for _, k := range keys {
		cur = Get(cur, k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Set stores val under key in mapping m and reports whether an existing
// value was replaced.
func Set(m *yaml.Node, key string, val *yaml.Node) bool {
	if !IsMapping(m) {
		return false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Kind == yaml.ScalarNode && m.Content[i].Value == key {
			m.Content[i+1] = val
			return true
		}
	}
	m.Content = append(m.Content, String(key), val)
	return false
}

// Delete removes key from mapping m and returns the removed value, or nil.
func Delete(m *yaml.Node, key string) *yaml.Node {
	if !IsMapping(m) {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Kind == yaml.ScalarNode && m.Content[i].Value == key {
			val := m.Content[i+1]
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return val
		}
	}
	return nil
}

// EnsureMapping returns the mapping stored under key in m, installing an
// empty mapping when the key is absent or holds something else.
func EnsureMapping(m *yaml.Node, key string) *yaml.Node {
	if child := Get(m, key); IsMapping(child) {
		return child
	}
	child := Mapping()
	Set(m, key, child)
	return child
}

// Pairs iterates the key/value pairs of mapping m in document order.
// Non-scalar keys are skipped.
func Pairs(m *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		if !IsMapping(m) {
			return
		}
		for i := 0; i+1 < len(m.Content); i += 2 {
			if m.Content[i].Kind != yaml.ScalarNode {
				continue
			}
			if !yield(m.Content[i].Value, m.Content[i+1]) {
				return
			}
		}
	}
}

// Keys returns the keys of mapping m in document order.
func Keys(m *yaml.Node) []string {
	if !IsMapping(m) {
		return nil
	}
	keys := make([]string, 0, len(m.Content)/2)
	for k := range Pairs(m) {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of pairs in mapping m or items in sequence m.
func Len(n *yaml.Node) int {
	switch {
	case IsMapping(n):
		return len(n.Content) / 2
	case IsSequence(n):
		return len(n.Content)
	default:
		return 0
	}
}

// DeepCopy returns an independent copy of n. Alias nodes are replaced by a
// copy of their target and anchors are dropped, so the copy never encodes
// with back-references. n must be free of alias cycles; decoded input goes
// through ExpandAliases first.
func DeepCopy(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return DeepCopy(n.Alias)
	}
	c := *n
	c.Anchor = ""
	c.Alias = nil
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = DeepCopy(child)
		}
	}
	return &c
}

// Normalize clears presentation details in place: quoting, flow and block
// scalar styles, and comments. Explicit tags are kept. The encoder then picks
// its default style for every node, which keeps JSON-sourced trees from
// leaking flow syntax into YAML output.
func Normalize(n *yaml.Node) {
	if n == nil {
		return
	}
	n.Style &= yaml.TaggedStyle
	n.HeadComment = ""
	n.LineComment = ""
	n.FootComment = ""
	for _, child := range n.Content {
		Normalize(child)
	}
}

// Root returns the top-level content of a document node, or n itself.
func Root(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return n.Content[0]
	}
	return n
}
