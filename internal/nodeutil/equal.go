package nodeutil

import "go.yaml.in/yaml/v4"

// Equal reports whether a and b hold the same data. Mapping key order,
// styles, comments, and source positions are ignored; scalars compare by
// resolved tag and value.
func Equal(a, b *yaml.Node) bool {
	if a != nil && a.Kind == yaml.AliasNode {
		a = a.Alias
	}
	if b != nil && b.Kind == yaml.AliasNode {
		b = b.Alias
	}
	if a == nil || b == nil {
		return a == b
	}
	a, b = Root(a), Root(b)
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case yaml.ScalarNode:
		return a.ShortTag() == b.ShortTag() && a.Value == b.Value
	case yaml.SequenceNode:
		if len(a.Content) != len(b.Content) {
			return false
		}
		for i := range a.Content {
			if !Equal(a.Content[i], b.Content[i]) {
				return false
			}
		}
		return true
	case yaml.MappingNode:
		if Len(a) != Len(b) {
			return false
		}
		for key, av := range Pairs(a) {
			bv := Get(b, key)
			if bv == nil || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
