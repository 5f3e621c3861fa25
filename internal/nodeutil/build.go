package nodeutil

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Scalar creates a scalar node with an explicit tag.
func Scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// String creates a string scalar. The encoder quotes values such as "null"
// that would otherwise resolve to another type.
func String(value string) *yaml.Node {
	return Scalar("!!str", value)
}

// Mapping creates a mapping node from alternating key/value arguments.
func Mapping(pairs ...any) *yaml.Node {
	if len(pairs)%2 != 0 {
		panic("nodeutil: Mapping requires key/value pairs")
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("nodeutil: mapping key %d is %T, not string", i/2, pairs[i]))
		}
		Set(m, key, toNode(pairs[i+1]))
	}
	return m
}

// Sequence creates a sequence node holding items.
func Sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

func toNode(v any) *yaml.Node {
	switch val := v.(type) {
	case *yaml.Node:
		return val
	case string:
		return String(val)
	default:
		panic(fmt.Sprintf("nodeutil: unsupported mapping value %T", v))
	}
}

// MustParse parses YAML text into its top-level node. It is meant for
// package-level constants and panics on malformed input.
func MustParse(text string) *yaml.Node {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		panic(fmt.Sprintf("nodeutil: invalid builtin YAML: %v", err))
	}
	root := Root(&doc)
	Normalize(root)
	return root
}
