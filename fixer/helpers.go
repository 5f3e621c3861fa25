package fixer

import (
	"strings"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"go.yaml.in/yaml/v4"
)

// describe renders a node as single-line YAML for Fix.Before/After.
func describe(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	c := nodeutil.DeepCopy(n)
	setFlow(c)
	out, err := yaml.Marshal(c)
	if err != nil {
		return n.Value
	}
	return strings.TrimSpace(string(out))
}

func setFlow(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style |= yaml.FlowStyle
	}
	for _, child := range n.Content {
		setFlow(child)
	}
}
