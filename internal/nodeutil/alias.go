package nodeutil

import (
	"errors"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// MaxAliasNodes is the default number of nodes ExpandAliases may produce by
// copying alias targets.
const MaxAliasNodes = 1 << 20

var (
	// ErrAliasCycle indicates an alias whose target contains the alias itself.
	ErrAliasCycle = errors.New("alias refers to an enclosing anchor")

	// ErrAliasExpansion indicates alias expansion produced too many nodes.
	ErrAliasExpansion = errors.New("alias expansion exceeds node limit")
)

// AliasError reports an alias node that could not be expanded.
type AliasError struct {
	// Anchor is the anchor name the alias refers to
	Anchor string

	// Line and Column locate the alias in the source
	Line   int
	Column int

	// Err is ErrAliasCycle or ErrAliasExpansion
	Err error
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("alias *%s at line %d, column %d: %v", e.Anchor, e.Line, e.Column, e.Err)
}

func (e *AliasError) Unwrap() error {
	return e.Err
}

// ExpandAliases returns a copy of n like DeepCopy, but fails with an
// *AliasError instead of recursing forever on an alias cycle, and stops once
// more than limit nodes have been copied from alias targets. A limit of zero
// or less disables the node limit.
func ExpandAliases(n *yaml.Node, limit int) (*yaml.Node, error) {
	e := &expander{limit: limit, active: make(map[*yaml.Node]bool)}
	return e.copy(n, nil)
}

type expander struct {
	limit    int
	expanded int

	// active holds the nodes on the current copy path
	active map[*yaml.Node]bool
}

// copy copies n. via is the innermost alias being expanded, or nil.
func (e *expander) copy(n, via *yaml.Node) (*yaml.Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		if e.active[n.Alias] {
			return nil, aliasError(n, ErrAliasCycle)
		}
		return e.copy(n.Alias, n)
	}
	if via != nil {
		e.expanded++
		if e.limit > 0 && e.expanded > e.limit {
			return nil, aliasError(via, ErrAliasExpansion)
		}
	}

	e.active[n] = true
	defer delete(e.active, n)

	c := *n
	c.Anchor = ""
	c.Alias = nil
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			cc, err := e.copy(child, via)
			if err != nil {
				return nil, err
			}
			c.Content[i] = cc
		}
	}
	return &c, nil
}

func aliasError(alias *yaml.Node, err error) *AliasError {
	return &AliasError{Anchor: alias.Value, Line: alias.Line, Column: alias.Column, Err: err}
}
