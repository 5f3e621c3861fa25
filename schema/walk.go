package schema

import (
	"fmt"

	"github.com/erraggy/oasconsolidate/internal/pathutil"
)

// Action controls the walk after visiting a schema.
type Action int

const (
	// Continue visits the schema's children and then its siblings.
	Continue Action = iota
	// SkipChildren skips the schema's children but continues with siblings.
	SkipChildren
	// Stop ends the walk. No more schemas are visited.
	Stop
)

// String returns the name of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// VisitFunc is called for each schema with its JSON path.
type VisitFunc func(path string, s Schema) Action

// Walk visits s and its subschemas in pre-order. Children are visited in
// the order properties, items, allOf, oneOf, anyOf, additionalProperties.
// Walk does nothing when s is nil.
func Walk(s Schema, path string, visit VisitFunc) {
	walk(s, path, visit)
}

// walk returns false once the walk has been stopped.
func walk(s Schema, basePath string, visit VisitFunc) bool {
	if s == nil {
		return true
	}
	switch visit(basePath, s) {
	case Stop:
		return false
	case SkipChildren:
		return true
	}

	subs := s.Children()
	for _, prop := range subs.Properties {
		if !walk(prop.Schema, pathutil.Key(pathutil.Field(basePath, "properties"), prop.Name), visit) {
			return false
		}
	}
	if !walk(subs.Items, pathutil.Field(basePath, "items"), visit) {
		return false
	}
	if !walkList(subs.AllOf, basePath, "allOf", visit) ||
		!walkList(subs.OneOf, basePath, "oneOf", visit) ||
		!walkList(subs.AnyOf, basePath, "anyOf", visit) {
		return false
	}
	return walk(subs.AdditionalProperties, pathutil.Field(basePath, "additionalProperties"), visit)
}

func walkList(list []Schema, basePath, keyword string, visit VisitFunc) bool {
	for i, sub := range list {
		if !walk(sub, pathutil.Index(pathutil.Field(basePath, keyword), i), visit) {
			return false
		}
	}
	return true
}
