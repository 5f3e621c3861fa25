package fixer

import (
	"fmt"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/internal/pathutil"
	"github.com/erraggy/oasconsolidate/parser"
	"go.yaml.in/yaml/v4"
)

// ErrorInfoRef is the reference every standard error response points at.
const ErrorInfoRef = pathutil.RefPrefixSchemas + "ErrorInfo"

// StandardError is one of the error responses every operation declares.
type StandardError struct {
	Code        string
	Description string
}

// StandardErrors lists the standard error responses in insertion order.
func StandardErrors() []StandardError {
	return []StandardError{
		{Code: "400", Description: "Bad Request"},
		{Code: "401", Description: "Unauthorized"},
		{Code: "403", Description: "Forbidden"},
		{Code: "404", Description: "Not Found"},
		{Code: "500", Description: "Internal Server Error"},
	}
}

// errorResponseMethods are the methods that receive standard errors.
var errorResponseMethods = []string{
	parser.MethodGet, parser.MethodPost, parser.MethodPut, parser.MethodDelete, parser.MethodPatch,
}

// ErrorContent returns a new content mapping with a JSON body referencing
// ErrorInfo.
func ErrorContent() *yaml.Node {
	return nodeutil.Mapping(
		"application/json", nodeutil.Mapping(
			"schema", nodeutil.Mapping("$ref", ErrorInfoRef),
		),
	)
}

// ErrorResponse returns a new response object for e.
func (e StandardError) ErrorResponse() *yaml.Node {
	return nodeutil.Mapping(
		"description", e.Description,
		"content", ErrorContent(),
	)
}

// NormalizeErrorResponses makes every get, post, put, delete, and patch
// operation declare the standard error responses.
//
// A missing responses mapping is created. A missing code gets a fresh
// canned response appended. A present code keeps its description and has
// its content replaced with the ErrorInfo reference; a present value that
// is not a mapping is replaced by the canned response.
func NormalizeErrorResponses(doc *parser.Document) []Fix {
	return normalizeErrorResponses(doc, true, true)
}

func normalizeErrorResponses(doc *parser.Document, add, normalize bool) []Fix {
	var fixes []Fix
	for op := range doc.Operations(errorResponseMethods...) {
		responses := nodeutil.Get(op.Node, "responses")
		if !nodeutil.IsMapping(responses) {
			if !add {
				continue
			}
			responses = nodeutil.EnsureMapping(op.Node, "responses")
		}
		base := pathutil.Field(pathutil.Operation(op.Path, op.Method), "responses")

		for _, std := range StandardErrors() {
			path := pathutil.Key(base, std.Code)
			existing := nodeutil.Get(responses, std.Code)

			switch {
			case existing == nil || !nodeutil.IsMapping(existing):
				if !add {
					continue
				}
				var before any
				if existing != nil {
					before = describe(existing)
				}
				nodeutil.Set(responses, std.Code, std.ErrorResponse())
				fixes = append(fixes, Fix{
					Type:        FixTypeAddedErrorResponse,
					Path:        path,
					Description: fmt.Sprintf("added %s %s response", std.Code, std.Description),
					Before:      before,
					After:       std.Description,
				})

			default:
				if !normalize {
					continue
				}
				content := ErrorContent()
				old := nodeutil.Get(existing, "content")
				if nodeutil.Equal(old, content) {
					continue
				}
				nodeutil.Set(existing, "content", content)
				var before any
				if old != nil {
					before = describe(old)
				}
				fixes = append(fixes, Fix{
					Type:        FixTypeNormalizedErrorResponse,
					Path:        pathutil.Field(path, "content"),
					Description: fmt.Sprintf("%s response content now references ErrorInfo", std.Code),
					Before:      before,
					After:       describe(content),
				})
			}
		}
	}
	return fixes
}
