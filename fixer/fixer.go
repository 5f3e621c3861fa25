package fixer

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasconsolidate/parser"
)

// FixType identifies the type of fix applied
type FixType string

const (
	// FixTypeReconciledOperationID indicates an RPC operation's operationId was
	// replaced with the one from its protocol-facing source document
	FixTypeReconciledOperationID FixType = "reconciled-operation-id"
	// FixTypeAddedErrorResponse indicates a standard error response was added
	FixTypeAddedErrorResponse FixType = "added-error-response"
	// FixTypeNormalizedErrorResponse indicates an existing error response's
	// content was pointed at the shared ErrorInfo schema
	FixTypeNormalizedErrorResponse FixType = "normalized-error-response"
	// FixTypeNullableToTypeUnion indicates a nullable marker was folded into
	// the schema's type
	FixTypeNullableToTypeUnion FixType = "nullable-to-type-union"
	// FixTypeExampleToExamples indicates a singular example was moved into an
	// examples list
	FixTypeExampleToExamples FixType = "example-to-examples"
)

// AllFixTypes lists every fix type in pipeline order.
func AllFixTypes() []FixType {
	return []FixType{
		FixTypeReconciledOperationID,
		FixTypeAddedErrorResponse,
		FixTypeNormalizedErrorResponse,
		FixTypeNullableToTypeUnion,
		FixTypeExampleToExamples,
	}
}

// ParseFixType converts a string to a FixType.
func ParseFixType(s string) (FixType, error) {
	ft := FixType(s)
	if !slices.Contains(AllFixTypes(), ft) {
		return "", fmt.Errorf("unknown fix type %q", s)
	}
	return ft, nil
}

// Fix represents a single fix applied to the document
type Fix struct {
	// Type identifies the category of fix
	Type FixType
	// Path is the JSON path to the fixed location (e.g., "$.paths['/catalogs'].get.responses['400']")
	Path string
	// Description is a human-readable description of the fix
	Description string
	// Before is the state before the fix (nil if adding new element)
	Before any
	// After is the value that was added or changed
	After any
}

// FixResult contains the results of a fix operation
type FixResult struct {
	// Document contains the fixed document
	Document *parser.Document
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// SourcePath is the path to the source file
	SourcePath string
	// Fixes contains all fixes applied
	Fixes []Fix
	// FixCount is the total number of fixes applied
	FixCount int
	// Stats contains statistical information about the fixed document
	Stats parser.DocumentStats
}

// HasFixes returns true if any fixes were applied
func (r *FixResult) HasFixes() bool {
	return r.FixCount > 0
}

// CountByType returns the number of fixes of each type.
func (r *FixResult) CountByType() map[FixType]int {
	counts := make(map[FixType]int)
	for _, f := range r.Fixes {
		counts[f.Type]++
	}
	return counts
}

// Fixer applies consolidation fixes to a document
type Fixer struct {
	// Routes selects the source document for RPC operationId reconciliation.
	// With no routes, reconciliation does nothing.
	Routes []Route
	// EnabledFixes specifies which fix types to apply.
	// If nil or empty, all fix types are enabled.
	EnabledFixes []FixType
}

// New creates a new Fixer instance with default settings
func New() *Fixer {
	return &Fixer{}
}

// Option is a function that configures a fix operation
type Option func(*fixConfig) error

// fixConfig holds configuration for a fix operation
type fixConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	routes       []Route
	enabledFixes []FixType
}

// FixWithOptions fixes an OpenAPI document using functional options.
//
// Example:
//
//	result, err := fixer.FixWithOptions(
//	    fixer.WithFilePath("openapi.yaml"),
//	    fixer.WithEnabledFixes(fixer.FixTypeNullableToTypeUnion),
//	)
func FixWithOptions(opts ...Option) (*FixResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("fixer: invalid options: %w", err)
	}

	f := &Fixer{
		Routes:       cfg.routes,
		EnabledFixes: cfg.enabledFixes,
	}

	if cfg.filePath != nil {
		return f.Fix(*cfg.filePath)
	}
	return f.FixParsed(*cfg.parsed)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*fixConfig, error) {
	cfg := &fixConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.parsed != nil {
		sources++
	}

	if sources == 0 {
		return nil, fmt.Errorf("no input source specified: use WithFilePath or WithParsed")
	}
	if sources > 1 {
		return nil, fmt.Errorf("multiple input sources specified: use only one of WithFilePath or WithParsed")
	}

	return cfg, nil
}

// WithFilePath specifies the file path to fix
func WithFilePath(path string) Option {
	return func(cfg *fixConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already-parsed document to fix
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *fixConfig) error {
		if result.Document == nil {
			return fmt.Errorf("parsed result has no document")
		}
		cfg.parsed = &result
		return nil
	}
}

// WithRoutes sets the routes used for operationId reconciliation
func WithRoutes(routes ...Route) Option {
	return func(cfg *fixConfig) error {
		cfg.routes = routes
		return nil
	}
}

// WithEnabledFixes specifies which fix types to apply
func WithEnabledFixes(fixes ...FixType) Option {
	return func(cfg *fixConfig) error {
		for _, ft := range fixes {
			if _, err := ParseFixType(string(ft)); err != nil {
				return err
			}
		}
		cfg.enabledFixes = fixes
		return nil
	}
}

// Fix parses the file at path and fixes a copy of it
func (f *Fixer) Fix(path string) (*FixResult, error) {
	parseResult, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixer: failed to parse document: %w", err)
	}
	return f.FixParsed(*parseResult)
}

// FixParsed fixes a copy of an already-parsed document; the parse result's
// document is left unchanged.
func (f *Fixer) FixParsed(parseResult parser.ParseResult) (*FixResult, error) {
	if parseResult.Document == nil {
		return nil, fmt.Errorf("fixer: parse result has no document")
	}
	result := f.FixDocument(parseResult.Document.Copy())
	result.SourceFormat = parseResult.SourceFormat
	result.SourcePath = parseResult.SourcePath
	return result, nil
}

// FixDocument fixes doc in place.
func (f *Fixer) FixDocument(doc *parser.Document) *FixResult {
	result := &FixResult{Fixes: make([]Fix, 0)}
	f.applyFixPipeline(doc, result)
	return result
}

// isFixEnabled checks if a fix type is enabled.
func (f *Fixer) isFixEnabled(fixType FixType) bool {
	if len(f.EnabledFixes) == 0 {
		return true // all fixes enabled by default
	}
	return slices.Contains(f.EnabledFixes, fixType)
}
