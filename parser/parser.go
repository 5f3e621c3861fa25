package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/oaserrors"
	"go.yaml.in/yaml/v4"
)

// SourceFormat represents the serialization format of a source document
type SourceFormat string

const (
	// SourceFormatJSON is selected for files with a .json extension
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML is selected for everything else
	SourceFormatYAML SourceFormat = "yaml"
)

// ParseResult contains a loaded document and metadata about its source
type ParseResult struct {
	// SourcePath is the path the document was read from
	SourcePath string
	// SourceFormat is the format used to decode the document
	SourceFormat SourceFormat
	// SourceSize is the size of the source in bytes
	SourceSize int64
	// Document is the decoded document tree
	Document *Document
	// Stats contains statistical information about the document
	Stats DocumentStats
	// LoadTime is how long reading and decoding took
	LoadTime time.Duration
}

// FormatFromPath selects the decoder for a path: .json is decoded as JSON,
// anything else as YAML (which also accepts JSON).
func FormatFromPath(path string) SourceFormat {
	if filepath.Ext(path) == ".json" {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// DetectFormat guesses the format of inline content: a leading '{' after
// whitespace means JSON, anything else is YAML.
func DetectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// ParseFile reads and decodes the document at path.
// Any failure is returned as a *oaserrors.ParseError.
func ParseFile(path string) (*ParseResult, error) {
	start := time.Now()
	data, err := os.ReadFile(path) //nolint:gosec // G304 - reading user-configured source documents is the point
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "reading file", Cause: err}
	}
	result, err := ParseBytes(data, FormatFromPath(path), path)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseBytes decodes data using format. sourcePath is only used for error
// messages and the result metadata.
func ParseBytes(data []byte, format SourceFormat, sourcePath string) (*ParseResult, error) {
	start := time.Now()

	var (
		root *yaml.Node
		err  error
	)
	switch format {
	case SourceFormatJSON:
		root, err = decodeJSON(data, sourcePath)
	default:
		root, err = decodeYAML(data, sourcePath)
	}
	if err != nil {
		return nil, err
	}
	if !nodeutil.IsMapping(root) {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "document root must be a mapping"}
	}

	// Expand aliases up front so every later copy is independent.
	root, err = nodeutil.ExpandAliases(root, nodeutil.MaxAliasNodes)
	if err != nil {
		parseErr := &oaserrors.ParseError{Path: sourcePath, Message: "invalid YAML alias", Cause: err}
		var aliasErr *nodeutil.AliasError
		if errors.As(err, &aliasErr) {
			parseErr.Line, parseErr.Column = aliasErr.Line, aliasErr.Column
		}
		return nil, parseErr
	}
	nodeutil.Normalize(root)

	doc := NewDocument(root)
	return &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
		Document:     doc,
		Stats:        doc.Stats(),
		LoadTime:     time.Since(start),
	}, nil
}

func decodeYAML(data []byte, sourcePath string) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "empty document"}
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "invalid YAML", Cause: err}
	}
	root := nodeutil.Root(&doc)
	if root == nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "empty document"}
	}
	return root, nil
}
