package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/oasconsolidate/fixer"
	"github.com/erraggy/oasconsolidate/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type fixCompatInput struct {
	File            string `json:"file,omitempty"             jsonschema:"Path to an OpenAPI file on disk"`
	Content         string `json:"content,omitempty"          jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
	ErrorResponses  bool   `json:"error_responses,omitempty"  jsonschema:"Also add and normalize the standard 400/401/403/404/500 error responses"`
	DryRun          bool   `json:"dry_run,omitempty"          jsonschema:"Preview fixes without writing or returning the document"`
	IncludeDocument bool   `json:"include_document,omitempty" jsonschema:"Include the fixed document in output"`
	Output          string `json:"output,omitempty"           jsonschema:"File path to write the fixed document to"`
	Offset          int    `json:"offset,omitempty"           jsonschema:"Skip the first N fixes (for pagination)"`
	Limit           int    `json:"limit,omitempty"            jsonschema:"Maximum number of fixes to return (default 100)"`
}

type fixCompatOutput struct {
	Format    string         `json:"format"`
	FixCount  int            `json:"fix_count"`
	FixCounts map[string]int `json:"fix_counts,omitempty"`
	Returned  int            `json:"returned"`
	Fixes     []fixApplied   `json:"fixes,omitempty"`
	WrittenTo string         `json:"written_to,omitempty"`
	Document  string         `json:"document,omitempty"`
}

func handleFixCompat(_ context.Context, _ *mcp.CallToolRequest, input fixCompatInput) (*mcp.CallToolResult, fixCompatOutput, error) {
	opts, err := buildFixCompatOptions(input)
	if err != nil {
		return errResult(err), fixCompatOutput{}, nil
	}
	if input.Output != "" && !input.DryRun && !cfg.AllowWrite {
		return errResult(errors.New("writing output files is disabled (OASCONSOLIDATE_MCP_ALLOW_WRITE=false)")), fixCompatOutput{}, nil
	}

	result, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return errResult(err), fixCompatOutput{}, nil
	}

	output := fixCompatOutput{
		Format:    string(result.SourceFormat),
		FixCount:  result.FixCount,
		FixCounts: countByType(result),
	}
	output.Fixes = summarizeFixes(result.Fixes, input.Offset, input.Limit)
	output.Returned = len(output.Fixes)

	if input.DryRun {
		return nil, output, nil
	}
	if input.Output != "" {
		if err := parser.WriteFile(result.Document, input.Output, result.SourceFormat); err != nil {
			return errResult(err), fixCompatOutput{}, nil
		}
		output.WrittenTo = input.Output
	}
	if input.IncludeDocument {
		data, err := parser.Marshal(result.Document, result.SourceFormat)
		if err != nil {
			return errResult(err), fixCompatOutput{}, nil
		}
		output.Document = string(data)
	}

	return nil, output, nil
}

// buildFixCompatOptions translates the MCP input into fixer options, handling
// the two input modes (file, content) and the optional fix flags.
func buildFixCompatOptions(input fixCompatInput) ([]fixer.Option, error) {
	var opts []fixer.Option

	switch {
	case input.File != "" && input.Content != "":
		return nil, errors.New("provide only one of file or content")
	case input.File != "":
		opts = append(opts, fixer.WithFilePath(input.File))
	case input.Content != "":
		if int64(len(input.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content is %d bytes; limit is %d", len(input.Content), cfg.MaxInlineSize)
		}
		data := []byte(input.Content)
		parsed, err := parser.ParseBytes(data, parser.DetectFormat(data), "<content>")
		if err != nil {
			return nil, err
		}
		opts = append(opts, fixer.WithParsed(*parsed))
	default:
		return nil, errors.New("exactly one of file or content must be provided")
	}

	fixes := []fixer.FixType{fixer.FixTypeNullableToTypeUnion, fixer.FixTypeExampleToExamples}
	if input.ErrorResponses {
		fixes = append(fixes, fixer.FixTypeAddedErrorResponse, fixer.FixTypeNormalizedErrorResponse)
	}
	opts = append(opts, fixer.WithEnabledFixes(fixes...))

	return opts, nil
}
