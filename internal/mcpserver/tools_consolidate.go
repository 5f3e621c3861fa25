package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/oasconsolidate/consolidator"
	"github.com/erraggy/oasconsolidate/fixer"
	"github.com/erraggy/oasconsolidate/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type consolidateInput struct {
	BaseDir             string `json:"base_dir,omitempty"             jsonschema:"Directory holding the standard layout (fe_gateway.yaml, catalog/, contracts/, transfer/)"`
	Gateway             string `json:"gateway,omitempty"              jsonschema:"Gateway document path; overrides base_dir"`
	CatalogAgent        string `json:"catalog_agent,omitempty"        jsonschema:"Catalog agent document path; overrides base_dir"`
	CatalogProtocol     string `json:"catalog_protocol,omitempty"     jsonschema:"Catalog protocol document path; overrides base_dir"`
	NegotiationAgent    string `json:"negotiation_agent,omitempty"    jsonschema:"Negotiation agent document path; overrides base_dir"`
	NegotiationProtocol string `json:"negotiation_protocol,omitempty" jsonschema:"Negotiation protocol document path; overrides base_dir"`
	TransferAgent       string `json:"transfer_agent,omitempty"       jsonschema:"Transfer agent document path; overrides base_dir"`
	TransferProtocol    string `json:"transfer_protocol,omitempty"    jsonschema:"Transfer protocol document path; overrides base_dir"`
	Output              string `json:"output,omitempty"               jsonschema:"File path to write the consolidated YAML to. Nothing is written when omitted."`
	IncludeDocument     bool   `json:"include_document,omitempty"     jsonschema:"Include the consolidated YAML document in the output"`
	Offset              int    `json:"offset,omitempty"               jsonschema:"Skip the first N fixes (for pagination)"`
	Limit               int    `json:"limit,omitempty"                jsonschema:"Maximum number of fixes to return (default 100)"`
}

type collisionSummary struct {
	Schema    string `json:"schema"`
	Previous  string `json:"previous"`
	Winner    string `json:"winner"`
	Identical bool   `json:"identical,omitempty"`
}

type consolidateOutput struct {
	PathCount       int                `json:"path_count"`
	OperationCount  int                `json:"operation_count"`
	SchemaCount     int                `json:"schema_count"`
	Merged          int                `json:"merged"`
	Collisions      []collisionSummary `json:"collisions,omitempty"`
	Aliases         []string           `json:"aliases,omitempty"`
	ErrorInfoSource string             `json:"error_info_source"`
	FixCount        int                `json:"fix_count"`
	FixCounts       map[string]int     `json:"fix_counts,omitempty"`
	Returned        int                `json:"returned"`
	Fixes           []fixApplied       `json:"fixes,omitempty"`
	WrittenTo       string             `json:"written_to,omitempty"`
	Document        string             `json:"document,omitempty"`
}

func handleConsolidate(_ context.Context, _ *mcp.CallToolRequest, input consolidateInput) (*mcp.CallToolResult, consolidateOutput, error) {
	conf, err := buildConsolidateConfig(input)
	if err != nil {
		return errResult(err), consolidateOutput{}, nil
	}
	if input.Output != "" && !cfg.AllowWrite {
		return errResult(errors.New("writing output files is disabled (OASCONSOLIDATE_MCP_ALLOW_WRITE=false)")), consolidateOutput{}, nil
	}

	c, err := consolidator.New(conf)
	if err != nil {
		return errResult(err), consolidateOutput{}, nil
	}
	result, err := c.Consolidate()
	if err != nil {
		return errResult(err), consolidateOutput{}, nil
	}

	output := consolidateOutput{
		PathCount:       result.Stats.PathCount,
		OperationCount:  result.Stats.OperationCount,
		SchemaCount:     result.Stats.SchemaCount,
		Merged:          result.Merge.Merged,
		ErrorInfoSource: result.Merge.ErrorInfoSource,
		FixCount:        result.FixCount,
		FixCounts:       countByType(&fixer.FixResult{Fixes: result.Fixes}),
	}
	output.Collisions = makeSlice[collisionSummary](len(result.Merge.Collisions))
	for _, col := range result.Merge.Collisions {
		output.Collisions = append(output.Collisions, collisionSummary{
			Schema:    col.Name,
			Previous:  col.Previous,
			Winner:    col.Winner,
			Identical: col.Identical,
		})
	}
	output.Aliases = makeSlice[string](len(result.Merge.Aliases))
	for _, a := range result.Merge.Aliases {
		output.Aliases = append(output.Aliases, a.From+" -> "+a.To)
	}
	output.Fixes = summarizeFixes(result.Fixes, input.Offset, input.Limit)
	output.Returned = len(output.Fixes)

	if input.Output != "" {
		if err := c.WriteResult(result); err != nil {
			return errResult(err), consolidateOutput{}, nil
		}
		output.WrittenTo = input.Output
	}
	if input.IncludeDocument {
		data, err := parser.MarshalYAML(result.Document)
		if err != nil {
			return errResult(err), consolidateOutput{}, nil
		}
		output.Document = string(data)
	}

	return nil, output, nil
}

// buildConsolidateConfig resolves the call's paths: explicit paths override
// the base_dir layout, and base_dir falls back to OASCONSOLIDATE_MCP_BASE_DIR.
func buildConsolidateConfig(input consolidateInput) (consolidator.Config, error) {
	baseDir := input.BaseDir
	if baseDir == "" {
		baseDir = cfg.BaseDir
	}
	explicit := []string{
		input.Gateway, input.CatalogAgent, input.CatalogProtocol,
		input.NegotiationAgent, input.NegotiationProtocol,
		input.TransferAgent, input.TransferProtocol,
	}
	if baseDir == "" {
		for _, p := range explicit {
			if p == "" {
				return consolidator.Config{}, fmt.Errorf("base_dir is required unless all seven input paths are given")
			}
		}
	}

	conf := consolidator.DefaultConfig(baseDir)
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&conf.Gateway, input.Gateway)
	override(&conf.CatalogAgent, input.CatalogAgent)
	override(&conf.CatalogProtocol, input.CatalogProtocol)
	override(&conf.NegotiationAgent, input.NegotiationAgent)
	override(&conf.NegotiationProtocol, input.NegotiationProtocol)
	override(&conf.TransferAgent, input.TransferAgent)
	override(&conf.TransferProtocol, input.TransferProtocol)
	override(&conf.Output, input.Output)
	return conf, nil
}
