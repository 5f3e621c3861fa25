// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the consolidation pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	oasconsolidate "github.com/erraggy/oasconsolidate"
	"github.com/erraggy/oasconsolidate/fixer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasconsolidate MCP server: merges a gateway OpenAPI document with the catalog, negotiation and transfer documents, and rewrites 3.0 schema idioms for 3.1.

Configuration: defaults come from OASCONSOLIDATE_MCP_* environment variables set in your MCP client config.

Key settings:
- OASCONSOLIDATE_MCP_BASE_DIR: base_dir used by consolidate when a call omits it
- OASCONSOLIDATE_MCP_ALLOW_WRITE (default: true): allow tools to write output files
- OASCONSOLIDATE_MCP_MAX_INLINE_SIZE (default: 10485760): maximum inline content size in bytes
- OASCONSOLIDATE_MCP_FIX_LIMIT (default: 100): default number of fixes returned`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasconsolidate", Version: oasconsolidate.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "consolidate",
		Description: "Merge the gateway document with the six subsystem documents (catalog, negotiation and transfer; agent and protocol each) into one OpenAPI 3.1 document. Give base_dir for the standard layout or explicit paths per input; explicit paths win. Reports schema overwrites, alias schemas, the ErrorInfo source and every post-merge fix. Use output to write the YAML result to a file, include_document to return it inline. Use offset/limit to paginate through fixes.",
	}, handleConsolidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix_compat",
		Description: "Rewrite OpenAPI 3.0 schema idioms for 3.1 in one document: nullable: true becomes a type union with \"null\", example becomes examples. Set error_responses to also add the standard 400/401/403/404/500 responses. Provide exactly one of file or content. The source format is preserved in the returned or written document.",
	}, handleFixCompat)
}

// fixApplied is one fix as reported to MCP clients.
type fixApplied struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

func summarizeFixes(fixes []fixer.Fix, offset, limit int) []fixApplied {
	out := makeSlice[fixApplied](len(fixes))
	for _, f := range fixes {
		out = append(out, fixApplied{
			Type:        string(f.Type),
			Path:        f.Path,
			Description: f.Description,
		})
	}
	return paginate(out, offset, limit)
}

func countByType(result *fixer.FixResult) map[string]int {
	counts := make(map[string]int)
	for ft, n := range result.CountByType() {
		counts[string(ft)] = n
	}
	return counts
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.FixLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.FixLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
