package fixer

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/internal/pathutil"
	"github.com/erraggy/oasconsolidate/parser"
)

// rpcSegment marks a remote-procedure-style path.
const rpcSegment = "/rpc/"

// Route sends accumulator paths starting with Prefix to Source for
// operationId lookup.
type Route struct {
	// Prefix is matched against the start of the accumulator path
	Prefix string
	// Name identifies the source document in fix descriptions
	Name string
	// Source is the protocol-facing document holding canonical ids
	Source *parser.Document
}

// DefaultRoutes routes /catalogs/, /negotiations/, and /transfers/ paths to
// the given protocol-facing documents. A nil document gets no route.
func DefaultRoutes(catalog, negotiation, transfer *parser.Document) []Route {
	candidates := []Route{
		{Prefix: "/catalogs/", Name: "catalog-protocol", Source: catalog},
		{Prefix: "/negotiations/", Name: "negotiation-protocol", Source: negotiation},
		{Prefix: "/transfers/", Name: "transfer-protocol", Source: transfer},
	}
	routes := make([]Route, 0, len(candidates))
	for _, r := range candidates {
		if r.Source != nil {
			routes = append(routes, r)
		}
	}
	return routes
}

// ReconcileOperationIDs copies canonical operationIds onto RPC-style paths.
//
// For every path of doc containing /rpc/, the text after the last /rpc/ is
// the suffix. The first route whose prefix matches the path selects a
// source document, whose paths are scanned in order for the first one that
// ends in /rpc/<suffix> and has a post operation. That operation's
// operationId, when it is a non-empty string, replaces the post
// operationId of doc's path. Paths with no route, no match, or no post are
// left alone.
func ReconcileOperationIDs(doc *parser.Document, routes []Route) []Fix {
	var fixes []Fix
	for path, item := range doc.PathItems() {
		idx := strings.LastIndex(path, rpcSegment)
		if idx < 0 {
			continue
		}
		suffix := path[idx:]

		route, ok := matchRoute(routes, path)
		if !ok {
			continue
		}
		newID, ok := lookupRPCOperationID(route.Source, suffix)
		if !ok {
			continue
		}

		post := nodeutil.Get(item, parser.MethodPost)
		if !nodeutil.IsMapping(post) {
			continue
		}
		var before any
		if old := nodeutil.Get(post, "operationId"); old != nil {
			if old.Value == newID && nodeutil.IsScalar(old) {
				continue
			}
			before = old.Value
		}
		nodeutil.Set(post, "operationId", nodeutil.String(newID))
		fixes = append(fixes, Fix{
			Type:        FixTypeReconciledOperationID,
			Path:        pathutil.Field(pathutil.Operation(path, parser.MethodPost), "operationId"),
			Description: fmt.Sprintf("operationId taken from %s", route.Name),
			Before:      before,
			After:       newID,
		})
	}
	return fixes
}

func matchRoute(routes []Route, path string) (Route, bool) {
	for _, r := range routes {
		if r.Source != nil && strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return Route{}, false
}

// lookupRPCOperationID returns the post operationId of the first path in
// source ending with suffix that has a post operation. The search stops at
// that path even when its operationId is missing.
func lookupRPCOperationID(source *parser.Document, suffix string) (string, bool) {
	for path, item := range source.PathItems() {
		if !strings.HasSuffix(path, suffix) {
			continue
		}
		post := nodeutil.Get(item, parser.MethodPost)
		if post == nil {
			continue
		}
		return nodeutil.StringValue(nodeutil.Get(post, "operationId"))
	}
	return "", false
}
