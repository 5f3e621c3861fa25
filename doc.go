// Package oasconsolidate merges the OpenAPI descriptions of a dataspace
// connector into one document served by its frontend gateway.
//
// The gateway document is the base. The component schemas of six subsystem
// documents (catalog, contract negotiation and transfer, each with an agent
// and a protocol description) are merged into it in a fixed priority order,
// later sources overwriting earlier ones. Catalog entities get alias schemas
// under their "<Entity>NewDto"/"<Entity>EditDto" names, ErrorInfo is taken
// from the catalog protocol document, and ODRL policy schemas are installed.
// The merged document is then fixed:
//
//   - RPC operationIds are taken from the protocol document that owns the route
//   - every operation gets the standard 400/401/403/404/500 error responses
//   - OpenAPI 3.0 nullable and example are rewritten for 3.1
//
// # Packages
//
//   - parser: load JSON or YAML into an ordered node tree and write it back
//   - schema: classify schema nodes and walk their subschemas
//   - joiner: merge component schemas from the subsystem documents
//   - fixer: post-merge fixes (operationIds, error responses, 3.1 compatibility)
//   - consolidator: the end-to-end pipeline over a directory layout
//   - oaserrors: error types shared by the packages above
//
// # Quick Start
//
//	c, err := consolidator.New(consolidator.DefaultConfig("static/specs/openapi"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := c.Run()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d schemas, %d fixes\n", result.Stats.SchemaCount, result.FixCount)
//
// The oasconsolidate command wraps the same pipeline; see cmd/oasconsolidate.
package oasconsolidate
