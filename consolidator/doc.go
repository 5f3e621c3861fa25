// Package consolidator merges a gateway OpenAPI document and six domain
// documents into one consolidated document.
//
// The pipeline is:
//
//  1. Load the gateway and the catalog, negotiation, and transfer documents
//     (agent-facing and protocol-facing variant of each). Any load failure
//     aborts before anything is merged.
//  2. Merge component schemas into a copy of the gateway ([joiner]).
//  3. Reconcile RPC operation ids, add standard error responses, and apply
//     the 3.1 compatibility fixes ([fixer]).
//  4. Write the result as YAML.
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
// Use [ConsolidateDocuments] when the documents are already in memory.
package consolidator
